package genome

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wokuno/ferox/internal/rng"
)

func TestDistanceProperties(t *testing.T) {
	Convey("Given random genomes", t, func() {
		r := rng.NewMathRand(1)
		a := RandomInit(r)
		b := RandomInit(r)
		c := RandomInit(r)

		Convey("Distance is zero for identical genomes", func() {
			So(Distance(a, a), ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Distance is symmetric", func() {
			So(Distance(a, b), ShouldAlmostEqual, Distance(b, a), 1e-9)
		})

		Convey("Distance is within [0,1]", func() {
			d := Distance(a, b)
			So(d, ShouldBeGreaterThanOrEqualTo, 0)
			So(d, ShouldBeLessThanOrEqualTo, 1)
		})

		Convey("Distance obeys the triangle inequality", func() {
			So(Distance(a, c), ShouldBeLessThanOrEqualTo, Distance(a, b)+Distance(b, c)+1e-4)
		})
	})
}

func TestMergeIdentity(t *testing.T) {
	Convey("Given a genome merged with itself", t, func() {
		r := rng.NewMathRand(2)
		a := RandomInit(r)

		Convey("Merge(a, n, a, m) == a field-by-field", func() {
			merged := Merge(a, 7, a, 13)
			So(merged.SpreadRate, ShouldAlmostEqual, a.SpreadRate, 1e-9)
			So(merged.Aggression, ShouldAlmostEqual, a.Aggression, 1e-9)
			So(merged.MotilityDirection, ShouldAlmostEqual, a.MotilityDirection, 1e-6)
			So(merged.MaxTracked, ShouldEqual, a.MaxTracked)
			So(merged.BodyColor, ShouldResemble, a.BodyColor)
		})
	})
}

func TestMutateStaysInRange(t *testing.T) {
	Convey("Given many mutation rounds", t, func() {
		r := rng.NewMathRand(3)
		g := RandomInit(r)

		for i := 0; i < 500; i++ {
			g = Mutate(g, r)
		}

		Convey("Every trait stays within its documented range", func() {
			So(g.SpreadRate, ShouldBeBetween, -1e-9, 1+1e-9)
			So(g.SocialFactor, ShouldBeBetween, -1-1e-9, 1+1e-9)
			So(g.EdgeAffinity, ShouldBeBetween, -1-1e-9, 1+1e-9)
			So(g.MaxTracked, ShouldBeBetween, 0, 5)
			So(g.MotilityDirection, ShouldBeBetween, -1e-9, 2*math.Pi+1e-9)
			for _, w := range g.SpreadWeights {
				So(w, ShouldBeBetween, -1e-9, 1+1e-9)
			}
			for _, w := range g.HiddenWeights {
				So(w, ShouldBeBetween, -1-1e-9, 1+1e-9)
			}
		})

		Convey("BorderColor tracks BodyColor/2", func() {
			So(g.BorderColor.R, ShouldEqual, g.BodyColor.R/2)
			So(g.BorderColor.G, ShouldEqual, g.BodyColor.G/2)
			So(g.BorderColor.B, ShouldEqual, g.BodyColor.B/2)
		})
	})
}

func TestTransferDoesNotPanic(t *testing.T) {
	Convey("Given two distinct genomes", t, func() {
		r := rng.NewMathRand(4)
		donor := RandomInit(r)
		recipient := RandomInit(r)

		Convey("Transfer produces a genome with in-range traits", func() {
			out := Transfer(donor, recipient, 0.5, r)
			So(out.SpreadRate, ShouldBeBetween, -1e-9, 1+1e-9)
		})
	})
}
