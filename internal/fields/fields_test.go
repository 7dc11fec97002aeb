package fields

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClamp01(t *testing.T) {
	Convey("Clamp01 bounds any input to [0,1]", t, func() {
		So(Clamp01(-1), ShouldEqual, 0)
		So(Clamp01(3), ShouldEqual, 1)
		So(Clamp01(0.42), ShouldEqual, 0.42)
	})
}

func TestCopyClampSanitizesGarbageInput(t *testing.T) {
	Convey("Given a field seeded with out-of-range values", t, func() {
		f := New(4, 4)
		garbage := make([]float64, 16)
		for i := range garbage {
			garbage[i] = -1 + float64(i)
		}

		CopyClamp(f.Signals, garbage)

		Convey("Every value lands in [0,1] after one pass", func() {
			for _, v := range f.Signals {
				So(v, ShouldBeGreaterThanOrEqualTo, 0)
				So(v, ShouldBeLessThanOrEqualTo, 1)
			}
		})
	})
}

func TestMulInPlaceDecaysAndClamps(t *testing.T) {
	Convey("Given a toxin field at full saturation", t, func() {
		f := New(2, 2)
		for i := range f.Toxins {
			f.Toxins[i] = 1.0
		}

		MulInPlace(f.Toxins, 0.95)

		Convey("Every cell decays by the same factor and stays in range", func() {
			for _, v := range f.Toxins {
				So(v, ShouldEqual, 0.95)
			}
		})
	})
}

func TestScentDoubleBufferCommit(t *testing.T) {
	Convey("Given scent scratch buffers filled for the next tick", t, func() {
		f := New(3, 3)
		next, nextSrc := f.ScentScratch()
		for i := range next {
			next[i] = 0.5
			nextSrc[i] = 7
		}

		f.CommitScent()

		Convey("The committed values become the live Signals/SignalSource", func() {
			for i := range f.Signals {
				So(f.Signals[i], ShouldEqual, 0.5)
				So(f.SignalSource[i], ShouldEqual, int32(7))
			}
		})
	})
}

func TestNewDefaults(t *testing.T) {
	Convey("A freshly built Fields defaults nutrients to 1.0 and toxins/signals to 0", t, func() {
		f := New(5, 5)
		for _, v := range f.Nutrients {
			So(v, ShouldEqual, 1.0)
		}
		for _, v := range f.Toxins {
			So(v, ShouldEqual, 0.0)
		}
		for _, v := range f.Signals {
			So(v, ShouldEqual, 0.0)
		}
	})
}
