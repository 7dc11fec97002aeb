package colony

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wokuno/ferox/internal/genome"
)

func TestAddAndGet(t *testing.T) {
	Convey("Given a new table", t, func() {
		tbl := NewTable()

		Convey("Add assigns monotonically increasing ids starting at 1", func() {
			a, err := tbl.Add("alpha", genome.Genome{}, 0)
			So(err, ShouldBeNil)
			So(a.ID, ShouldEqual, 1)

			b, err := tbl.Add("beta", genome.Genome{}, 0)
			So(err, ShouldBeNil)
			So(b.ID, ShouldEqual, 2)
		})

		Convey("Get only returns active colonies", func() {
			a, _ := tbl.Add("alpha", genome.Genome{}, 0)
			got, ok := tbl.Get(a.ID)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, a)

			tbl.Deactivate(a)
			_, ok = tbl.Get(a.ID)
			So(ok, ShouldBeFalse)

			_, ok = tbl.Lookup(a.ID)
			So(ok, ShouldBeTrue)
		})

		Convey("The lookup table grows past its initial capacity", func() {
			var last *Colony
			for i := 0; i < 200; i++ {
				last, _ = tbl.Add("c", genome.Genome{}, 0)
			}
			got, ok := tbl.Get(last.ID)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, last)
			So(tbl.Stats(last.ID), ShouldNotBeNil)
		})
	})
}

func TestReconcileMaxCellCountMonotone(t *testing.T) {
	Convey("Given a colony whose stats observed a higher population than recorded", t, func() {
		tbl := NewTable()
		c, _ := tbl.Add("alpha", genome.Genome{}, 0)
		c.MaxCellCount = 5
		stats := tbl.Stats(c.ID)
		stats.MaxCellCount.Store(12)

		ReconcileMaxCellCount(c, stats)

		Convey("MaxCellCount only ever increases", func() {
			So(c.MaxCellCount, ShouldEqual, 12)
		})

		Convey("A second reconcile with a lower observed value changes nothing", func() {
			stats.MaxCellCount.Store(3)
			ReconcileMaxCellCount(c, stats)
			So(c.MaxCellCount, ShouldEqual, 12)
		})
	})
}
