package command

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeControls struct {
	paused    bool
	speed     float64
	resetCnt  int
	selected  int32
	spawnAt   [2]int
	spawnName string
	spawnErr  error
}

func newFakeControls() *fakeControls {
	return &fakeControls{speed: 1.0}
}

func (f *fakeControls) SetPaused(p bool)            { f.paused = p }
func (f *fakeControls) MultiplySpeed(factor float64) { f.speed = ClampSpeed(f.speed * factor) }
func (f *fakeControls) Reset()                       { f.resetCnt++ }
func (f *fakeControls) SelectColony(id int32)        { f.selected = id }
func (f *fakeControls) SpawnColony(x, y int, name string) error {
	f.spawnAt = [2]int{x, y}
	f.spawnName = name
	return f.spawnErr
}

func TestApplyPauseResume(t *testing.T) {
	Convey("Given a fresh Controls", t, func() {
		ctrl := newFakeControls()

		Convey("pause sets paused true", func() {
			So(Apply(Command{Type: Pause}, 10, 10, ctrl), ShouldBeNil)
			So(ctrl.paused, ShouldBeTrue)
		})

		Convey("resume sets paused false", func() {
			ctrl.paused = true
			So(Apply(Command{Type: Resume}, 10, 10, ctrl), ShouldBeNil)
			So(ctrl.paused, ShouldBeFalse)
		})
	})
}

func TestApplySpeedClampsToBounds(t *testing.T) {
	Convey("Given speed already near the floor", t, func() {
		ctrl := newFakeControls()
		ctrl.speed = 0.12

		for i := 0; i < 10; i++ {
			Apply(Command{Type: SlowDown}, 10, 10, ctrl)
		}

		Convey("Speed never drops below SpeedMin", func() {
			So(ctrl.speed, ShouldBeGreaterThanOrEqualTo, SpeedMin)
		})
	})

	Convey("Given speed already near the ceiling", t, func() {
		ctrl := newFakeControls()
		ctrl.speed = 90

		for i := 0; i < 10; i++ {
			Apply(Command{Type: SpeedUp}, 10, 10, ctrl)
		}

		Convey("Speed never exceeds SpeedMax", func() {
			So(ctrl.speed, ShouldBeLessThanOrEqualTo, SpeedMax)
		})
	})
}

func TestApplyMalformedSpawnDoesNotMutate(t *testing.T) {
	Convey("Given a spawn_colony command with an out-of-bounds position", t, func() {
		ctrl := newFakeControls()

		err := Apply(Command{Type: SpawnColony, X: -1, Y: 0, Name: "x"}, 10, 10, ctrl)

		Convey("Apply rejects it and never calls SpawnColony", func() {
			So(err, ShouldEqual, ErrMalformed)
			So(ctrl.spawnName, ShouldEqual, "")
		})
	})

	Convey("Given a spawn_colony command with an empty name", t, func() {
		ctrl := newFakeControls()

		err := Apply(Command{Type: SpawnColony, X: 1, Y: 1, Name: ""}, 10, 10, ctrl)

		Convey("Apply rejects it", func() {
			So(err, ShouldEqual, ErrMalformed)
		})
	})
}

func TestApplySelectColonyRequiresPositiveID(t *testing.T) {
	Convey("Given select_colony with a non-positive id", t, func() {
		ctrl := newFakeControls()
		err := Apply(Command{Type: SelectColony, ColonyID: 0}, 10, 10, ctrl)

		Convey("Apply rejects it without mutating selection", func() {
			So(err, ShouldEqual, ErrMalformed)
			So(ctrl.selected, ShouldEqual, int32(0))
		})
	})
}

func TestApplyUnknownTypeIsNoOp(t *testing.T) {
	Convey("Given a command with an out-of-range Type", t, func() {
		ctrl := newFakeControls()
		err := Apply(Command{Type: Type(999)}, 10, 10, ctrl)

		Convey("Apply is a no-op and reports no error", func() {
			So(err, ShouldBeNil)
			So(ctrl.resetCnt, ShouldEqual, 0)
		})
	})
}

func TestQueueDrainAllIsFIFOAndEmpties(t *testing.T) {
	Convey("Given a queue with several pushed commands", t, func() {
		q := NewQueue()
		q.Push(Command{Type: Pause})
		q.Push(Command{Type: Resume})
		q.Push(Command{Type: SpeedUp})

		drained := q.DrainAll()

		Convey("Commands come out in submission order", func() {
			So(len(drained), ShouldEqual, 3)
			So(drained[0].Type, ShouldEqual, Pause)
			So(drained[1].Type, ShouldEqual, Resume)
			So(drained[2].Type, ShouldEqual, SpeedUp)
		})

		Convey("The queue is empty afterward", func() {
			So(q.Len(), ShouldEqual, 0)
		})
	})
}

func TestApplyAllCollectsErrorsButAppliesEverything(t *testing.T) {
	Convey("Given a queue with one bad and two good commands", t, func() {
		q := NewQueue()
		q.Push(Command{Type: SpawnColony, X: -1, Y: 0, Name: "bad"})
		q.Push(Command{Type: Pause})
		q.Push(Command{Type: SpeedUp})
		ctrl := newFakeControls()

		errs := ApplyAll(q, 10, 10, ctrl)

		Convey("The malformed command is reported", func() {
			So(len(errs), ShouldEqual, 1)
		})

		Convey("The later, well-formed commands still applied", func() {
			So(ctrl.paused, ShouldBeTrue)
			So(ctrl.speed, ShouldBeGreaterThan, 1.0)
		})
	})
}
