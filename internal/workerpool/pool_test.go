package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRunCompletesAllTasks(t *testing.T) {
	Convey("Given a pool of 4 workers and 37 tasks", t, func() {
		p := New(4)
		var completed atomic.Int32
		tasks := make([]Task, 37)
		for i := range tasks {
			tasks[i] = func(ctx context.Context) error {
				completed.Add(1)
				return nil
			}
		}

		err := p.Run(context.Background(), tasks)

		Convey("Every task runs and Run reports no error", func() {
			So(err, ShouldBeNil)
			So(completed.Load(), ShouldEqual, int32(37))
		})
	})
}

func TestRunBoundsConcurrency(t *testing.T) {
	Convey("Given a pool of 2 workers and tasks that track concurrent occupancy", t, func() {
		p := New(2)
		var current, max atomic.Int32
		tasks := make([]Task, 20)
		for i := range tasks {
			tasks[i] = func(ctx context.Context) error {
				n := current.Add(1)
				for {
					old := max.Load()
					if n <= old || max.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				current.Add(-1)
				return nil
			}
		}

		_ = p.Run(context.Background(), tasks)

		Convey("Observed concurrency never exceeds the pool size", func() {
			So(max.Load(), ShouldBeLessThanOrEqualTo, int32(2))
		})
	})
}

func TestWaitSurfacesFirstError(t *testing.T) {
	Convey("Given a task that returns an error", t, func() {
		p := New(2)
		boom := errors.New("boom")

		err := p.Run(context.Background(), []Task{
			func(ctx context.Context) error { return boom },
		})

		Convey("Wait/Run propagates it", func() {
			So(err, ShouldEqual, boom)
		})
	})
}

func TestSubmitRecoversPanics(t *testing.T) {
	Convey("Given a task that panics", t, func() {
		p := New(1)

		err := p.Run(context.Background(), []Task{
			func(ctx context.Context) error { panic("kaboom") },
		})

		Convey("Wait returns an error instead of the process crashing", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
