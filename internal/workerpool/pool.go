// Package workerpool implements the fixed-size worker pool the engine uses
// to run each tick's parallel region tasks (C5). Concurrency is bounded by a
// semaphore sized to the pool, and the per-tick completion barrier is an
// errgroup.Group rather than a bare sync.WaitGroup so that a panicking task
// is recovered and surfaced as an error from Wait instead of crashing the
// process.
package workerpool

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work submitted to a Generation. It receives the
// generation's context so long-running tasks can observe cancellation.
type Task func(ctx context.Context) error

// Pool bounds how many tasks may run concurrently across all generations
// started from it. It holds no goroutines of its own between ticks; each
// Begin call starts a fresh Generation that respects the same concurrency
// bound.
type Pool struct {
	size int
	sem  chan struct{}
}

// New returns a Pool that runs at most size tasks concurrently. size must be
// >= 1.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size, sem: make(chan struct{}, size)}
}

// Size reports the pool's configured concurrency bound.
func (p *Pool) Size() int {
	return p.size
}

// Generation is one tick's batch of submitted tasks and their shared
// completion barrier.
type Generation struct {
	pool *Pool
	g    *errgroup.Group
	ctx  context.Context
}

// Begin starts a new generation bound to ctx. Tasks submitted to the
// returned Generation stop being scheduled once ctx is canceled or a prior
// task has returned a non-nil error, matching errgroup.WithContext semantics.
func (p *Pool) Begin(ctx context.Context) *Generation {
	g, gctx := errgroup.WithContext(ctx)
	return &Generation{pool: p, g: g, ctx: gctx}
}

// Submit schedules task to run once a concurrency slot is free. Submit may
// block if the pool is already running Size() tasks; this is what keeps the
// pool "fixed size" rather than spawning a goroutine per task unconditionally.
func (gen *Generation) Submit(task Task) {
	select {
	case gen.pool.sem <- struct{}{}:
	case <-gen.ctx.Done():
		return
	}
	gen.g.Go(func() (err error) {
		defer func() { <-gen.pool.sem }()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("workerpool: task panicked: %v", r)
			}
		}()
		return task(gen.ctx)
	})
}

// Wait blocks until every submitted task has returned, then returns the
// first non-nil error encountered (including any recovered panic), or nil.
func (gen *Generation) Wait() error {
	return gen.g.Wait()
}

// Run is a convenience for the common case of a fixed slice of tasks that
// must all complete (or the first error/panic reported) before the caller
// continues, e.g. a region-decomposed parallel phase.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	gen := p.Begin(ctx)
	for _, task := range tasks {
		task := task
		gen.Submit(task)
	}
	return gen.Wait()
}
