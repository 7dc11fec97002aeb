// Package atomicx provides lock-free numeric primitives used where Ferox's
// concurrency model calls for a value written from one goroutine (a command
// reader, a worker) and read from another (the tick loop) without a mutex.
package atomicx

import (
	"math"
	"sync/atomic"
)

// Float64 encapsulates a float64 for non-locking atomic operations. Grid
// cells and colony stats never need this — those are plain ints under CAS.
// The engine's speed multiplier does not use it either: commands are applied
// on the tick loop's own goroutine, so World.SpeedMultiplier is a plain
// float64.
type Float64 struct {
	bits atomic.Uint64
}

// NewFloat64 creates an atomic float64 initialized to val.
func NewFloat64(val float64) *Float64 {
	f := &Float64{}
	f.bits.Store(math.Float64bits(val))
	return f
}

// Load atomically reads the float64.
func (f *Float64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Store atomically sets the float64.
func (f *Float64) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Add atomically adds addend and returns the new value. Unlike a retry loop
// that silently discards races, this recomputes from whatever the winning
// CAS observed, so the returned value always matches what was actually
// stored.
func (f *Float64) Add(addend float64) float64 {
	for {
		old := f.bits.Load()
		newVal := math.Float64frombits(old) + addend
		newBits := math.Float64bits(newVal)
		if f.bits.CompareAndSwap(old, newBits) {
			return newVal
		}
	}
}

// CASMaxInt32 atomically sets *addr to val if val is greater than the
// current value, looping on failed CAS the way a lock-free high-water mark
// must. Used for Colony.MaxCellCount, which must never decrease even though
// many workers may be racing to report a new population peak in the same
// tick.
func CASMaxInt32(addr *atomic.Int32, val int32) {
	for {
		old := addr.Load()
		if val <= old {
			return
		}
		if addr.CompareAndSwap(old, val) {
			return
		}
	}
}
