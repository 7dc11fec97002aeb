// Package fields implements the world's environmental scalar fields:
// nutrients, toxins, and the scent field with its source-colony ids, plus
// the scratch buffers scent diffusion needs to double-buffer. The per-tick
// update *policy* (how much a colony depletes, how toxins diffuse) lives in
// internal/engine, which knows about colonies and the grid; this package
// owns only the arrays and the small set of vectorizable scalar kernels that
// touch every cell uniformly.
package fields

// Fields holds one world's environmental scalars, each sized Width*Height
// and allocated once at construction.
type Fields struct {
	Width, Height int

	Nutrients []float64 // default 1.0
	Toxins    []float64 // default 0.0

	Signals       []float64 // default 0.0
	signalsScratch []float64
	SignalSource   []int32 // colony id of strongest recent contributor, 0 = none
	sourceScratch  []int32
}

// New allocates all field arrays, defaulting nutrients to 1.0 and
// toxins/signals to 0.0 per spec §3.
func New(width, height int) *Fields {
	n := width * height
	f := &Fields{
		Width:          width,
		Height:         height,
		Nutrients:      make([]float64, n),
		Toxins:         make([]float64, n),
		Signals:        make([]float64, n),
		signalsScratch: make([]float64, n),
		SignalSource:   make([]int32, n),
		sourceScratch:  make([]int32, n),
	}
	for i := range f.Nutrients {
		f.Nutrients[i] = 1.0
	}
	return f
}

// Index returns the row-major index for (x,y).
func (f *Fields) Index(x, y int) int {
	return y*f.Width + x
}

// ScentScratch returns the write-side scratch buffers for the current
// diffusion step: (next signals, next source ids). Callers fill these in
// from the current Signals/SignalSource and then call CommitScent to swap.
func (f *Fields) ScentScratch() ([]float64, []int32) {
	return f.signalsScratch, f.sourceScratch
}

// CommitScent swaps the freshly computed scratch buffers into Signals /
// SignalSource, the double-buffered diffusion step of spec §4.4.
func (f *Fields) CommitScent() {
	f.Signals, f.signalsScratch = f.signalsScratch, f.Signals
	f.SignalSource, f.sourceScratch = f.sourceScratch, f.SignalSource
}

// Clamp01 clamps v to [0,1]. Every field value must satisfy this after every
// tick per spec §3/§8.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MulInPlace multiplies every element of s by factor, in place, then clamps
// to [0,1]. This is the "global multiplicative decay" kernel (used for toxin
// decay). Behaviorally specified; a SIMD build may vectorize
// this loop, but must match this scalar form bit-for-bit to 1 ULP, per
// spec §9 design notes.
func MulInPlace(s []float64, factor float64) {
	for i := range s {
		s[i] = Clamp01(s[i] * factor)
	}
}

// SubClamp subtracts delta from s[i] (delta may vary per cell via deltas) and
// clamps to [0,1]. Used by the nutrient depletion pass.
func SubClamp(s []float64, deltas []float64) {
	for i := range s {
		s[i] = Clamp01(s[i] - deltas[i])
	}
}

// AddClamp adds deltas to s in place and clamps to [0,1]. Used by nutrient
// regeneration and toxin emission passes.
func AddClamp(s []float64, deltas []float64) {
	for i := range s {
		s[i] = Clamp01(s[i] + deltas[i])
	}
}

// CopyClamp copies src into dst clamped to [0,1], e.g. for seeding scratch
// buffers or sanitizing externally-supplied field values (spec §8 scenario
// 5: garbage input in [-1,3] must clamp to [0,1] after one update).
func CopyClamp(dst, src []float64) {
	for i := range src {
		dst[i] = Clamp01(src[i])
	}
}
