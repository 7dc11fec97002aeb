package rng

import "math/rand"

// MathRand wraps a *rand.Rand as a Source. The world owns exactly one of
// these for its serial phases (combat rolls, toxin deaths, turnover,
// mutation/speciation, division, gene transfer, dynamic spawn) —
// single-writer, never touched by a worker
// goroutine, so no mutex is needed around it, unlike the shared
// *rand.Rand+mutex pattern a concurrent population manager would need.
type MathRand struct {
	r *rand.Rand
}

// NewMathRand seeds the world-level serial RNG.
func NewMathRand(seed int64) *MathRand {
	return &MathRand{r: rand.New(rand.NewSource(seed))}
}

func (m *MathRand) Float64() float64 {
	return m.r.Float64()
}

func (m *MathRand) Uniform(lo, hi float64) float64 {
	return lo + m.r.Float64()*(hi-lo)
}

func (m *MathRand) Intn(n int) int {
	return m.r.Intn(n)
}

func (m *MathRand) Sign() float64 {
	if m.r.Intn(2) == 0 {
		return -1
	}
	return 1
}
