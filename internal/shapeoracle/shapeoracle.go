// Package shapeoracle implements the deterministic procedural shape function
// used by the snapshot exporter and external renderers to draw organic,
// non-circular colony outlines (C8). It is a pure function of its inputs:
// same seed/angle/phase/evolution always yields the same multiplier, with no
// dependency on simulation RNG state.
package shapeoracle

import "math"

// hash64 is the splitmix64 finalizer, used to turn a seed plus an integer
// lattice coordinate into a well-mixed 64-bit value.
func hash64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x = x ^ (x >> 31)
	return x
}

// lattice returns a pseudo-random value in [-1,1] for integer lattice point i
// under seed.
func lattice(seed uint64, i int64) float64 {
	h := hash64(seed ^ uint64(i)*0x2545f4914f6cdd1d)
	return float64(h>>11)/float64(1<<53)*2 - 1
}

// smooth is the standard quintic fade curve, used to avoid the
// discontinuous-derivative artifacts of linear interpolation.
func smooth(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// valueNoise1D samples one octave of 1D value noise at x, interpolating
// between hashed lattice points.
func valueNoise1D(seed uint64, x float64) float64 {
	i0 := int64(math.Floor(x))
	i1 := i0 + 1
	t := smooth(x - float64(i0))
	a := lattice(seed, i0)
	b := lattice(seed, i1)
	return a + t*(b-a)
}

// octaveNoise combines a few octaves of valueNoise1D, each at double the
// frequency and half the amplitude of the last, for a more organic signal
// than a single lattice would give.
func octaveNoise(seed uint64, x float64, octaves int) float64 {
	sum := 0.0
	amplitude := 1.0
	frequency := 1.0
	norm := 0.0
	for o := 0; o < octaves; o++ {
		sum += amplitude * valueNoise1D(seed+uint64(o)*0x9e3779b1, x*frequency)
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return sum / norm
}

// ShapeAt returns a deterministic radius multiplier in [0.5, 1.5] for a
// colony outline point at the given angle (radians), given the colony's
// shape seed, wobble phase, and shape evolution state. It combines:
//   - multi-octave 1D value noise over angle, for a stable organic bumpiness
//     that varies smoothly around the circle and is unique per seed,
//   - a slow evolution term that rotates/reshapes the noise field over the
//     colony's lifetime,
//   - low-amplitude sinusoidal "breathing" driven by phase.
func ShapeAt(seed uint64, angle, phase, evolution float64) float64 {
	const twoPi = 2 * math.Pi
	a := math.Mod(angle, twoPi)
	if a < 0 {
		a += twoPi
	}

	// Sample noise around a fixed-circumference ring. The Mod above folds
	// angle 2π onto 0, so both give the same value; the noise lattice itself
	// is not periodic, so angles just below 2π do not approach the value at 0.
	const ringSamples = 8.0
	x := a/twoPi*ringSamples + evolution*0.37

	n := octaveNoise(seed, x, 3) // ∈ [-1,1], roughly
	bumpiness := 0.2 * n

	breathing := 0.08 * math.Sin(phase)
	driftTerm := 0.05 * math.Sin(evolution*0.15+a*2)

	multiplier := 1.0 + bumpiness + breathing + driftTerm
	if multiplier < 0.5 {
		multiplier = 0.5
	}
	if multiplier > 1.5 {
		multiplier = 1.5
	}
	return multiplier
}
