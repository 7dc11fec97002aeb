package genome

import (
	"math"

	"github.com/wokuno/ferox/internal/rng"
)

// radicalTraits are the ten designated traits eligible for a radical
// mutation: a full, unclamped-by-delta reroll of exactly one of them, per
// spec §4.3 ("a 1% radical event completely randomizes exactly one of ten
// designated traits").
var radicalTraits = []func(g *Genome, r rng.Source){
	func(g *Genome, r rng.Source) { g.Aggression = r.Float64() },
	func(g *Genome, r rng.Source) { g.Resilience = r.Float64() },
	func(g *Genome, r rng.Source) { g.SpreadRate = r.Float64() },
	func(g *Genome, r rng.Source) { g.ToxinProduction = r.Float64() },
	func(g *Genome, r rng.Source) { g.ToxinResistance = r.Float64() },
	func(g *Genome, r rng.Source) { g.MergeAffinity = r.Float64() },
	func(g *Genome, r rng.Source) { g.Motility = r.Float64() },
	func(g *Genome, r rng.Source) { g.GeneTransferRate = r.Float64() },
	func(g *Genome, r rng.Source) { g.Specialization = r.Float64() },
	func(g *Genome, r rng.Source) { g.DefensePriority = r.Float64() },
}

// Mutate returns a mutated copy of g. The input is never modified.
func Mutate(g Genome, r rng.Source) Genome {
	out := g

	mutationChance := math.Max(g.MutationRate, 0.08)
	if r.Float64() < 0.05 {
		// Hypermutation: quadruples the chance for this invocation only.
		mutationChance *= 4
	}

	if r.Float64() < 0.01 {
		radicalTraits[r.Intn(len(radicalTraits))](&out, r)
	}

	roll := func(v *float64, lo, hi float64) {
		if r.Float64() < mutationChance {
			*v = clamp(*v+r.Uniform(-0.5, 0.5), lo, hi)
		}
	}

	roll(&out.SpreadRate, 0, 1)
	roll(&out.MutationRate, 0, 1)
	roll(&out.Metabolism, 0, 1)
	roll(&out.Efficiency, 0, 1)
	roll(&out.ResourceConsumption, 0, 1)

	roll(&out.Aggression, 0, 1)
	roll(&out.Resilience, 0, 1)
	roll(&out.ToxinProduction, 0, 1)
	roll(&out.ToxinResistance, 0, 1)
	roll(&out.DefensePriority, 0, 1)

	roll(&out.DetectionRange, 0, 1)
	roll(&out.SocialFactor, -1, 1)
	roll(&out.MergeAffinity, 0, 1)
	roll(&out.SignalEmission, 0, 1)
	roll(&out.SignalSensitivity, 0, 1)
	roll(&out.AlarmThreshold, 0, 1)
	roll(&out.GeneTransferRate, 0, 1)

	roll(&out.NutrientSensitivity, 0, 1)
	roll(&out.ToxinSensitivity, 0, 1)
	roll(&out.EdgeAffinity, -1, 1)
	roll(&out.DensityTolerance, 0, 1)
	roll(&out.QuorumThreshold, 0, 1)

	roll(&out.DormancyThreshold, 0, 1)
	roll(&out.DormancyResistance, 0, 1)
	roll(&out.SporulationThreshold, 0, 1)
	roll(&out.BiofilmInvestment, 0, 1)
	roll(&out.BiofilmTendency, 0, 1)
	roll(&out.Motility, 0, 1)
	roll(&out.Specialization, 0, 1)

	roll(&out.LearningRate, 0, 1)
	roll(&out.MemoryFactor, 0, 1)

	for i := range out.HiddenWeights {
		roll(&out.HiddenWeights[i], -1, 1)
	}
	for i := range out.SpreadWeights {
		roll(&out.SpreadWeights[i], 0, 1)
	}

	// max_tracked changes by +/-1 with low probability.
	if r.Float64() < mutationChance*0.3 {
		delta := 1
		if r.Float64() < 0.5 {
			delta = -1
		}
		out.MaxTracked = clampInt(out.MaxTracked+delta, 1, 4)
	}

	// motility_direction takes a small signed angular step, mod 2pi.
	if r.Float64() < mutationChance {
		out.MotilityDirection += r.Uniform(-0.3, 0.3)
	}

	// Colors drift by <= +/-30 per channel with 30% probability.
	if r.Float64() < 0.3 {
		out.BodyColor = driftChannel(out.BodyColor, r)
	}

	out.clampAll() // also re-derives BorderColor = BodyColor/2
	return out
}

func driftChannel(c Color, r rng.Source) Color {
	shift := func(v uint8) uint8 {
		d := int(r.Uniform(-30, 30))
		nv := int(v) + d
		if nv < 0 {
			nv = 0
		}
		if nv > 255 {
			nv = 255
		}
		return uint8(nv)
	}
	return Color{shift(c.R), shift(c.G), shift(c.B)}
}
