package genome

import "github.com/wokuno/ferox/internal/rng"

// transferField names one scalar trait eligible for horizontal gene
// transfer, via accessor closures so Transfer can operate generically over
// a random subset of them.
type transferField struct {
	get func(g *Genome) float64
	set func(g *Genome, v float64)
}

var transferFields = buildTransferFields()

func buildTransferFields() []transferField {
	fields := []transferField{
		{func(g *Genome) float64 { return g.SpreadRate }, func(g *Genome, v float64) { g.SpreadRate = v }},
		{func(g *Genome) float64 { return g.Metabolism }, func(g *Genome, v float64) { g.Metabolism = v }},
		{func(g *Genome) float64 { return g.Efficiency }, func(g *Genome, v float64) { g.Efficiency = v }},
		{func(g *Genome) float64 { return g.ResourceConsumption }, func(g *Genome, v float64) { g.ResourceConsumption = v }},
		{func(g *Genome) float64 { return g.Aggression }, func(g *Genome, v float64) { g.Aggression = v }},
		{func(g *Genome) float64 { return g.Resilience }, func(g *Genome, v float64) { g.Resilience = v }},
		{func(g *Genome) float64 { return g.ToxinProduction }, func(g *Genome, v float64) { g.ToxinProduction = v }},
		{func(g *Genome) float64 { return g.ToxinResistance }, func(g *Genome, v float64) { g.ToxinResistance = v }},
		{func(g *Genome) float64 { return g.DefensePriority }, func(g *Genome, v float64) { g.DefensePriority = v }},
		{func(g *Genome) float64 { return g.DetectionRange }, func(g *Genome, v float64) { g.DetectionRange = v }},
		{func(g *Genome) float64 { return g.MergeAffinity }, func(g *Genome, v float64) { g.MergeAffinity = v }},
		{func(g *Genome) float64 { return g.SignalEmission }, func(g *Genome, v float64) { g.SignalEmission = v }},
		{func(g *Genome) float64 { return g.SignalSensitivity }, func(g *Genome, v float64) { g.SignalSensitivity = v }},
		{func(g *Genome) float64 { return g.NutrientSensitivity }, func(g *Genome, v float64) { g.NutrientSensitivity = v }},
		{func(g *Genome) float64 { return g.ToxinSensitivity }, func(g *Genome, v float64) { g.ToxinSensitivity = v }},
		{func(g *Genome) float64 { return g.DensityTolerance }, func(g *Genome, v float64) { g.DensityTolerance = v }},
		{func(g *Genome) float64 { return g.DormancyThreshold }, func(g *Genome, v float64) { g.DormancyThreshold = v }},
		{func(g *Genome) float64 { return g.DormancyResistance }, func(g *Genome, v float64) { g.DormancyResistance = v }},
		{func(g *Genome) float64 { return g.BiofilmInvestment }, func(g *Genome, v float64) { g.BiofilmInvestment = v }},
		{func(g *Genome) float64 { return g.BiofilmTendency }, func(g *Genome, v float64) { g.BiofilmTendency = v }},
		{func(g *Genome) float64 { return g.Motility }, func(g *Genome, v float64) { g.Motility = v }},
		{func(g *Genome) float64 { return g.Specialization }, func(g *Genome, v float64) { g.Specialization = v }},
		{func(g *Genome) float64 { return g.LearningRate }, func(g *Genome, v float64) { g.LearningRate = v }},
		{func(g *Genome) float64 { return g.MemoryFactor }, func(g *Genome, v float64) { g.MemoryFactor = v }},
	}
	return fields
}

// Transfer pulls a random subset of recipient's scalar traits toward donor's
// values by transferStrength in [0,1], per spec §4.3. No clamping is applied
// beyond each trait's own documented range (handled by clampAll).
func Transfer(donor, recipient Genome, transferStrength float64, r rng.Source) Genome {
	out := recipient
	count := 1 + r.Intn(len(transferFields)/2)
	picked := map[int]bool{}
	for len(picked) < count {
		picked[r.Intn(len(transferFields))] = true
	}
	for idx := range picked {
		f := transferFields[idx]
		dv := f.get(&donor)
		rv := f.get(&out)
		f.set(&out, rv+(dv-rv)*transferStrength)
	}
	out.clampAll()
	return out
}
