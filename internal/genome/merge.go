package genome

import "math"

func wmean(va, wa, vb, wb float64) float64 {
	total := wa + wb
	if total <= 0 {
		return (va + vb) / 2
	}
	return (va*wa + vb*wb) / total
}

func wmeanByte(va uint8, wa float64, vb uint8, wb float64) uint8 {
	return uint8(math.Round(wmean(float64(va), wa, float64(vb), wb)))
}

// circularMean averages two angles, weighted, via their unit-circle
// components — the only correct way to average values that wrap at 2pi.
func circularMean(a, wa, b, wb float64) float64 {
	sx := wmean(math.Cos(a), wa, math.Cos(b), wb)
	sy := wmean(math.Sin(a), wa, math.Sin(b), wb)
	m := math.Atan2(sy, sx)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m
}

// Merge combines two genomes into one via a per-field weighted mean, where
// wa and wb are non-negative population weights (typically cell counts).
// MotilityDirection uses a circular mean. MaxTracked rounds to the nearest
// integer and clamps to >= 1. Merge(a, n, a, m) == a field-by-field, since a
// weighted mean of two identical values returns that value.
func Merge(a Genome, wa float64, b Genome, wb float64) Genome {
	var out Genome

	out.SpreadRate = wmean(a.SpreadRate, wa, b.SpreadRate, wb)
	out.MutationRate = wmean(a.MutationRate, wa, b.MutationRate, wb)
	out.Metabolism = wmean(a.Metabolism, wa, b.Metabolism, wb)
	out.Efficiency = wmean(a.Efficiency, wa, b.Efficiency, wb)
	out.ResourceConsumption = wmean(a.ResourceConsumption, wa, b.ResourceConsumption, wb)

	out.Aggression = wmean(a.Aggression, wa, b.Aggression, wb)
	out.Resilience = wmean(a.Resilience, wa, b.Resilience, wb)
	out.ToxinProduction = wmean(a.ToxinProduction, wa, b.ToxinProduction, wb)
	out.ToxinResistance = wmean(a.ToxinResistance, wa, b.ToxinResistance, wb)
	out.DefensePriority = wmean(a.DefensePriority, wa, b.DefensePriority, wb)

	out.DetectionRange = wmean(a.DetectionRange, wa, b.DetectionRange, wb)
	out.MaxTracked = clampInt(int(math.Round(wmean(float64(a.MaxTracked), wa, float64(b.MaxTracked), wb))), 1, 4)
	out.SocialFactor = wmean(a.SocialFactor, wa, b.SocialFactor, wb)
	out.MergeAffinity = wmean(a.MergeAffinity, wa, b.MergeAffinity, wb)
	out.SignalEmission = wmean(a.SignalEmission, wa, b.SignalEmission, wb)
	out.SignalSensitivity = wmean(a.SignalSensitivity, wa, b.SignalSensitivity, wb)
	out.AlarmThreshold = wmean(a.AlarmThreshold, wa, b.AlarmThreshold, wb)
	out.GeneTransferRate = wmean(a.GeneTransferRate, wa, b.GeneTransferRate, wb)

	out.NutrientSensitivity = wmean(a.NutrientSensitivity, wa, b.NutrientSensitivity, wb)
	out.ToxinSensitivity = wmean(a.ToxinSensitivity, wa, b.ToxinSensitivity, wb)
	out.EdgeAffinity = wmean(a.EdgeAffinity, wa, b.EdgeAffinity, wb)
	out.DensityTolerance = wmean(a.DensityTolerance, wa, b.DensityTolerance, wb)
	out.QuorumThreshold = wmean(a.QuorumThreshold, wa, b.QuorumThreshold, wb)

	out.DormancyThreshold = wmean(a.DormancyThreshold, wa, b.DormancyThreshold, wb)
	out.DormancyResistance = wmean(a.DormancyResistance, wa, b.DormancyResistance, wb)
	out.SporulationThreshold = wmean(a.SporulationThreshold, wa, b.SporulationThreshold, wb)
	out.BiofilmInvestment = wmean(a.BiofilmInvestment, wa, b.BiofilmInvestment, wb)
	out.BiofilmTendency = wmean(a.BiofilmTendency, wa, b.BiofilmTendency, wb)
	out.Motility = wmean(a.Motility, wa, b.Motility, wb)
	out.MotilityDirection = circularMean(a.MotilityDirection, wa, b.MotilityDirection, wb)
	out.Specialization = wmean(a.Specialization, wa, b.Specialization, wb)

	for i := range out.HiddenWeights {
		out.HiddenWeights[i] = wmean(a.HiddenWeights[i], wa, b.HiddenWeights[i], wb)
	}
	out.LearningRate = wmean(a.LearningRate, wa, b.LearningRate, wb)
	out.MemoryFactor = wmean(a.MemoryFactor, wa, b.MemoryFactor, wb)

	for i := range out.SpreadWeights {
		out.SpreadWeights[i] = wmean(a.SpreadWeights[i], wa, b.SpreadWeights[i], wb)
	}

	out.BodyColor = Color{
		R: wmeanByte(a.BodyColor.R, wa, b.BodyColor.R, wb),
		G: wmeanByte(a.BodyColor.G, wa, b.BodyColor.G, wb),
		B: wmeanByte(a.BodyColor.B, wa, b.BodyColor.B, wb),
	}
	out.clampAll() // re-derives BorderColor
	return out
}
