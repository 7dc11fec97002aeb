package genome

import "math"

// dimension is one term of the weighted distance: a tabulated weight and a
// function returning the normalized ([0,1]) difference for that trait
// between two genomes.
type dimension struct {
	weight float64
	diff   func(a, b *Genome) float64
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func scalarDim(weight float64, field func(g *Genome) float64) dimension {
	return dimension{weight: weight, diff: func(a, b *Genome) float64 {
		return absf(field(a) - field(b))
	}}
}

// bipolarDim is for traits ranged [-1,1]: the raw difference spans [0,2], so
// it is halved to normalize to [0,1].
func bipolarDim(weight float64, field func(g *Genome) float64) dimension {
	return dimension{weight: weight, diff: func(a, b *Genome) float64 {
		return absf(field(a)-field(b)) / 2
	}}
}

var distanceDims = buildDistanceDims()

func buildDistanceDims() []dimension {
	dims := []dimension{
		scalarDim(1.5, func(g *Genome) float64 { return g.SpreadRate }),
		scalarDim(1.0, func(g *Genome) float64 { return g.MutationRate }),
		scalarDim(1.5, func(g *Genome) float64 { return g.Metabolism }),
		scalarDim(1.0, func(g *Genome) float64 { return g.Efficiency }),
		scalarDim(1.0, func(g *Genome) float64 { return g.ResourceConsumption }),

		scalarDim(1.5, func(g *Genome) float64 { return g.Aggression }),
		scalarDim(1.5, func(g *Genome) float64 { return g.Resilience }),
		scalarDim(1.0, func(g *Genome) float64 { return g.ToxinProduction }),
		scalarDim(1.0, func(g *Genome) float64 { return g.ToxinResistance }),
		scalarDim(1.0, func(g *Genome) float64 { return g.DefensePriority }),

		scalarDim(0.75, func(g *Genome) float64 { return g.DetectionRange }),
		dimension{weight: 0.5, diff: func(a, b *Genome) float64 {
			return absf(float64(a.MaxTracked)-float64(b.MaxTracked)) / 3
		}},
		bipolarDim(1.0, func(g *Genome) float64 { return g.SocialFactor }),
		scalarDim(0.75, func(g *Genome) float64 { return g.MergeAffinity }),
		scalarDim(0.75, func(g *Genome) float64 { return g.SignalEmission }),
		scalarDim(0.75, func(g *Genome) float64 { return g.SignalSensitivity }),
		scalarDim(0.5, func(g *Genome) float64 { return g.AlarmThreshold }),
		scalarDim(0.5, func(g *Genome) float64 { return g.GeneTransferRate }),

		scalarDim(0.75, func(g *Genome) float64 { return g.NutrientSensitivity }),
		scalarDim(0.75, func(g *Genome) float64 { return g.ToxinSensitivity }),
		bipolarDim(0.5, func(g *Genome) float64 { return g.EdgeAffinity }),
		scalarDim(0.75, func(g *Genome) float64 { return g.DensityTolerance }),
		scalarDim(0.5, func(g *Genome) float64 { return g.QuorumThreshold }),

		scalarDim(0.75, func(g *Genome) float64 { return g.DormancyThreshold }),
		scalarDim(0.75, func(g *Genome) float64 { return g.DormancyResistance }),
		scalarDim(0.5, func(g *Genome) float64 { return g.SporulationThreshold }),
		scalarDim(0.75, func(g *Genome) float64 { return g.BiofilmInvestment }),
		scalarDim(0.75, func(g *Genome) float64 { return g.BiofilmTendency }),
		scalarDim(1.0, func(g *Genome) float64 { return g.Motility }),
		dimension{weight: 0.5, diff: func(a, b *Genome) float64 {
			return circularDiff(a.MotilityDirection, b.MotilityDirection) / math.Pi
		}},
		scalarDim(0.75, func(g *Genome) float64 { return g.Specialization }),

		scalarDim(0.5, func(g *Genome) float64 { return g.LearningRate }),
		scalarDim(0.5, func(g *Genome) float64 { return g.MemoryFactor }),
	}

	for i := 0; i < 8; i++ {
		i := i
		dims = append(dims, scalarDim(0.1875, func(g *Genome) float64 { return g.SpreadWeights[i] }))
		dims = append(dims, bipolarDim(0.125, func(g *Genome) float64 { return g.HiddenWeights[i] }))
	}

	return dims
}

func circularDiff(a, b float64) float64 {
	d := math.Mod(absf(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// totalDistanceWeight is the sum of all tabulated weights (30.0 for the
// table above); Distance divides by it so the result is always in [0,1]
// regardless of how the table is tuned.
var totalDistanceWeight = func() float64 {
	sum := 0.0
	for _, d := range distanceDims {
		sum += d.weight
	}
	return sum
}()

// Distance is a weighted L1 norm over trait differences, normalized to
// [0,1]. It is symmetric, zero for identical genomes, and satisfies the
// triangle inequality (a sum of per-dimension metrics, each itself a metric,
// scaled by a positive constant).
func Distance(a, b Genome) float64 {
	sum := 0.0
	for _, d := range distanceDims {
		sum += d.weight * d.diff(&a, &b)
	}
	return sum / totalDistanceWeight
}
