package engine

import "github.com/wokuno/ferox/internal/colony"

const shapeEvolutionStep = 0.02

// updateColonyBehavior is serial step 10 (C7): recompute signal_strength,
// stress_level, biofilm_strength, and state for every active colony, and
// advance shape_evolution.
func (w *World) updateColonyBehavior() {
	for _, c := range w.Colonies.All() {
		if !c.Active || c.CellCount == 0 {
			continue
		}

		c.SignalStrength = clamp01(c.Genome.SignalEmission * (0.5 + 0.5*float64(c.CellCount)/200))

		crowding := 0.0
		if c.MaxCellCount > 0 {
			crowding = 1 - float64(c.CellCount)/float64(c.MaxCellCount)
			if crowding < 0 {
				crowding = 0
			}
		}
		populationPressure := 0.0
		if c.CellCount < c.LastPopulation {
			populationPressure = float64(c.LastPopulation-c.CellCount) / float64(c.LastPopulation+1)
		}
		c.StressLevel = clamp01(0.4*crowding + 0.6*populationPressure)

		c.BiofilmStrength = clamp01(c.BiofilmStrength*0.95 + c.Genome.BiofilmInvestment*0.1)

		switch {
		case c.StressLevel > c.Genome.SporulationThreshold && c.Genome.DormancyResistance < 0.3:
			c.State = colony.Dormant
			c.IsDormant = true
		case c.StressLevel > 0.5:
			c.State = colony.Stressed
			c.IsDormant = false
		default:
			c.State = colony.Normal
			c.IsDormant = false
		}

		c.ShapeEvolution += shapeEvolutionStep
		c.WobblePhase += 0.05
	}
}
