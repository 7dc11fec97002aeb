package engine

import "github.com/wokuno/ferox/internal/fields"

// Nutrient/toxin/scent tuning constants. Not specified numerically by name
// in the component contract beyond "a small constant" / "≈0.95"; chosen to
// keep a colony's territory visibly draining and regenerating over tens of
// ticks, matching the scenarios in spec §8.
const (
	nutrientDepletionBase = 0.02
	nutrientRegen         = 0.01

	toxinDecayFactor   = 0.95
	toxinNeighborShare = 0.25 // fraction of a border cell's emission reaching each 4-neighbor

	toxinInteriorVulnerability = 0.5
	toxinBorderVulnerability   = 1.0

	scentLocalRetention = 0.6
	scentNeighborShare  = 0.075
	scentEmissionBase   = 0.3
)

// updateNutrients is serial step 2 (C4): occupied cells deplete, empty cells
// regenerate, everything clamped to [0,1].
func (w *World) updateNutrients() {
	depletions := make([]float64, len(w.Fields.Nutrients))
	regens := make([]float64, len(w.Fields.Nutrients))

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			idx := w.Fields.Index(x, y)
			cell := w.Grid.Get(x, y)
			if cell.Empty() {
				regens[idx] = nutrientRegen
				continue
			}
			c, ok := w.Colonies.Get(cell.ColonyID.Load())
			if !ok {
				continue
			}
			depletions[idx] = nutrientDepletionBase * c.Genome.Metabolism * (1 - 0.5*c.Genome.Efficiency)
		}
	}

	fields.SubClamp(w.Fields.Nutrients, depletions)
	fields.AddClamp(w.Fields.Nutrients, regens)
}

// updateToxins is serial step 2b (C4): a global multiplicative decay,
// followed by localized emission around colony border cells (scaled by
// toxin_production*(1+0.5*defense_priority), with a share reaching each
// 4-neighbor), followed by a damage pass: each occupied cell rolls a death
// chance of toxin_level*(1-toxin_resistance)*vulnerability, border cells
// being more vulnerable than interior ones.
func (w *World) updateToxins() {
	fields.MulInPlace(w.Fields.Toxins, toxinDecayFactor)

	emission := make([]float64, len(w.Fields.Toxins))
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			cell := w.Grid.Get(x, y)
			if cell.Empty() || !cell.IsBorder {
				continue
			}
			c, ok := w.Colonies.Get(cell.ColonyID.Load())
			if !ok {
				continue
			}

			own := c.Genome.ToxinProduction * (1 + 0.5*c.Genome.DefensePriority)
			idx := w.Fields.Index(x, y)
			emission[idx] += own

			for d := 0; d < 4; d++ {
				nx, ny := x+cardinalDX[d], y+cardinalDY[d]
				if !w.Grid.InBounds(nx, ny) {
					continue
				}
				emission[w.Fields.Index(nx, ny)] += own * toxinNeighborShare
			}
		}
	}
	fields.AddClamp(w.Fields.Toxins, emission)

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			cell := w.Grid.Get(x, y)
			if cell.Empty() {
				continue
			}
			colonyID := cell.ColonyID.Load()
			c, ok := w.Colonies.Get(colonyID)
			if !ok {
				continue
			}

			idx := w.Fields.Index(x, y)
			vulnerability := toxinInteriorVulnerability
			if cell.IsBorder {
				vulnerability = toxinBorderVulnerability
			}
			deathChance := w.Fields.Toxins[idx] * (1 - c.Genome.ToxinResistance) * vulnerability

			if w.WorldRNG.Float64() < deathChance {
				cell.ColonyID.Store(0)
				cell.Age.Store(0)
				if stats := w.Colonies.Stats(colonyID); stats != nil {
					stats.CellCount.Add(-1)
				}
			}
		}
	}
}

// diffuseScent is serial step 3 (C4): a double-buffered diffusion step.
// New field = old*0.6 locally + old*0.075 to each 4-neighbor, plus fresh
// emission from occupied cells. Source ids propagate with the strongest
// contributor winning ties.
func (w *World) diffuseScent() {
	next, nextSrc := w.Fields.ScentScratch()

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			idx := w.Fields.Index(x, y)

			bestContribution := scentLocalRetention * w.Fields.Signals[idx]
			bestSource := w.Fields.SignalSource[idx]
			value := bestContribution

			for d := 0; d < 4; d++ {
				nx, ny := x+cardinalDX[d], y+cardinalDY[d]
				if !w.Grid.InBounds(nx, ny) {
					continue
				}
				nidx := w.Fields.Index(nx, ny)
				contribution := scentNeighborShare * w.Fields.Signals[nidx]
				value += contribution
				if contribution > bestContribution {
					bestContribution = contribution
					bestSource = w.Fields.SignalSource[nidx]
				}
			}

			cell := w.Grid.Get(x, y)
			if !cell.Empty() {
				if c, ok := w.Colonies.Get(cell.ColonyID.Load()); ok {
					emission := c.Genome.SignalEmission * scentEmissionBase
					if cell.IsBorder {
						emission *= 2
					}
					emission *= 1 + float64(c.CellCount)/500
					value += emission
					if emission >= bestContribution {
						bestSource = c.ID
					}
				}
			}

			next[idx] = fields.Clamp01(value)
			nextSrc[idx] = bestSource
		}
	}

	w.Fields.CommitScent()
}

var cardinalDX = [4]int{0, 1, 0, -1}
var cardinalDY = [4]int{-1, 0, 1, 0}
