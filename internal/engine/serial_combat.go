package engine

import (
	"math"

	"github.com/wokuno/ferox/internal/colony"
	"github.com/wokuno/ferox/internal/grid"
)

const combatEpsilon = 1e-6

// resolveCombat is serial step 4 (C7): border cells of distinct colonies
// adjacent by 4-neighborhood may resolve a duel. Each occupied border cell
// attacks each differing-colony 4-neighbor independently; the attacker's
// success_history[d] tracks the outcome for direction d.
func (w *World) resolveCombat() {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			cell := w.Grid.Get(x, y)
			if cell.Empty() || !cell.IsBorder {
				continue
			}
			attackerID := cell.ColonyID.Load()
			attacker, ok := w.Colonies.Get(attackerID)
			if !ok {
				continue
			}

			for d := 0; d < 4; d++ {
				nx, ny := x+cardinalDX[d], y+cardinalDY[d]
				if !w.Grid.InBounds(nx, ny) {
					continue
				}
				defenderCell := w.Grid.Get(nx, ny)
				if defenderCell.Empty() {
					continue
				}
				defenderID := defenderCell.ColonyID.Load()
				if defenderID == attackerID {
					continue
				}
				defender, ok := w.Colonies.Get(defenderID)
				if !ok {
					continue
				}

				w.duel(x, y, d, attacker, defender, defenderCell)
			}
		}
	}
}

func (w *World) duel(ax, ay, d int, attacker, defender *colony.Colony, defenderCell *grid.Cell) {
	idx := w.Fields.Index(ax, ay)
	toxin := w.Fields.Toxins[idx]
	nutrient := w.Fields.Nutrients[idx]

	flankingBonus := 1.0 // a single-neighbor scan has no flanking information beyond direct contact
	attack := attacker.Genome.Aggression*1.2*flankingBonus*directionWeightFor(d)*(1+attacker.SuccessHistory[d]) +
		attacker.Genome.ToxinProduction*toxin -
		toxin*(1-attacker.Genome.ToxinResistance)*0.5 +
		math.Abs(1-nutrient)*0.1

	defense := defender.Genome.Resilience*(1+defender.BiofilmStrength*0.3) +
		defender.Genome.ToxinResistance -
		toxin*(1-defender.Genome.ToxinResistance)*0.5

	noise := w.WorldRNG.Uniform(0.85, 1.15)
	winProb := attack / (attack + defense + combatEpsilon) * noise
	if winProb > 1 {
		winProb = 1
	}
	if winProb < 0 {
		winProb = 0
	}

	if w.WorldRNG.Float64() < winProb {
		defenderStats := w.Colonies.Stats(defender.ID)
		attackerStats := w.Colonies.Stats(attacker.ID)
		if defenderStats == nil || attackerStats == nil {
			return
		}
		defenderCell.ColonyID.Store(attacker.ID)
		defenderCell.Age.Store(0)
		defenderStats.CellCount.Add(-1)
		attackerStats.CellCount.Add(1)

		gain := 0.05 * attacker.Genome.LearningRate
		attacker.SuccessHistory[d] = clamp01(attacker.SuccessHistory[d] + gain)
	} else if w.WorldRNG.Float64() < 0.3 {
		decay := 0.02 * attacker.Genome.LearningRate
		attacker.SuccessHistory[d] = clamp01(attacker.SuccessHistory[d] - decay)
	}
}

// directionWeightFor reports the DIR_WEIGHT entry for one of the four
// cardinal 4-neighbor directions (all of which are unit-weight cardinals in
// the 8-direction table, regardless of which of the four it is).
func directionWeightFor(cardinalIdx int) float64 {
	return 1.0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
