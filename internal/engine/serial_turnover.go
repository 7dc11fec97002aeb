package engine

const (
	baseDeathChance     = 0.002
	largeColonyPenalty  = 0.002 // additional death chance per 100 cells over largeColonyThresh
	largeColonyThresh   = 200
	nutrientShortfallW  = 0.01
	toxinExcessW        = 0.01
	interiorDecayW      = 0.003
	oldAgePenaltyStart  = 140
	oldAgePenaltyPerAge = 0.0005
	nutrientReturnShare = 0.3
)

// applyTurnover is serial step 5 (C7): every occupied cell rolls a small
// death chance, modulated by colony size, local nutrient shortfall, local
// toxin excess, interior decay pressure, dormancy protection, and old-age
// penalty. On death, a share of nutrients is returned to the cell and it is
// cleared.
func (w *World) applyTurnover() {
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
			deathChance := baseDeathChance

			if c.CellCount > largeColonyThresh {
				deathChance += largeColonyPenalty * float64(c.CellCount-largeColonyThresh) / 100
			}

			nutrient := w.Fields.Nutrients[idx]
			if nutrient < 0.3 {
				deathChance += nutrientShortfallW * (0.3 - nutrient)
			}

			toxin := w.Fields.Toxins[idx]
			excess := toxin * (1 - c.Genome.ToxinResistance)
			deathChance += toxinExcessW * excess

			if !cell.IsBorder {
				deathChance += interiorDecayW
			}

			age := cell.Age.Load()
			if age > oldAgePenaltyStart {
				deathChance += oldAgePenaltyPerAge * float64(age-oldAgePenaltyStart)
			}

			if c.IsDormant {
				deathChance *= 0.1
			}

			if w.WorldRNG.Float64() < deathChance {
				w.Fields.Nutrients[idx] = clamp01(w.Fields.Nutrients[idx] + nutrientReturnShare*(1-nutrient))
				cell.ColonyID.Store(0)
				cell.Age.Store(0)
				if stats := w.Colonies.Stats(colonyID); stats != nil {
					stats.CellCount.Add(-1)
				}
			}
		}
	}
}
