package engine

import (
	"fmt"

	"github.com/wokuno/ferox/internal/colony"
	"github.com/wokuno/ferox/internal/genome"
)

// mutateAndSpeciate is serial step 6 (C7). For each active colony, with
// probability scaled by stress and size, mutate its genome. If the
// resulting distance from the pre-mutation genome exceeds
// cfg.SpeciationThreshold and the colony is large enough, speciate: BFS from
// a random border cell, peel off a fragment of cells into a brand-new colony
// carrying the mutated genome, and restore the parent's original genome.
func (w *World) mutateAndSpeciate() {
	for _, c := range w.Colonies.All() {
		if !c.Active || c.CellCount == 0 {
			continue
		}

		mutateChance := w.cfg.BaseMutationChance * (1 + c.StressLevel) * sizeFactor(c.CellCount)
		if w.WorldRNG.Float64() >= mutateChance {
			continue
		}

		original := c.Genome
		mutated := genome.Mutate(c.Genome, w.WorldRNG)
		dist := genome.Distance(original, mutated)

		if dist > w.cfg.SpeciationThreshold && c.CellCount >= w.cfg.SpeciationMinSize {
			w.speciate(c, original, mutated)
			continue
		}

		c.Genome = mutated
	}
}

// sizeFactor makes larger colonies mutate somewhat more often, scaled down
// so a colony of a few hundred cells isn't mutating every single tick.
func sizeFactor(cellCount int32) float64 {
	f := 1 + float64(cellCount)/500
	if f > 3 {
		f = 3
	}
	return f
}

// speciate carves a fragment of parent's cells (found via BFS from a random
// border cell) into a brand-new colony carrying mutated, leaving parent's
// genome untouched (the mutation is attributed entirely to the child).
func (w *World) speciate(parent *colony.Colony, original, mutated genome.Genome) {
	borderCells := w.collectBorderCells(parent.ID)
	if len(borderCells) == 0 {
		return
	}
	start := borderCells[w.WorldRNG.Intn(len(borderCells))]

	limit := int(float64(parent.CellCount) * w.cfg.SpeciationShare)
	if limit < 1 {
		limit = 1
	}
	fragment := w.bfsCollect(start[0], start[1], parent.ID, limit)
	if len(fragment) == 0 {
		return
	}

	child, err := w.Colonies.Add("", mutated, parent.ID)
	if err != nil {
		w.logger.Printf("engine: speciation failed to allocate child colony: %v", err)
		return
	}
	child.Name = fmt.Sprintf("colony-%d", child.ID)
	child.Color = mutated.BodyColor
	child.ShapeSeed = parent.ShapeSeed ^ uint64(child.ID)*0x9e3779b97f4a7c15

	childStats := w.Colonies.Stats(child.ID)
	parentStats := w.Colonies.Stats(parent.ID)
	if childStats == nil || parentStats == nil {
		return
	}

	for _, pos := range fragment {
		cell := w.Grid.Get(pos[0], pos[1])
		cell.ColonyID.Store(child.ID)
		parentStats.CellCount.Add(-1)
		childStats.CellCount.Add(1)
	}

	parent.Genome = original
}

func (w *World) collectBorderCells(colonyID int32) [][2]int {
	var border [][2]int
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			cell := w.Grid.Get(x, y)
			if cell.ColonyID.Load() == colonyID && cell.IsBorder {
				border = append(border, [2]int{x, y})
			}
		}
	}
	return border
}
