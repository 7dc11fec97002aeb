package engine

import (
	"fmt"

	"github.com/wokuno/ferox/internal/colony"
	"github.com/wokuno/ferox/internal/genome"
)

const minComponentSize = 5

// checkDivisions is serial step 7 (C7): for every active colony, flood-fill
// its cells over 8-connectivity. If more than one component of size >=
// minComponentSize exists, the largest keeps the original id; every other
// sizeable component becomes a new colony (small genome mutation, parent_id
// set to the original colony). Components smaller than minComponentSize are
// discarded as fragmentation (their cells cleared).
func (w *World) checkDivisions() {
	for _, c := range w.Colonies.All() {
		if !c.Active || c.CellCount < int32(2*minComponentSize) {
			continue // can't have two sizeable components with fewer than 2*min cells
		}

		components := w.floodFillColony(c.ID)
		if len(components) <= 1 {
			continue
		}

		largest := largestComponent(components)

		for _, comp := range components {
			if comp.id == largest.id {
				continue
			}
			if len(comp.cells) < minComponentSize {
				w.clearCells(comp.cells, c.ID)
				continue
			}
			w.splitOffComponent(c, comp)
		}
	}
}

func largestComponent(components []component) component {
	best := components[0]
	for _, comp := range components[1:] {
		if len(comp.cells) > len(best.cells) {
			best = comp
		}
	}
	return best
}

// clearCells empties cells belonging to a too-small fragment, returning
// their population to the parent colony's atomic counter.
func (w *World) clearCells(cells [][2]int, colonyID int32) {
	stats := w.Colonies.Stats(colonyID)
	for _, pos := range cells {
		cell := w.Grid.Get(pos[0], pos[1])
		cell.ColonyID.Store(0)
		cell.Age.Store(0)
		if stats != nil {
			stats.CellCount.Add(-1)
		}
	}
}

func (w *World) splitOffComponent(parent *colony.Colony, comp component) {
	childGenome := genome.Mutate(parent.Genome, w.WorldRNG)
	child, err := w.Colonies.Add("", childGenome, parent.ID)
	if err != nil {
		w.logger.Printf("engine: division split failed to allocate colony: %v", err)
		return
	}
	child.Name = fmt.Sprintf("colony-%d", child.ID)
	child.Color = childGenome.BodyColor
	child.ShapeSeed = parent.ShapeSeed ^ uint64(child.ID)*0x2545f4914f6cdd1d

	childStats := w.Colonies.Stats(child.ID)
	parentStats := w.Colonies.Stats(parent.ID)
	if childStats == nil || parentStats == nil {
		return
	}

	for _, pos := range comp.cells {
		cell := w.Grid.Get(pos[0], pos[1])
		cell.ColonyID.Store(child.ID)
		parentStats.CellCount.Add(-1)
		childStats.CellCount.Add(1)
	}
}
