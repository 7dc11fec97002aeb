package engine

import (
	"github.com/wokuno/ferox/internal/colony"
	"github.com/wokuno/ferox/internal/genome"
)

const recombinationContactRange = 2

// checkRecombinations is serial step 8 (C7): scan for near-contact between
// distinct colonies that share lineage (parent/child or common ancestor).
// If their genetic distance is within 0.05 + 0.1*avg_merge_affinity, the
// larger colony absorbs the smaller.
func (w *World) checkRecombinations() {
	actives := activeColonies(w.Colonies)
	borders := make(map[int32][][2]int, len(actives))
	for _, c := range actives {
		borders[c.ID] = w.collectBorderCells(c.ID)
	}

	for i := 0; i < len(actives); i++ {
		a := actives[i]
		if !a.Active || a.CellCount == 0 {
			continue
		}
		for j := i + 1; j < len(actives); j++ {
			b := actives[j]
			if !b.Active || b.CellCount == 0 {
				continue
			}
			if !shareLineage(w.Colonies, a, b) {
				continue
			}
			if !withinContactRange(borders[a.ID], borders[b.ID], recombinationContactRange) {
				continue
			}

			avgAffinity := (a.Genome.MergeAffinity + b.Genome.MergeAffinity) / 2
			threshold := 0.05 + 0.1*avgAffinity
			if genome.Distance(a.Genome, b.Genome) > threshold {
				continue
			}

			w.mergeColonies(a, b)
		}
	}
}

// shareLineage implements spec §9's conservative eligibility rule: one is an
// ancestor of the other, or both descend from a common ancestor colony. It
// walks each ParentID chain through t.Lookup, so deactivated ancestors still
// count. Two genesis colonies (parent_id == 0 on both sides) are never
// eligible, regardless of genome similarity.
func shareLineage(t *colony.Table, a, b *colony.Colony) bool {
	ancestors := make(map[int32]bool)
	for c, ok := a, true; ok; c, ok = t.Lookup(c.ParentID) {
		ancestors[c.ID] = true
	}
	for c, ok := b, true; ok; c, ok = t.Lookup(c.ParentID) {
		if ancestors[c.ID] {
			return true
		}
	}
	return false
}

func withinContactRange(aCells, bCells [][2]int, r int) bool {
	for _, p := range aCells {
		for _, q := range bCells {
			if chebyshev(p, q) <= r {
				return true
			}
		}
	}
	return false
}

func chebyshev(a, b [2]int) int {
	dx := a[0] - b[0]
	if dx < 0 {
		dx = -dx
	}
	dy := a[1] - b[1]
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// mergeColonies has the larger of a/b absorb the smaller: cells relabeled,
// CellCount summed, the smaller deactivated, and the surviving genome set to
// the population-weighted merge of both.
func (w *World) mergeColonies(a, b *colony.Colony) {
	survivor, absorbed := a, b
	if b.CellCount > a.CellCount {
		survivor, absorbed = b, a
	}

	survivorStats := w.Colonies.Stats(survivor.ID)
	absorbedStats := w.Colonies.Stats(absorbed.ID)
	if survivorStats == nil || absorbedStats == nil {
		return
	}

	for _, pos := range w.collectColonyCells(absorbed.ID) {
		cell := w.Grid.Get(pos[0], pos[1])
		cell.ColonyID.Store(survivor.ID)
	}

	survivor.Genome = genome.Merge(survivor.Genome, float64(survivor.CellCount), absorbed.Genome, float64(absorbed.CellCount))
	survivorStats.CellCount.Add(absorbedStats.CellCount.Load())
	absorbedStats.CellCount.Store(0)
	w.Colonies.Deactivate(absorbed)
}

func (w *World) collectColonyCells(colonyID int32) [][2]int {
	var cells [][2]int
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.Grid.Get(x, y).ColonyID.Load() == colonyID {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return cells
}

func activeColonies(t *colony.Table) []*colony.Colony {
	var out []*colony.Colony
	for _, c := range t.All() {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}
