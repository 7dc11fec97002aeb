package engine

import "github.com/wokuno/ferox/internal/colony"

// syncPhase is serial step 1: reconcile per-colony CellCount from the
// atomic array the parallel phase mutated, and refresh border flags for the
// combat/division/recombination phases that follow.
func (w *World) syncPhase() {
	w.reconcileCounts()
	w.Grid.RefreshBorders()
}

// syncForward is serial step 11: a final reconciliation after every serial
// phase has directly mutated the grid/stats, run immediately before the
// tick counter advances.
func (w *World) syncForward() {
	w.reconcileCounts()
	w.Grid.RefreshBorders()
	w.computeCentroids()
}

// computeCentroids is spec §3's "running centroid": a full grid scan folding
// each occupied cell's coordinates into a per-colony running mean. Colony's
// CellIndices is not populated by any phase, so this recomputes from the
// grid directly. Runs once a tick, after every phase that can relabel or
// clear cells, so the centroid snapshot building reads reflects the
// colony's actual current footprint rather than its birth cell.
func (w *World) computeCentroids() {
	type accum struct {
		sumX, sumY float64
		n          float64
	}
	sums := make(map[int32]*accum)

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			cell := w.Grid.Get(x, y)
			if cell.Empty() {
				continue
			}
			id := cell.ColonyID.Load()
			a, ok := sums[id]
			if !ok {
				a = &accum{}
				sums[id] = a
			}
			a.sumX += float64(x)
			a.sumY += float64(y)
			a.n++
		}
	}

	for id, a := range sums {
		c, ok := w.Colonies.Get(id)
		if !ok || a.n == 0 {
			continue
		}
		c.Centroid = [2]float64{a.sumX / a.n, a.sumY / a.n}
	}
}

// reconcileCounts folds each colony's atomic Stats.CellCount into its
// serially-owned CellCount, clamping the transient negatives a CAS race can
// produce, and keeps MaxCellCount monotone.
func (w *World) reconcileCounts() {
	for _, c := range w.Colonies.All() {
		if !c.Active {
			continue
		}
		stats := w.Colonies.Stats(c.ID)
		if stats == nil {
			continue
		}
		observed := stats.CellCount.Load()
		if observed < 0 {
			observed = 0
			stats.CellCount.Store(0)
		}
		c.LastPopulation = c.CellCount
		c.CellCount = observed
		if c.CellCount == 0 {
			w.Colonies.Deactivate(c)
			continue
		}
		colony.ReconcileMaxCellCount(c, stats)
	}
}
