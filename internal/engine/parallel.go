package engine

import (
	"context"

	"github.com/wokuno/ferox/internal/atomicx"
	"github.com/wokuno/ferox/internal/colony"
	"github.com/wokuno/ferox/internal/genome"
	"github.com/wokuno/ferox/internal/rng"
	"github.com/wokuno/ferox/internal/workerpool"
)

// runAgePhase increments the age of every occupied cell, region by region, on
// the worker pool. Saturates at 255 per Cell.IncrementAge.
func (w *World) runAgePhase(ctx context.Context) error {
	tasks := make([]workerpool.Task, 0, w.regionCount()*w.regionCount())
	for _, reg := range w.regions() {
		reg := reg
		tasks = append(tasks, func(ctx context.Context) error {
			w.ageRegion(reg)
			return nil
		})
	}
	return w.pool.Run(ctx, tasks)
}

func (w *World) ageRegion(reg region) {
	for y := reg.y0; y < reg.y1; y++ {
		for x := reg.x0; x < reg.x1; x++ {
			cell := w.Grid.Get(x, y)
			if cell == nil || cell.Empty() {
				continue
			}
			cell.IncrementAge()
		}
	}
}

// runSpreadPhase runs the CAS-based spread phase over every region. Regions
// are grouped by worker id and each group runs as one task that visits its
// regions in order, so each worker's RNG stream is read and advanced by only
// one goroutine at a time and no synchronization on the stream is needed
// (spec §4.6).
func (w *World) runSpreadPhase(ctx context.Context) error {
	byWorker := make([][]region, len(w.workerRNGs))
	for _, reg := range w.regions() {
		byWorker[reg.workerID] = append(byWorker[reg.workerID], reg)
	}
	tasks := make([]workerpool.Task, 0, len(byWorker))
	for id, regs := range byWorker {
		id, regs := id, regs
		tasks = append(tasks, func(ctx context.Context) error {
			for _, reg := range regs {
				w.spreadRegion(reg, w.workerRNGs[id])
			}
			return nil
		})
	}
	return w.pool.Run(ctx, tasks)
}

func (w *World) spreadRegion(reg region, r rng.Source) {
	for y := reg.y0; y < reg.y1; y++ {
		for x := reg.x0; x < reg.x1; x++ {
			cell := w.Grid.Get(x, y)
			if cell == nil || cell.Empty() {
				continue
			}
			// Newly claimed cells this tick (age==0) are excluded to prevent
			// same-tick cascade spreading; a cell claimed last tick (age==1
			// after this tick's age phase) does spread, per spec §9 open
			// question resolution.
			if cell.Age.Load() == 0 {
				continue
			}
			colonyID := cell.ColonyID.Load()
			c, ok := w.Colonies.Get(colonyID)
			if !ok {
				continue
			}
			w.trySpreadFrom(x, y, c, r)
		}
	}
}

func (w *World) trySpreadFrom(x, y int, c *colony.Colony, r rng.Source) {
	g := &c.Genome
	social := w.socialInfluence(x, y, c, r)

	for d := 0; d < genome.NumDirections; d++ {
		nx, ny := x+genome.DX[d], y+genome.DY[d]
		if !w.Grid.InBounds(nx, ny) {
			continue
		}
		target := w.Grid.Get(nx, ny)
		if target == nil || !target.Empty() {
			continue
		}

		noise := r.Uniform(0.6, 1.4)
		spreadProb := g.SpreadRate * g.Metabolism * g.SpreadWeights[d] * genome.DirWeight[d] * noise * social
		if r.Float64() >= spreadProb {
			continue
		}

		if !target.TryClaim(0, c.ID) {
			continue // lost the race to another claimant
		}
		target.Age.Store(0)

		stats := w.Colonies.Stats(c.ID)
		if stats == nil {
			continue
		}
		newCount := stats.CellCount.Add(1)
		atomicx.CASMaxInt32(&stats.MaxCellCount, newCount)
	}
}

// socialInfluence blends the local scent field with a sparse same-colony
// neighbor scan (sampled up to MaxTracked directions) into a multiplier in
// roughly [0.3, 2.0], per spec §4.6.
func (w *World) socialInfluence(x, y int, c *colony.Colony, r rng.Source) float64 {
	idx := w.Fields.Index(x, y)
	scentTerm := 0.3 + 1.7*w.Fields.Signals[idx]

	sameColonyNeighbors := 0
	tracked := int(c.Genome.MaxTracked)
	if tracked < 1 {
		tracked = 1
	}
	if tracked > genome.NumDirections {
		tracked = genome.NumDirections
	}
	start := r.Intn(genome.NumDirections)
	for k := 0; k < tracked; k++ {
		d := (start + k) % genome.NumDirections
		nx, ny := x+genome.DX[d], y+genome.DY[d]
		if !w.Grid.InBounds(nx, ny) {
			continue
		}
		neighbor := w.Grid.Get(nx, ny)
		if neighbor != nil && neighbor.ColonyID.Load() == c.ID {
			sameColonyNeighbors++
		}
	}
	neighborTerm := 1.0 + 0.1*float64(sameColonyNeighbors)

	influence := scentTerm * neighborTerm
	if influence < 0.3 {
		influence = 0.3
	}
	if influence > 2.0 {
		influence = 2.0
	}
	return influence
}
