package engine

// spawnColonies is serial step 9 (C7): if the active-colony count is below
// thresholds (forced below cfg.ForcedSpawnThreshold, probabilistic up to
// cfg.SoftSpawnThreshold, biased by empty ratio), seed a fresh genesis colony
// at a random empty cell.
func (w *World) spawnColonies() {
	active := w.Colonies.ActiveCount()
	if active >= w.cfg.SoftSpawnThreshold {
		return
	}

	forced := active < w.cfg.ForcedSpawnThreshold
	if !forced {
		emptyRatio := w.emptyCellRatio()
		chance := w.cfg.DynamicSpawnBaseChance + w.cfg.DynamicSpawnEmptyRatioWeight*emptyRatio
		if w.WorldRNG.Float64() >= chance {
			return
		}
	}

	if err := w.spawnGenesisColony(); err != nil {
		w.logger.Printf("engine: dynamic spawn failed: %v", err)
	}
}

func (w *World) emptyCellRatio() float64 {
	empty := 0
	total := w.Width * w.Height
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.Grid.Get(x, y).Empty() {
				empty++
			}
		}
	}
	return float64(empty) / float64(total)
}
