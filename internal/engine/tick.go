package engine

import "context"

// tickOnce drains commands, then — unless paused — runs the parallel age
// and spread phases (each barrier-synchronized) followed by the fixed-order
// serial phases, per spec §4.7. A paused world still drains commands and
// still lets callers publish a snapshot; calling this repeatedly while
// paused is idempotent on world state (spec §8).
func (w *World) tickOnce(ctx context.Context) error {
	w.DrainCommands()

	if w.Paused {
		return nil
	}

	if err := w.runAgePhase(ctx); err != nil {
		return err
	}
	if err := w.runSpreadPhase(ctx); err != nil {
		return err
	}

	w.syncPhase()
	w.updateNutrients()
	w.updateToxins()
	w.diffuseScent()
	w.resolveCombat()
	w.applyTurnover()
	w.mutateAndSpeciate()
	w.checkDivisions()
	w.checkRecombinations()
	w.checkGeneTransfer()
	w.spawnColonies()
	w.updateColonyBehavior()
	w.syncForward()

	w.Tick++
	return nil
}
