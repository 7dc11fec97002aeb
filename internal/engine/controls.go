package engine

import (
	"github.com/wokuno/ferox/internal/command"
)

// World implements command.Controls so the tick loop can drain and apply
// commands without engine depending on any particular transport.
var _ command.Controls = (*World)(nil)

func (w *World) SetPaused(paused bool) {
	w.Paused = paused
}

func (w *World) MultiplySpeed(factor float64) {
	w.SpeedMultiplier = command.ClampSpeed(w.SpeedMultiplier * factor)
}

// Reset tears down and reinitializes the world with fresh random colonies,
// rebuilt from the same Config it was created with (dimensions, worker
// count, seed, tunables); only the command queue and RunID carry over.
// Per spec §4.10.
func (w *World) Reset() {
	fresh, err := New(w.cfg, w.logger)
	if err != nil {
		w.logger.Printf("engine: reset failed: %v", err)
		return
	}
	fresh.RunID = w.RunID
	fresh.Commands = w.Commands // preserve any commands queued during the reset itself
	*w = *fresh
}

func (w *World) SelectColony(id int32) {
	w.selectedColony = id
}

// SelectedColony returns the id most recently selected via select_colony, or
// 0 if none has been selected.
func (w *World) SelectedColony() int32 {
	return w.selectedColony
}

// SpawnColony attempts to seed a colony at (x,y) with a random genome if the
// cell is empty, per spec §4.10.
func (w *World) SpawnColony(x, y int, name string) error {
	return w.seedColonyAt(x, y, name, 0)
}

// DrainCommands applies every currently queued command to w, logging (but
// not halting on) any error.
func (w *World) DrainCommands() {
	for _, err := range command.ApplyAll(w.Commands, w.Width, w.Height, w) {
		w.logger.Printf("engine: command rejected: %v", err)
	}
}
