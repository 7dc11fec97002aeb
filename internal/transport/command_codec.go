package transport

import (
	"fmt"

	"github.com/wokuno/ferox/internal/command"
)

var commandTypeNames = map[string]command.Type{
	"pause":        command.Pause,
	"resume":       command.Resume,
	"speedUp":      command.SpeedUp,
	"slowDown":     command.SlowDown,
	"reset":        command.Reset,
	"selectColony": command.SelectColony,
	"spawnColony":  command.SpawnColony,
}

// decodeCommand converts a client-submitted wireCommand into a
// command.Command, rejecting unrecognized type names the same way
// command.Validate rejects malformed payloads: no partial state changes.
func decodeCommand(w wireCommand) (command.Command, error) {
	t, ok := commandTypeNames[w.Type]
	if !ok {
		return command.Command{}, fmt.Errorf("transport: unknown command type %q: %w", w.Type, command.ErrMalformed)
	}
	return command.Command{
		Type:     t,
		ColonyID: w.ColonyID,
		X:        w.X,
		Y:        w.Y,
		Name:     w.Name,
	}, nil
}
