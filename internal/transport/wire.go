// Package transport is a demonstration consumer of the engine: it pushes
// snapshots to connected browsers over websocket and feeds submitted
// commands back into a command.Queue, in the same generic-client style as
// the teacher's server/fastview packages. It is not
// part of the simulation core and carries none of its invariants.
package transport

import (
	"strings"

	"github.com/wokuno/ferox/internal/snapshot"
)

// wireColony is the JSON-friendly rendering of a snapshot.ColonyRecord: the
// fixed [32]byte name becomes a plain string, everything else passes
// through unchanged.
type wireColony struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`

	CentroidX      float64 `json:"x"`
	CentroidY      float64 `json:"y"`
	RadiusEstimate float64 `json:"radius"`

	Population     int32   `json:"population"`
	PeakPopulation int32   `json:"peakPopulation"`
	GrowthRate     float64 `json:"growthRate"`

	Color [3]uint8 `json:"color"`
	Alive bool     `json:"alive"`

	ShapeSeed      uint64  `json:"shapeSeed"`
	WobblePhase    float64 `json:"wobblePhase"`
	ShapeEvolution float64 `json:"shapeEvolution"`

	Aggression      float64 `json:"aggression"`
	DefensePriority float64 `json:"defensePriority"`
	Metabolism      float64 `json:"metabolism"`
	ToxinProduction float64 `json:"toxinProduction"`
	SpreadRate      float64 `json:"spreadRate"`
}

// wireSnapshot is the JSON message pushed to every connected client.
type wireSnapshot struct {
	Width           int          `json:"width"`
	Height          int          `json:"height"`
	Tick            uint64       `json:"tick"`
	Paused          bool         `json:"paused"`
	SpeedMultiplier float64      `json:"speedMultiplier"`
	Colonies        []wireColony `json:"colonies"`
	GridRLE         []uint16     `json:"gridRLE,omitempty"`
}

func toWire(snap snapshot.Snapshot) wireSnapshot {
	w := wireSnapshot{
		Width:           snap.Width,
		Height:          snap.Height,
		Tick:            snap.Tick,
		Paused:          snap.Paused,
		SpeedMultiplier: snap.SpeedMultiplier,
		GridRLE:         snap.GridRLE,
	}
	for _, c := range snap.Colonies {
		w.Colonies = append(w.Colonies, wireColony{
			ID:              c.ID,
			Name:            nameString(c.Name),
			CentroidX:       c.CentroidX,
			CentroidY:       c.CentroidY,
			RadiusEstimate:  c.RadiusEstimate,
			Population:      c.Population,
			PeakPopulation:  c.PeakPopulation,
			GrowthRate:      c.GrowthRate,
			Color:           [3]uint8{c.Color.R, c.Color.G, c.Color.B},
			Alive:           c.Alive,
			ShapeSeed:       c.ShapeSeed,
			WobblePhase:     c.WobblePhase,
			ShapeEvolution:  c.ShapeEvolution,
			Aggression:      c.Aggression,
			DefensePriority: c.DefensePriority,
			Metabolism:      c.Metabolism,
			ToxinProduction: c.ToxinProduction,
			SpreadRate:      c.SpreadRate,
		})
	}
	return w
}

func nameString(buf [32]byte) string {
	return strings.TrimRight(string(buf[:]), "\x00")
}

// wireCommand is the JSON payload a client sends to submit a command.
type wireCommand struct {
	Type     string `json:"type"`
	ColonyID int32  `json:"colonyId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Name     string `json:"name"`
}
