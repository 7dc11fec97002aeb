// Package snapshot builds the read-only, renderer-facing view of world state
// (C9) and implements the run-length encoding used to compress the per-cell
// colony-id grid for external consumers. Snapshots are built once between
// ticks and never mutated afterward.
package snapshot

import (
	"math"

	"github.com/wokuno/ferox/internal/genome"
)

// ColonyRecord is the fixed-size, renderer-facing summary of one active
// colony, matching the field set named in the engine-to-consumer contract:
// identity, position/shape, population, color, and a few condensed traits.
// Name is carried as a 32-byte buffer so the record stays fixed-size across
// any transport that serializes it directly.
type ColonyRecord struct {
	ID   int32
	Name [32]byte

	CentroidX, CentroidY float64
	RadiusEstimate       float64

	Population     int32
	PeakPopulation int32
	GrowthRate      float64 // (Population - LastPopulation) over one tick

	Color genome.Color
	Alive bool

	ShapeSeed      uint64
	WobblePhase    float64
	ShapeEvolution float64

	// Condensed traits, a small subset of the genome relevant to rendering
	// and external decision-making, not the full genome.
	Aggression      float64
	DefensePriority float64
	Metabolism      float64
	ToxinProduction float64
	SpreadRate      float64
}

// NewColonyRecordName truncates/pads s into a fixed 32-byte buffer.
func NewColonyRecordName(s string) [32]byte {
	var buf [32]byte
	copy(buf[:], s)
	return buf
}

// Snapshot is the immutable, renderer-facing view of one tick's world state.
type Snapshot struct {
	Width, Height int
	Tick          uint64
	Paused        bool
	SpeedMultiplier float64

	Colonies []ColonyRecord

	// GridRLE is the RLE-encoded colony-id grid, present only when a caller
	// requested it (it is comparatively expensive to build and not every
	// consumer needs per-cell detail every tick).
	GridRLE []uint16
}

// ColonySource is the minimal view of a colony the exporter needs; callers
// copy it field by field from a *colony.Colony, so this package never
// imports colony (which
// would create an import cycle once colony starts depending on snapshot
// record shapes for transport adapters).
type ColonySource struct {
	ID             int32
	Name           string
	Active         bool
	CellCount      int32
	MaxCellCount   int32
	LastPopulation int32
	Color          genome.Color
	ShapeSeed      uint64
	WobblePhase    float64
	ShapeEvolution float64
	Centroid       [2]float64
	Genome         genome.Genome
}

// Build assembles a Snapshot from the world's current state. includeGrid
// controls whether the (comparatively expensive) RLE grid encoding runs.
func Build(width, height int, tick uint64, paused bool, speed float64, colonies []ColonySource, colonyGrid []int32, includeGrid bool) Snapshot {
	snap := Snapshot{
		Width:           width,
		Height:          height,
		Tick:            tick,
		Paused:          paused,
		SpeedMultiplier: speed,
	}

	for _, c := range colonies {
		if !c.Active {
			continue
		}
		growth := float64(c.CellCount - c.LastPopulation)
		radius := estimateRadius(c.CellCount)
		snap.Colonies = append(snap.Colonies, ColonyRecord{
			ID:              c.ID,
			Name:            NewColonyRecordName(c.Name),
			CentroidX:       c.Centroid[0],
			CentroidY:       c.Centroid[1],
			RadiusEstimate:  radius,
			Population:      c.CellCount,
			PeakPopulation:  c.MaxCellCount,
			GrowthRate:      growth,
			Color:           c.Color,
			Alive:           c.CellCount > 0,
			ShapeSeed:       c.ShapeSeed,
			WobblePhase:     c.WobblePhase,
			ShapeEvolution:  c.ShapeEvolution,
			Aggression:      c.Genome.Aggression,
			DefensePriority: c.Genome.DefensePriority,
			Metabolism:      c.Genome.Metabolism,
			ToxinProduction: c.Genome.ToxinProduction,
			SpreadRate:      c.Genome.SpreadRate,
		})
	}

	if includeGrid && colonyGrid != nil {
		snap.GridRLE = Encode(colonyGrid)
	}

	return snap
}

// estimateRadius treats a colony's footprint as roughly circular: radius is
// derived from its cell count assuming unit-area cells, sqrt(population/pi).
func estimateRadius(cellCount int32) float64 {
	if cellCount <= 0 {
		return 0
	}
	return math.Sqrt(float64(cellCount) / math.Pi)
}
