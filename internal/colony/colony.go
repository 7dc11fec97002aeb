// Package colony implements the colony table: a dense array of colony
// metadata plus a sparse, doubling id->colony lookup, and a parallel array of
// atomic per-colony statistics updated by the parallel engine phases and by
// the serial phases that claim or clear cells.
package colony

import (
	"errors"
	"sync/atomic"

	"github.com/wokuno/ferox/internal/genome"
)

// State is a colony's high-level behavioral state.
type State int

const (
	Normal State = iota
	Stressed
	Dormant
)

func (s State) String() string {
	switch s {
	case Stressed:
		return "stressed"
	case Dormant:
		return "dormant"
	default:
		return "normal"
	}
}

// Colony is a population of cells sharing an identity, genome, and lineage.
// Fields here are touched only by serial phases (and by Table.Add at
// creation); the parallel phases never write a Colony directly, only the
// atomic Stats alongside it. Colonies are heap-allocated once and never
// copied or relocated — indices and ids stay stable for the colony's
// lifetime per spec §9 design notes.
type Colony struct {
	ID             int32
	Name           string
	Genome         genome.Genome
	CellCount      int32
	MaxCellCount   int32
	Age            int32
	ParentID       int32
	Active         bool
	Color          genome.Color
	ShapeSeed      uint64
	WobblePhase    float64
	ShapeEvolution float64
	State          State
	IsDormant      bool
	StressLevel    float64
	BiofilmStrength float64
	Drift          [2]float64
	SignalStrength float64
	SuccessHistory [8]float64
	LastPopulation int32

	// CellIndices is an optional tracked list of this colony's cell indices.
	// No engine phase populates it; colony-wide operations such as the
	// centroid computation scan the grid instead.
	CellIndices []int32
	Centroid    [2]float64
}

// ErrIDExhausted is returned by Add when the 32-bit id counter has saturated;
// the table continues operating with its existing colonies, but no new ones
// can be created until the world is reset.
var ErrIDExhausted = errors.New("colony: id counter exhausted")

// Stats are the atomic, per-colony counters the parallel phases mutate
// directly; serial phases that claim or clear cells adjust CellCount here
// too. They live in a separate array from Colony so the only memory the
// hot parallel path touches per claim is a handful of cache lines, never the
// (much larger, serially-owned) Colony struct.
type Stats struct {
	// CellCount is signed so a CAS-based decrement is race-safe even under a
	// transient negative during the parallel phase; the serial sync phase
	// clamps a negative value to zero and copies it into Colony.CellCount.
	CellCount    atomic.Int32
	MaxCellCount atomic.Int32
	Generation   atomic.Int32
}
