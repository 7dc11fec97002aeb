package colony

import (
	"math"
	"sync/atomic"

	"github.com/wokuno/ferox/internal/atomicx"
	"github.com/wokuno/ferox/internal/genome"
)

// Table is the colony table (C2): a dense list of every colony ever created
// (active or soft-deactivated, so the id lookup stays stable for the run)
// plus a sparse, doubling id->colony lookup, plus the parallel Stats array.
// All three grow only from serial code; the parallel phases only read
// Table.Stats by id.
type Table struct {
	nextID atomic.Int32

	colonies []*Colony // dense, append-only
	byID     []*Colony // sparse, index by id, grown by doubling, nil where no colony
	stats    []*Stats  // parallel to byID
}

// NewTable returns an empty table. Id 0 is never assigned (0 means "empty"
// on the grid), so the lookup slices are 1-indexed; index 0 is always nil.
func NewTable() *Table {
	return &Table{
		byID:  make([]*Colony, 1, 64),
		stats: make([]*Stats, 1, 64),
	}
}

// grow doubles byID/stats until they can hold index id.
func (t *Table) grow(id int32) {
	if int(id) < len(t.byID) {
		return
	}
	newCap := len(t.byID)
	if newCap == 0 {
		newCap = 1
	}
	for newCap <= int(id) {
		newCap *= 2
	}
	grownByID := make([]*Colony, newCap)
	copy(grownByID, t.byID)
	t.byID = grownByID

	grownStats := make([]*Stats, newCap)
	copy(grownStats, t.stats)
	t.stats = grownStats
}

// Add allocates a new id via atomic fetch-add, appends the colony, and grows
// the lookup table if needed. Returns ErrIDExhausted if the 32-bit counter
// has saturated; the table is left unmodified in that case.
func (t *Table) Add(name string, g genome.Genome, parentID int32) (*Colony, error) {
	id := t.nextID.Add(1)
	if id <= 0 {
		// Wrapped past int32 max.
		t.nextID.Store(math.MinInt32) // pin so subsequent Adds keep failing, not wrapping again
		return nil, ErrIDExhausted
	}

	c := &Colony{
		ID:       id,
		Name:     name,
		Genome:   g,
		ParentID: parentID,
		Active:   true,
	}

	t.grow(id)
	t.colonies = append(t.colonies, c)
	t.byID[id] = c
	t.stats[id] = &Stats{}
	return c, nil
}

// Get returns the colony for id if it exists and is active.
func (t *Table) Get(id int32) (*Colony, bool) {
	if id <= 0 || int(id) >= len(t.byID) {
		return nil, false
	}
	c := t.byID[id]
	if c == nil || !c.Active {
		return nil, false
	}
	return c, true
}

// Lookup returns the colony for id regardless of active state (used by
// lineage checks during recombination, which must still see a just-
// deactivated parent/child).
func (t *Table) Lookup(id int32) (*Colony, bool) {
	if id <= 0 || int(id) >= len(t.byID) {
		return nil, false
	}
	c := t.byID[id]
	return c, c != nil
}

// Stats returns the atomic stats block for id, or nil if id is beyond the
// table's current capacity (per spec §7: cells whose id is beyond capacity
// are skipped by the parallel phases, not an error).
func (t *Table) Stats(id int32) *Stats {
	if id <= 0 || int(id) >= len(t.stats) {
		return nil
	}
	return t.stats[id]
}

// All returns every colony ever created (active or soft-deactivated) in
// creation order. Callers that need only active colonies should check
// Colony.Active.
func (t *Table) All() []*Colony {
	return t.colonies
}

// ActiveCount returns the number of colonies currently marked active.
func (t *Table) ActiveCount() int {
	n := 0
	for _, c := range t.colonies {
		if c.Active {
			n++
		}
	}
	return n
}

// Deactivate soft-deletes a colony: its table entry remains (so ids stay
// stable) but Active flips false and Get no longer returns it.
func (t *Table) Deactivate(c *Colony) {
	c.Active = false
	c.CellCount = 0
}

// ReconcileMaxCellCount folds an atomic high-water mark observed during the
// parallel phase into the colony's serially-owned MaxCellCount, preserving
// monotonicity.
func ReconcileMaxCellCount(c *Colony, stats *Stats) {
	observed := stats.MaxCellCount.Load()
	if observed > c.MaxCellCount {
		c.MaxCellCount = observed
	}
	atomicx.CASMaxInt32(&stats.MaxCellCount, c.MaxCellCount)
}
