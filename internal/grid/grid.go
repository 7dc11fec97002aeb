// Package grid implements the world's flat, row-major cell store: a
// double-buffered array of atomically addressable cells, sized width*height,
// with CAS-based claiming so the parallel spread phase never needs a lock.
package grid

import "sync/atomic"

// Cell is one grid site. ColonyID and Age are the only atomic fields — the
// parallel phases touch nothing else. IsBorder and ComponentID are scratch
// fields only ever written by the single-threaded serial phases (sync,
// flood-fill), so they need no atomics.
type Cell struct {
	ColonyID    atomic.Int32 // 0 means empty
	Age         atomic.Int32 // saturates at 255
	IsBorder    bool
	ComponentID int8 // scratch, valid only during flood-fill
}

// Reset clears a cell back to empty, preserving no age/border state.
func (c *Cell) Reset() {
	c.ColonyID.Store(0)
	c.Age.Store(0)
	c.IsBorder = false
	c.ComponentID = -1
}

// Empty reports whether the cell is unclaimed.
func (c *Cell) Empty() bool {
	return c.ColonyID.Load() == 0
}

// TryClaim attempts a CAS from expected to desired on ColonyID. Used by the
// parallel spread phase to claim an empty neighbor without a lock.
func (c *Cell) TryClaim(expected, desired int32) bool {
	return c.ColonyID.CompareAndSwap(expected, desired)
}

// IncrementAge saturates at 255, looping on a failed CAS the way any
// lock-free monotonic update must.
func (c *Cell) IncrementAge() {
	for {
		old := c.Age.Load()
		if old >= 255 {
			return
		}
		if c.Age.CompareAndSwap(old, old+1) {
			return
		}
	}
}

// Grid is the double-buffered row-major cell store. The reference
// implementation performs CAS directly on the current buffer and resolves
// races there; the second buffer exists so a future ping-pong (e.g. GPU)
// execution strategy has somewhere to write without disturbing readers of
// the current buffer mid-phase, per spec §4.1 / §9 design notes.
type Grid struct {
	Width, Height int
	buffers       [2][]Cell
	current       int32 // index of the current (read) buffer
}

// New allocates both buffers, sized Width*Height, once — grid memory is
// never resized after construction.
func New(width, height int) *Grid {
	g := &Grid{Width: width, Height: height}
	g.buffers[0] = make([]Cell, width*height)
	g.buffers[1] = make([]Cell, width*height)
	for i := range g.buffers[0] {
		g.buffers[0][i].ComponentID = -1
		g.buffers[1][i].ComponentID = -1
	}
	return g
}

// Index returns the row-major index for (x,y). Callers must bounds-check
// first via InBounds; Index itself does not.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x,y) lies within [0,Width)x[0,Height).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Current returns the read buffer for this tick.
func (g *Grid) Current() []Cell {
	return g.buffers[g.current]
}

// Next returns the write buffer, reserved for a future ping-pong execution
// strategy; this spec's CAS-based design does not require it for
// correctness.
func (g *Grid) Next() []Cell {
	return g.buffers[1-g.current]
}

// Get bounds-checks and returns a pointer to the cell in the current buffer.
func (g *Grid) Get(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.buffers[g.current][g.Index(x, y)]
}

// Swap flips the current buffer index. Only safe to call after a barrier —
// no task may still be reading or writing either buffer.
func (g *Grid) Swap() {
	g.current = 1 - g.current
}

// IsBorder4 reports whether (x,y) is a border cell: occupied, with at least
// one 4-neighbor (or the grid edge) belonging to a different colony.
func (g *Grid) IsBorder4(x, y int) bool {
	c := g.Get(x, y)
	if c == nil || c.Empty() {
		return false
	}
	id := c.ColonyID.Load()
	offsets := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for _, o := range offsets {
		nx, ny := x+o[0], y+o[1]
		if !g.InBounds(nx, ny) {
			return true
		}
		if g.Get(nx, ny).ColonyID.Load() != id {
			return true
		}
	}
	return false
}

// RefreshBorders recomputes IsBorder for every cell. Called by the sync
// serial phase; between phases IsBorder may be stale, which is documented as
// never load-bearing for spread correctness.
func (g *Grid) RefreshBorders() {
	cur := g.Current()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cur[g.Index(x, y)].IsBorder = g.IsBorder4(x, y)
		}
	}
}
