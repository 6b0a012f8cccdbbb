package model

import "github.com/google/uuid"

// Cell is a single square of the board. Cells live in an arena owned by
// their Grid and refer to their neighbors by arena index, never by pointer.
type Cell struct {
	id        uuid.UUID
	arena     uuid.UUID
	index     int
	alive     bool
	neighbors []neighborRef
}

type neighborRef struct {
	id    uuid.UUID
	index int
}

// NewCells allocates an arena with one cell per value, in order.
func NewCells(alive ...bool) []Cell {
	arena := uuid.New()
	cells := make([]Cell, len(alive))
	for i, a := range alive {
		cells[i] = Cell{
			id:        uuid.New(),
			arena:     arena,
			index:     i,
			alive:     a,
			neighbors: make([]neighborRef, 0, 8),
		}
	}
	return cells
}

// ID returns the cell's identifier
func (c *Cell) ID() uuid.UUID {
	return c.id
}

// Index returns the cell's position in its arena
func (c *Cell) Index() int {
	return c.index
}

// IsAlive reports whether the cell is alive
func (c *Cell) IsAlive() bool {
	return c.alive
}

// SetAlive sets the cell to alive (true) or dead (false)
func (c *Cell) SetAlive(alive bool) {
	c.alive = alive
}

// AddNeighbor links other as a neighbor. Neighbors are compared by ID, not
// by state. It returns false and does nothing when other is nil, is the cell
// itself or is already a neighbor. Neighbors are stored as indices into the
// arena both cells were allocated in, so a cell from another NewCells call
// is rejected too.
func (c *Cell) AddNeighbor(other *Cell) bool {
	if other == nil || other.id == c.id || other.arena != c.arena {
		return false
	}
	for _, n := range c.neighbors {
		if n.id == other.id {
			return false
		}
	}
	c.neighbors = append(c.neighbors, neighborRef{id: other.id, index: other.index})
	return true
}

// AddMultipleNeighbors adds every cell in others, skipping the ones
// AddNeighbor rejects. It reports whether all of them were added.
func (c *Cell) AddMultipleNeighbors(others ...*Cell) bool {
	ok := true
	for _, other := range others {
		if !c.AddNeighbor(other) {
			ok = false
		}
	}
	return ok
}

// Neighbors returns the arena indices of the cell's neighbors
func (c *Cell) Neighbors() []int {
	out := make([]int, len(c.neighbors))
	for i, n := range c.neighbors {
		out[i] = n.index
	}
	return out
}

// NeighborCount returns the number of distinct neighbors
func (c *Cell) NeighborCount() int {
	return len(c.neighbors)
}

// AliveNeighborCount counts the neighbors that are currently alive in arena.
func (c *Cell) AliveNeighborCount(arena []Cell) (count int) {
	for _, n := range c.neighbors {
		if arena[n.index].alive {
			count++
		}
	}
	return
}
