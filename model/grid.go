package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/KonyakB/GameOfLife/rules"
)

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// Grid represents the toroidal game board. Cells are stored row-major in a
// flat arena; neighbor links are wired once at construction.
type Grid struct {
	rows    int
	columns int
	cells   []Cell
	mode    UpdateMode
	history []string // Store recent grid states for cycle detection
}

// NewGrid creates a grid from a rows x columns matrix of alive states
func NewGrid(rows, columns int, matrix [][]bool) (*Grid, error) {
	if len(matrix) != rows {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"[NewGrid] declared %d rows, matrix has %d", rows, len(matrix))
	}
	for i, row := range matrix {
		if len(row) != columns {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"[NewGrid] declared %d columns, matrix row %d has %d", columns, i, len(row))
		}
	}
	if rows == 0 || columns == 0 {
		return nil, errors.Wrapf(ErrEmptyGrid, "[NewGrid] grid is %dx%d", rows, columns)
	}

	alive := make([]bool, 0, rows*columns)
	for _, row := range matrix {
		alive = append(alive, row...)
	}

	g := &Grid{
		rows:    rows,
		columns: columns,
		cells:   NewCells(alive...),
		mode:    UpdateSequential,
	}
	g.wireNeighbors()
	return g, nil
}

// Rows returns the row count
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the column count
func (g *Grid) Columns() int {
	return g.columns
}

// GetWidth returns the width of the grid, which is its column count
func (g *Grid) GetWidth() int {
	return g.columns
}

// GetHeight returns the height of the grid, which is its row count
func (g *Grid) GetHeight() int {
	return g.rows
}

// UpdateMode returns how NextGeneration applies the rule
func (g *Grid) UpdateMode() UpdateMode {
	return g.mode
}

// SetUpdateMode selects how NextGeneration applies the rule
func (g *Grid) SetUpdateMode(mode UpdateMode) {
	g.mode = mode
}

func (g *Grid) cellAt(row, col int) *Cell {
	return &g.cells[row*g.columns+col]
}

// Cell returns the cell at (row, col). Coordinates wrap around the edges.
func (g *Grid) Cell(row, col int) *Cell {
	return g.cellAt(wrap(row, g.rows), wrap(col, g.columns))
}

// Cells exposes the cell arena in row-major order
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Get returns the state of a cell
func (g *Grid) Get(row, col int) bool {
	return g.Cell(row, col).alive
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(row, col int, alive bool) {
	g.Cell(row, col).alive = alive
}

// Matrix returns a copy of the alive states as a rows x columns matrix
func (g *Grid) Matrix() [][]bool {
	matrix := make([][]bool, g.rows)
	for i := range g.rows {
		matrix[i] = make([]bool, g.columns)
		for j := range g.columns {
			matrix[i][j] = g.cellAt(i, j).alive
		}
	}
	return matrix
}

// CellStatusUpdate applies the Life rule to a single cell of this grid,
// reading its neighbors' current states.
func (g *Grid) CellStatusUpdate(c *Cell) {
	c.alive = rules.ApplyConwayRules(c.AliveNeighborCount(g.cells), c.alive)
}

// UpdateCell applies the Life rule to the cell at (row, col)
func (g *Grid) UpdateCell(row, col int) {
	g.CellStatusUpdate(g.Cell(row, col))
}

// NextGeneration applies the rule to every cell according to the grid's UpdateMode
func (g *Grid) NextGeneration() {
	switch g.mode {
	case UpdateSynchronous:
		g.nextGenerationSynchronous()
	default:
		g.nextGenerationSequential()
	}
}

// nextGenerationSequential updates cells in place, row-major. Cells later in
// the pass read neighbors that were already updated in this generation.
func (g *Grid) nextGenerationSequential() {
	for i := range g.cells {
		g.CellStatusUpdate(&g.cells[i])
	}
}

// nextGenerationSynchronous computes every cell from a snapshot of the
// previous generation, so update order does not matter.
func (g *Grid) nextGenerationSynchronous() {
	snapshot := snapshots.Get(len(g.cells))
	defer snapshots.Put(snapshot)

	for i := range g.cells {
		snapshot[i] = g.cells[i].alive
	}
	for i := range g.cells {
		c := &g.cells[i]
		count := 0
		for _, n := range c.neighbors {
			if snapshot[n.index] {
				count++
			}
		}
		c.alive = rules.ApplyConwayRules(count, snapshot[i])
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for i := range g.cells {
		if g.cells[i].alive {
			count++
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	for i := range g.cells {
		if g.cells[i].alive {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last
// three recorded states (a still life or a period 2 or 3 oscillator).
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for back := 1; back <= 3; back++ {
		if g.history[len(g.history)-back] == currentHash {
			return true
		}
	}
	return false
}

// ClearHistory forgets recorded states
func (g *Grid) ClearHistory() {
	g.history = nil
}
