package storage

import (
	"math"

	"github.com/pkg/errors"

	"github.com/KonyakB/GameOfLife/model"
)

// Record is the persisted form of a grid. Width is the column count, Height
// the row count, and FlatGrid holds the alive states row-major:
// FlatGrid[row*Width+column].
type Record struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FlatGrid []bool `json:"flat_grid"`
}

// Flatten captures the alive states of g
func Flatten(g *model.Grid) Record {
	cells := g.Cells()
	flat := make([]bool, len(cells))
	for i := range cells {
		flat[i] = cells[i].IsAlive()
	}
	return Record{
		Width:    g.Columns(),
		Height:   g.Rows(),
		FlatGrid: flat,
	}
}

// Validate checks that FlatGrid holds exactly Width*Height entries
func (r Record) Validate() error {
	if r.Width < 0 || r.Height < 0 {
		return errors.Wrapf(ErrMalformedRecord, "[Validate] negative dimensions %dx%d", r.Width, r.Height)
	}
	if r.Height != 0 && r.Width > math.MaxInt/r.Height {
		return errors.Wrapf(ErrMalformedRecord, "[Validate] dimensions %dx%d overflow", r.Width, r.Height)
	}
	if len(r.FlatGrid) != r.Width*r.Height {
		return errors.Wrapf(ErrMalformedRecord, "[Validate] flat grid has %d cells, want %d (%dx%d)",
			len(r.FlatGrid), r.Width*r.Height, r.Width, r.Height)
	}
	return nil
}

// Matrix unflattens the record into a Height x Width matrix
func (r Record) Matrix() ([][]bool, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	matrix := make([][]bool, r.Height)
	for row := range matrix {
		matrix[row] = make([]bool, r.Width)
		copy(matrix[row], r.FlatGrid[row*r.Width:(row+1)*r.Width])
	}
	return matrix, nil
}

// Grid rebuilds a grid from the record. Neighbor links are wired from
// scratch; construction errors from model.NewGrid are returned unchanged.
func (r Record) Grid() (*model.Grid, error) {
	matrix, err := r.Matrix()
	if err != nil {
		return nil, err
	}
	return model.NewGrid(r.Height, r.Width, matrix)
}
