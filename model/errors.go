package model

import "github.com/pkg/errors"

var (
	// ErrDimensionMismatch is returned when the declared rows/columns do not
	// match the shape of the supplied matrix.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrEmptyGrid is returned when a grid would have zero rows or columns.
	ErrEmptyGrid = errors.New("empty grid")
)
