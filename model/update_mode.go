package model

import (
	"strings"

	"github.com/pkg/errors"
)

// UpdateMode selects how a generation is applied across the grid.
type UpdateMode int

const (
	// UpdateSequential mutates cells in place in row-major order. Cells later
	// in the pass see neighbors already moved to the next generation. This
	// is the reference behavior and the default.
	UpdateSequential UpdateMode = iota
	// UpdateSynchronous computes the whole generation from a snapshot of
	// the previous one (standard Life semantics).
	UpdateSynchronous
)

func (m UpdateMode) String() string {
	switch m {
	case UpdateSequential:
		return "sequential"
	case UpdateSynchronous:
		return "synchronous"
	default:
		return "unknown"
	}
}

// ParseUpdateMode parses "sequential" or "synchronous"
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return UpdateSequential, nil
	case "synchronous", "sync":
		return UpdateSynchronous, nil
	default:
		return UpdateSequential, errors.Errorf("[ParseUpdateMode] unknown update mode: %q", s)
	}
}
