package storage

import "github.com/pkg/errors"

var (
	// ErrMalformedRecord is returned when saved state cannot be decoded or
	// its flat grid does not hold exactly width*height cells.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrNotFound is returned by a FileStorage when nothing is stored at a path.
	ErrNotFound = errors.New("not found")
)

// IsNotFound reports whether err means the requested path holds nothing
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
