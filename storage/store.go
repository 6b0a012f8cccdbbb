package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/KonyakB/GameOfLife/log"
	"github.com/KonyakB/GameOfLife/model"
)

// DefaultPath is where grids are saved when no path is given
const DefaultPath = "grid.json"

// StateStore persists grids: it flattens them into Records, encodes them
// with a Codec and hands the bytes to a FileStorage.
type StateStore struct {
	codec Codec
	files FileStorage
}

func NewStateStore(codec Codec, files FileStorage) *StateStore {
	return &StateStore{
		codec: codec,
		files: files,
	}
}

// Codec returns the codec used for encoding
func (s *StateStore) Codec() Codec {
	return s.codec
}

// Save flattens and encodes g without touching storage
func (s *StateStore) Save(g *model.Grid) (Record, []byte, error) {
	record := Flatten(g)
	data, err := s.codec.Encode(record)
	if err != nil {
		return Record{}, nil, errors.Wrapf(err, "[Save] failed to encode %dx%d grid", record.Width, record.Height)
	}
	return record, data, nil
}

// SaveTo encodes g and writes it to path, returning the written bytes
func (s *StateStore) SaveTo(ctx context.Context, g *model.Grid, path string) ([]byte, error) {
	if path == "" {
		path = DefaultPath
	}

	_, data, err := s.Save(g)
	if err != nil {
		return nil, err
	}
	if err := s.files.Write(ctx, path, data); err != nil {
		return nil, errors.Wrapf(err, "[SaveTo] failed to write grid to %s", path)
	}

	log.Debug("Saved %dx%d grid to %s (%s, %d bytes)", g.Rows(), g.Columns(), path, s.codec.Name(), len(data))
	return data, nil
}

// Load decodes data and builds a new grid from it. Decoding problems return
// ErrMalformedRecord; ErrDimensionMismatch and ErrEmptyGrid come from the
// grid constructor.
func (s *StateStore) Load(data []byte) (*model.Grid, error) {
	record, err := s.codec.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "[Load] failed to decode grid")
	}

	g, err := record.Grid()
	if err != nil {
		return nil, errors.Wrap(err, "[Load] failed to build grid")
	}
	return g, nil
}

// LoadFrom reads path and builds a new grid from its content
func (s *StateStore) LoadFrom(ctx context.Context, path string) (*model.Grid, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := s.files.Read(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadFrom] failed to read grid from %s", path)
	}

	g, err := s.Load(data)
	if err != nil {
		return nil, err
	}

	log.Debug("Loaded %dx%d grid from %s", g.Rows(), g.Columns(), path)
	return g, nil
}
