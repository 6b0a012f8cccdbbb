package storage

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Codec turns a Record into bytes and back
type Codec interface {
	Name() string
	Encode(r Record) ([]byte, error)
	Decode(data []byte) (Record, error)
}

// NewCodec returns the codec registered under name. A "+zstd" suffix wraps
// the base codec in zstd compression.
func NewCodec(name string) (Codec, error) {
	base, compressed := strings.CutSuffix(strings.ToLower(strings.TrimSpace(name)), "+zstd")

	var codec Codec
	switch base {
	case "", "json":
		codec = JSONCodec{}
	case "flatbuffer", "flatbuffers":
		codec = FlatbufferCodec{}
	default:
		return nil, errors.Errorf("[NewCodec] unknown codec: %q", name)
	}

	if compressed {
		codec = ZstdCodec{Inner: codec}
	}
	return codec, nil
}

// JSONCodec stores records as indented JSON:
//
//	{"width": 3, "height": 2, "flat_grid": [true, false, ...]}
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

// jsonRecord mirrors Record with pointer fields so that a missing key can be
// told apart from a zero value.
type jsonRecord struct {
	Width    *int    `json:"width"`
	Height   *int    `json:"height"`
	FlatGrid *[]bool `json:"flat_grid"`
}

func (JSONCodec) Encode(r Record) ([]byte, error) {
	flat := r.FlatGrid
	if flat == nil {
		flat = []bool{}
	}
	b, err := json.MarshalIndent(jsonRecord{Width: &r.Width, Height: &r.Height, FlatGrid: &flat}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "[JSONCodec.Encode] failed to marshal record")
	}
	return b, nil
}

// Decode requires width, height and flat_grid to be present. JSON null and
// objects missing any of them are malformed.
func (JSONCodec) Decode(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, errors.Wrap(ErrMalformedRecord, "[JSONCodec.Decode] no data")
	}

	var jr jsonRecord
	if err := json.Unmarshal(data, &jr); err != nil {
		return Record{}, errors.Wrapf(ErrMalformedRecord, "[JSONCodec.Decode] failed to unmarshal record: %v", err)
	}
	if jr.Width == nil || jr.Height == nil || jr.FlatGrid == nil {
		return Record{}, errors.Wrap(ErrMalformedRecord, "[JSONCodec.Decode] record needs width, height and flat_grid")
	}

	return Record{
		Width:    *jr.Width,
		Height:   *jr.Height,
		FlatGrid: *jr.FlatGrid,
	}, nil
}
