package storage

import (
	"math"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"
)

// Field slots of the record table:
//
//	table Record { width: int32; height: int32; flat_grid: [bool]; }
const (
	fbWidthSlot = iota
	fbHeightSlot
	fbFlatGridSlot
	fbNumFields
)

// fbVTableOffset returns the vtable offset of a field slot
func fbVTableOffset(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(4 + 2*slot)
}

// FlatbufferCodec stores records as a flatbuffers table
type FlatbufferCodec struct{}

func (FlatbufferCodec) Name() string { return "flatbuffer" }

func (FlatbufferCodec) Encode(r Record) ([]byte, error) {
	if r.Width > math.MaxInt32 || r.Height > math.MaxInt32 {
		return nil, errors.Errorf("[FlatbufferCodec.Encode] dimensions %dx%d do not fit int32", r.Width, r.Height)
	}

	builder := flatbuffers.NewBuilder(len(r.FlatGrid) + 64)

	builder.StartVector(1, len(r.FlatGrid), 1)
	for i := len(r.FlatGrid) - 1; i >= 0; i-- {
		builder.PrependBool(r.FlatGrid[i])
	}
	flatGrid := builder.EndVector(len(r.FlatGrid))

	builder.StartObject(fbNumFields)
	builder.PrependInt32Slot(fbWidthSlot, int32(r.Width), 0)
	builder.PrependInt32Slot(fbHeightSlot, int32(r.Height), 0)
	builder.PrependUOffsetTSlot(fbFlatGridSlot, flatGrid, 0)
	builder.Finish(builder.EndObject())

	return builder.FinishedBytes(), nil
}

func (FlatbufferCodec) Decode(data []byte) (r Record, err error) {
	if len(data) < flatbuffers.SizeUOffsetT {
		return Record{}, errors.Wrapf(ErrMalformedRecord, "[FlatbufferCodec.Decode] buffer too short: %d bytes", len(data))
	}

	// out-of-range offsets in a corrupt buffer surface as index panics
	defer func() {
		if p := recover(); p != nil {
			r = Record{}
			err = errors.Wrapf(ErrMalformedRecord, "[FlatbufferCodec.Decode] corrupt buffer: %v", p)
		}
	}()

	tab := &flatbuffers.Table{
		Bytes: data,
		Pos:   flatbuffers.GetUOffsetT(data),
	}

	if o := flatbuffers.UOffsetT(tab.Offset(fbVTableOffset(fbWidthSlot))); o != 0 {
		r.Width = int(tab.GetInt32(o + tab.Pos))
	}
	if o := flatbuffers.UOffsetT(tab.Offset(fbVTableOffset(fbHeightSlot))); o != 0 {
		r.Height = int(tab.GetInt32(o + tab.Pos))
	}
	if o := flatbuffers.UOffsetT(tab.Offset(fbVTableOffset(fbFlatGridSlot))); o != 0 {
		n := tab.VectorLen(o)
		if n < 0 || n > len(data) {
			return Record{}, errors.Wrapf(ErrMalformedRecord, "[FlatbufferCodec.Decode] flat grid length %d out of range", n)
		}
		start := tab.Vector(o)
		r.FlatGrid = make([]bool, n)
		for i := range n {
			r.FlatGrid[i] = tab.GetBool(start + flatbuffers.UOffsetT(i))
		}
	}

	return r, nil
}
