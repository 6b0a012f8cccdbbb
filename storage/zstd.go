package storage

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ZstdCodec compresses the output of another codec
type ZstdCodec struct {
	Inner Codec
}

func (c ZstdCodec) Name() string { return c.Inner.Name() + "+zstd" }

func (c ZstdCodec) Encode(r Record) ([]byte, error) {
	b, err := c.Inner.Encode(r)
	if err != nil {
		return nil, err
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, errors.Wrap(err, "[ZstdCodec.Encode] failed to create zstd writer")
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, errors.Wrap(err, "[ZstdCodec.Encode] failed to compress record")
	}
	if err := compWriter.Close(); err != nil {
		return nil, errors.Wrap(err, "[ZstdCodec.Encode] failed to close zstd writer")
	}

	return compressed.Bytes(), nil
}

func (c ZstdCodec) Decode(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, errors.Wrap(ErrMalformedRecord, "[ZstdCodec.Decode] no data")
	}

	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return Record{}, errors.Wrapf(ErrMalformedRecord, "[ZstdCodec.Decode] failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return Record{}, errors.Wrapf(ErrMalformedRecord, "[ZstdCodec.Decode] failed to decompress record: %v", err)
	}

	return c.Inner.Decode(b)
}
