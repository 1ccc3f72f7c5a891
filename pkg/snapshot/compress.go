package snapshot

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// The encoder and decoder are only used through EncodeAll/DecodeAll, which
// are safe for concurrent use.
var (
	encoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	decoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil)
	})
)

func compress(raw []byte) ([]byte, error) {
	enc, err := encoder()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(raw, nil), nil
}

// rawData returns the data region of buf, decompressing it when needed.
func rawData(buf []byte, h Header) ([]byte, error) {
	stored := buf[h.DataOff : h.DataOff+h.DataLen]
	if h.Flags&FlagCompressed == 0 {
		return stored, nil
	}
	dec, err := decoder()
	if err != nil {
		return nil, err
	}
	raw, err := dec.DecodeAll(stored, make([]byte, 0, h.RawLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(raw) != int(h.RawLen) {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorrupt, len(raw), h.RawLen)
	}
	return raw, nil
}
