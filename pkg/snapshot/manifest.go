package snapshot

import (
	"fmt"
	"math"

	"github.com/rawbytedev/offptr/internal/common"
)

// SectionInfo describes one section of a snapshot.
type SectionInfo struct {
	Name     string `yaml:"name"`
	ElemSize int    `yaml:"elem_size"`
	Count    int    `yaml:"count"`
	Offset   int    `yaml:"offset"` // into the decompressed data region
}

// Bytes returns the size of the section's payload.
func (s SectionInfo) Bytes() int { return s.ElemSize * s.Count }

// Manifest summarises a snapshot without decoding its sections.
type Manifest struct {
	Version    uint16        `yaml:"version"`
	SchemaID   uint64        `yaml:"schema_id"`
	Compressed bool          `yaml:"compressed"`
	Aligned    bool          `yaml:"aligned"`
	Size       int           `yaml:"size"`
	DataBytes  uint32        `yaml:"data_bytes"`
	RawBytes   uint32        `yaml:"raw_bytes"`
	Sections   []SectionInfo `yaml:"sections"`
}

// Inspect validates the frame of buf and returns its manifest.
func Inspect(buf []byte) (Manifest, error) {
	h, entries, err := parse(buf)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{
		Version:    h.Version,
		SchemaID:   h.SchemaID,
		Compressed: h.Flags&FlagCompressed != 0,
		Aligned:    h.Flags&FlagAligned != 0,
		Size:       len(buf),
		DataBytes:  h.DataLen,
		RawBytes:   h.RawLen,
		Sections:   entries,
	}, nil
}

// Verify checks everything Decode checks short of matching a layout:
// header, checksum, section table and, for compressed snapshots, that the
// data region decompresses to the recorded length.
func Verify(buf []byte) error {
	h, _, err := parse(buf)
	if err != nil {
		return err
	}
	_, err = rawData(buf, h)
	return err
}

func appendTable(dst []byte, entries []SectionInfo) []byte {
	for _, e := range entries {
		dst = common.WriteVarUintTo(dst, uint64(len(e.Name)))
		dst = append(dst, e.Name...)
		dst = common.WriteVarUintTo(dst, uint64(e.ElemSize))
		dst = common.WriteVarUintTo(dst, uint64(e.Count))
		dst = common.WriteVarUintTo(dst, uint64(e.Offset))
	}
	return dst
}

// parse reads and validates the header, checksum and section table of buf.
func parse(buf []byte) (Header, []SectionInfo, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return h, nil, err
	}
	if err := checkFrame(buf, h); err != nil {
		return h, nil, err
	}
	entries, err := readTable(buf[h.TableOff:h.DataOff], int(h.Sections))
	if err != nil {
		return h, nil, err
	}
	for _, e := range entries {
		if e.ElemSize > 0 && uint64(e.Count) > uint64(h.RawLen)/uint64(e.ElemSize) {
			return h, nil, fmt.Errorf("%w: section %q holds %d elements of %d B", ErrCorrupt, e.Name, e.Count, e.ElemSize)
		}
		if uint64(e.Offset)+uint64(e.Bytes()) > uint64(h.RawLen) {
			return h, nil, fmt.Errorf("%w: section %q ends past data region", ErrCorrupt, e.Name)
		}
	}
	return h, entries, nil
}

func readTable(tb []byte, n int) ([]SectionInfo, error) {
	entries := make([]SectionInfo, 0, n)
	pos := 0
	next := func() (int, error) {
		v, k := common.ReadVarUint(tb[pos:])
		if k == 0 || v > math.MaxUint32 {
			return 0, fmt.Errorf("%w: section table at byte %d", ErrCorrupt, pos)
		}
		pos += k
		return int(v), nil
	}
	for i := 0; i < n; i++ {
		nameLen, err := next()
		if err != nil {
			return nil, err
		}
		if nameLen > len(tb)-pos {
			return nil, fmt.Errorf("%w: section %d name overruns table", ErrCorrupt, i)
		}
		e := SectionInfo{Name: string(tb[pos : pos+nameLen])}
		pos += nameLen
		if e.ElemSize, err = next(); err != nil {
			return nil, err
		}
		if e.Count, err = next(); err != nil {
			return nil, err
		}
		if e.Offset, err = next(); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
