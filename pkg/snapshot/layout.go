package snapshot

import (
	"fmt"
	"math"

	"github.com/rawbytedev/offptr"
	"github.com/rawbytedev/offptr/internal/common"
)

// Layout maps the slice fields of a context type C to the sections of a
// snapshot. A Layout is safe for concurrent use once built, provided Opts
// is not modified.
type Layout[C any] struct {
	Opts Options

	schemaID uint64
	sections []Section[C]
}

// NewLayout builds a layout identified by schemaID. Loading a snapshot
// checks the schema id and the name and element size of every section,
// in order, against the layout.
func NewLayout[C any](schemaID uint64, sections ...Section[C]) (*Layout[C], error) {
	if len(sections) > math.MaxUint16 {
		return nil, fmt.Errorf("snapshot: %d sections, at most %d", len(sections), math.MaxUint16)
	}
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if err := s.planErr(); err != nil {
			return nil, fmt.Errorf("snapshot: section %q: %w", s.Name(), err)
		}
		if seen[s.Name()] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, s.Name())
		}
		seen[s.Name()] = true
	}
	return &Layout[C]{schemaID: schemaID, sections: sections}, nil
}

// SchemaID returns the id written to and expected in snapshots.
func (l *Layout[C]) SchemaID() uint64 { return l.schemaID }

// Sections returns the names of the sections in order.
func (l *Layout[C]) Sections() []string {
	names := make([]string, len(l.sections))
	for i, s := range l.sections {
		names[i] = s.Name()
	}
	return names
}

// Encode writes the fields of c to a new snapshot.
func (l *Layout[C]) Encode(c *C) ([]byte, error) {
	var raw []byte
	entries := make([]SectionInfo, len(l.sections))
	for i, s := range l.sections {
		if l.Opts.Align {
			raw = padTo(raw, common.Align(len(raw), alignment))
		}
		entries[i] = SectionInfo{
			Name:     s.Name(),
			ElemSize: s.ElemSize(),
			Count:    s.Len(c),
			Offset:   len(raw),
		}
		raw = s.encode(raw, c)
	}
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot: data region of %d bytes exceeds 4 GiB", len(raw))
	}

	table := appendTable(nil, entries)
	dataOff := HeaderSize + len(table)
	var flags uint16
	if l.Opts.Align {
		flags |= FlagAligned
		dataOff = common.Align(dataOff, alignment)
	}
	stored := raw
	if l.Opts.Compress {
		var err error
		if stored, err = compress(raw); err != nil {
			return nil, fmt.Errorf("snapshot: compress: %w", err)
		}
		flags |= FlagCompressed
	}

	out := make([]byte, 0, dataOff+len(stored)+TrailerSize)
	out = encodeHeader(out, Header{
		Magic:    Magic,
		Version:  VersionV1,
		Flags:    flags,
		SchemaID: l.schemaID,
		Sections: uint16(len(entries)),
		TableOff: HeaderSize,
		DataOff:  uint32(dataOff),
		DataLen:  uint32(len(stored)),
		RawLen:   uint32(len(raw)),
	})
	out = append(out, table...)
	out = padTo(out, dataOff)
	out = append(out, stored...)
	return appendTrailer(out), nil
}

// Decode loads the snapshot in buf into the fields of c. Fields are only
// replaced once the whole snapshot has been validated. A snapshot written
// for a different schema or section layout fails with
// offptr.ErrStructuralMismatch.
func (l *Layout[C]) Decode(buf []byte, c *C) error {
	h, entries, err := parse(buf)
	if err != nil {
		return err
	}
	if h.SchemaID != l.schemaID {
		return fmt.Errorf("%w: schema id %d, layout expects %d", offptr.ErrStructuralMismatch, h.SchemaID, l.schemaID)
	}
	if len(entries) != len(l.sections) {
		return fmt.Errorf("%w: %d sections, layout expects %d", offptr.ErrStructuralMismatch, len(entries), len(l.sections))
	}
	for i, s := range l.sections {
		e := entries[i]
		if e.Name != s.Name() || e.ElemSize != s.ElemSize() {
			return fmt.Errorf("%w: section %d is %q (%d B), layout expects %q (%d B)",
				offptr.ErrStructuralMismatch, i, e.Name, e.ElemSize, s.Name(), s.ElemSize())
		}
	}
	raw, err := rawData(buf, h)
	if err != nil {
		return err
	}
	for i, s := range l.sections {
		e := entries[i]
		src := raw[e.Offset : e.Offset+e.Count*e.ElemSize]
		alias := l.Opts.ZeroCopy && s.canAlias(src, l.Opts.CheckAlignment)
		s.decode(src, e.Count, c, alias)
	}
	return nil
}

func padTo(b []byte, n int) []byte {
	if n <= len(b) {
		return b
	}
	return append(b, make([]byte, n-len(b))...)
}
