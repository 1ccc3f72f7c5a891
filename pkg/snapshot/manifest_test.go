package snapshot_test

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/offptr/internal/fixtures"
	"github.com/rawbytedev/offptr/pkg/snapshot"
)

func chainSnapshot(t *testing.T, opts snapshot.Options) []byte {
	t.Helper()
	buf, err := fixtures.Encode("chain", opts)
	require.NoError(t, err)
	return buf
}

func TestInspect(t *testing.T) {
	buf := chainSnapshot(t, snapshot.Options{Align: true})
	m, err := snapshot.Inspect(buf)
	require.NoError(t, err)

	assert.Equal(t, uint16(snapshot.VersionV1), m.Version)
	assert.Equal(t, fixtures.ChainSchema, m.SchemaID)
	assert.True(t, m.Aligned)
	assert.False(t, m.Compressed)
	assert.Equal(t, len(buf), m.Size)
	require.Len(t, m.Sections, 2)
	assert.Equal(t, snapshot.SectionInfo{Name: "foos", ElemSize: 8, Count: 2, Offset: 0}, m.Sections[0])
	assert.Equal(t, snapshot.SectionInfo{Name: "bars", ElemSize: 8, Count: 2, Offset: 16}, m.Sections[1])
	assert.Equal(t, uint32(32), m.RawBytes)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: foos")
	assert.Contains(t, string(out), "elem_size: 8")
}

func TestInspectCompressed(t *testing.T) {
	buf, err := fixtures.Encode("circle", snapshot.Options{Compress: true})
	require.NoError(t, err)
	m, err := snapshot.Inspect(buf)
	require.NoError(t, err)
	assert.True(t, m.Compressed)
	assert.Equal(t, uint32(12*8), m.RawBytes)
	assert.NotEqual(t, m.RawBytes, m.DataBytes)
}

func TestAlignedOffsets(t *testing.T) {
	buf, err := fixtures.Encode("document", snapshot.Options{Align: true})
	require.NoError(t, err)
	h, err := snapshot.ParseHeader(buf)
	require.NoError(t, err)
	assert.Zero(t, h.DataOff%8)

	m, err := snapshot.Inspect(buf)
	require.NoError(t, err)
	for _, s := range m.Sections {
		assert.Zero(t, s.Offset%8, s.Name)
	}
}

func TestVerify(t *testing.T) {
	for name, opts := range optionSets {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, snapshot.Verify(chainSnapshot(t, opts)))
		})
	}
}

func TestChecksum(t *testing.T) {
	buf := chainSnapshot(t, snapshot.Options{})
	buf[len(buf)-6] ^= 0xff
	require.ErrorIs(t, snapshot.Verify(buf), snapshot.ErrChecksum)

	l, err := fixtures.ChainLayout(snapshot.Options{})
	require.NoError(t, err)
	var c fixtures.Chain
	require.ErrorIs(t, l.Decode(buf, &c), snapshot.ErrChecksum)
}

func TestShortAndForeign(t *testing.T) {
	buf := chainSnapshot(t, snapshot.Options{})
	_, err := snapshot.Inspect(buf[:10])
	require.ErrorIs(t, err, snapshot.ErrShortBuffer)

	_, err = snapshot.Inspect(buf[:len(buf)-1])
	require.ErrorIs(t, err, snapshot.ErrChecksum)

	foreign := append([]byte(nil), buf...)
	copy(foreign, "JUNK")
	require.ErrorIs(t, snapshot.Verify(foreign), snapshot.ErrBadMagic)

	future := append([]byte(nil), buf...)
	binary.LittleEndian.PutUint16(future[4:], 9)
	require.ErrorIs(t, snapshot.Verify(future), snapshot.ErrVersion)
}

// Frames with a valid checksum but inconsistent offsets are rejected.
func TestCorruptFrame(t *testing.T) {
	reseal := func(b []byte) []byte {
		body := b[:len(b)-snapshot.TrailerSize]
		binary.LittleEndian.PutUint32(b[len(body):], crc32.ChecksumIEEE(body))
		return b
	}
	base := chainSnapshot(t, snapshot.Options{})

	tests := map[string]func(b []byte){
		"table before header": func(b []byte) { binary.LittleEndian.PutUint32(b[20:], 4) },
		"data past end":       func(b []byte) { binary.LittleEndian.PutUint32(b[28:], 1<<20) },
		"raw length":          func(b []byte) { binary.LittleEndian.PutUint32(b[32:], 1) },
		"section count":       func(b []byte) { binary.LittleEndian.PutUint16(b[16:], 3) },
		"element count": func(b []byte) {
			// first entry: len("foos"), "foos", elemSize, count
			b[snapshot.HeaderSize+1+4+1] = 0x7f
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			b := append([]byte(nil), base...)
			mutate(b)
			require.ErrorIs(t, snapshot.Verify(reseal(b)), snapshot.ErrCorrupt)
		})
	}
}

func TestCorruptCompressedData(t *testing.T) {
	buf, err := fixtures.Encode("circle", snapshot.Options{Compress: true})
	require.NoError(t, err)
	h, err := snapshot.ParseHeader(buf)
	require.NoError(t, err)

	b := append([]byte(nil), buf...)
	for i := h.DataOff; i < h.DataOff+h.DataLen; i++ {
		b[i] = 0xAA
	}
	body := b[:len(b)-snapshot.TrailerSize]
	binary.LittleEndian.PutUint32(b[len(body):], crc32.ChecksumIEEE(body))

	_, err = snapshot.Inspect(b)
	require.NoError(t, err)
	require.ErrorIs(t, snapshot.Verify(b), snapshot.ErrCorrupt)
}
