package snapshot

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const (
	Magic       = 0x3153464F // "OFS1"
	VersionV1   = 1
	HeaderSize  = 36
	TrailerSize = 4

	FlagCompressed = 0x0001 // data region is one zstd frame
	FlagAligned    = 0x0002 // data region and sections start on 8-byte boundaries

	alignment = 8
)

// Header is the fixed-size prefix of a snapshot.
type Header struct {
	Magic    uint32
	Version  uint16
	Flags    uint16
	SchemaID uint64
	Sections uint16
	TableOff uint32 // start of the section table
	DataOff  uint32 // start of the data region
	DataLen  uint32 // stored length of the data region
	RawLen   uint32 // length of the data region once decompressed
}

func encodeHeader(buf []byte, h Header) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, h.Magic)
	buf = binary.LittleEndian.AppendUint16(buf, h.Version)
	buf = binary.LittleEndian.AppendUint16(buf, h.Flags)
	buf = binary.LittleEndian.AppendUint64(buf, h.SchemaID)
	buf = binary.LittleEndian.AppendUint16(buf, h.Sections)
	buf = binary.LittleEndian.AppendUint16(buf, 0)
	buf = binary.LittleEndian.AppendUint32(buf, h.TableOff)
	buf = binary.LittleEndian.AppendUint32(buf, h.DataOff)
	buf = binary.LittleEndian.AppendUint32(buf, h.DataLen)
	buf = binary.LittleEndian.AppendUint32(buf, h.RawLen)
	return buf
}

// ParseHeader reads the header at the start of buf without copying and
// checks the magic and version. It does not verify the checksum.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrShortBuffer, len(buf), HeaderSize)
	}
	h := Header{}
	h.Magic = binary.LittleEndian.Uint32(buf[0:])
	h.Version = binary.LittleEndian.Uint16(buf[4:])
	h.Flags = binary.LittleEndian.Uint16(buf[6:])
	h.SchemaID = binary.LittleEndian.Uint64(buf[8:])
	h.Sections = binary.LittleEndian.Uint16(buf[16:])
	h.TableOff = binary.LittleEndian.Uint32(buf[20:])
	h.DataOff = binary.LittleEndian.Uint32(buf[24:])
	h.DataLen = binary.LittleEndian.Uint32(buf[28:])
	h.RawLen = binary.LittleEndian.Uint32(buf[32:])
	if h.Magic != Magic {
		return h, fmt.Errorf("%w: 0x%08x", ErrBadMagic, h.Magic)
	}
	if h.Version != VersionV1 {
		return h, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return h, nil
}

// checkFrame validates the trailer checksum and that the regions named by
// h lie inside buf.
func checkFrame(buf []byte, h Header) error {
	if len(buf) < HeaderSize+TrailerSize {
		return fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(buf))
	}
	body := buf[:len(buf)-TrailerSize]
	want := binary.LittleEndian.Uint32(buf[len(body):])
	if got := crc32.ChecksumIEEE(body); got != want {
		return fmt.Errorf("%w: got 0x%08x, want 0x%08x", ErrChecksum, got, want)
	}
	if h.TableOff < HeaderSize || h.TableOff > h.DataOff {
		return fmt.Errorf("%w: table offset %d", ErrCorrupt, h.TableOff)
	}
	if uint64(h.DataOff)+uint64(h.DataLen) != uint64(len(body)) {
		return fmt.Errorf("%w: data [%d+%d] in %d bytes", ErrCorrupt, h.DataOff, h.DataLen, len(body))
	}
	if h.Flags&FlagCompressed == 0 && h.DataLen != h.RawLen {
		return fmt.Errorf("%w: raw length %d, stored %d", ErrCorrupt, h.RawLen, h.DataLen)
	}
	return nil
}

func appendTrailer(buf []byte) []byte {
	return binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf))
}
