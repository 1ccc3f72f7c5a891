package offptr

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// indexWidth returns the byte width of I.
func indexWidth[I Index]() int {
	var v I
	return int(unsafe.Sizeof(v))
}

func appendIndex[I Index](b []byte, v I) []byte {
	switch indexWidth[I]() {
	case 1:
		return append(b, byte(v))
	case 2:
		return binary.LittleEndian.AppendUint16(b, uint16(v))
	case 4:
		return binary.LittleEndian.AppendUint32(b, uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(b, uint64(v))
	}
}

func readIndex[I Index](b []byte) (I, error) {
	w := indexWidth[I]()
	if len(b) < w {
		return 0, fmt.Errorf("offptr: need %d bytes, have %d", w, len(b))
	}
	switch w {
	case 1:
		return I(b[0]), nil
	case 2:
		return I(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return I(binary.LittleEndian.Uint32(b)), nil
	default:
		return I(binary.LittleEndian.Uint64(b)), nil
	}
}
