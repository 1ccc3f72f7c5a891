package common

import (
	"encoding/binary"
	"math"
	"reflect"
	"unsafe"
)

// IsFixedKind reports whether k is a fixed-size primitive kind.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// FixedSize returns the byte width for fixed-size primitive kinds.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	default:
		return -1
	}
}

// WriteVarUintTo appends varint-encoded x to dst using a small stack scratch.
func WriteVarUintTo(dst []byte, x uint64) []byte {
	var scratch [10]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	return append(dst, scratch[:i]...)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// A truncated varint reports zero bytes consumed.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == 10 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}

// Align rounds n up to a multiple of a.
func Align(n, a int) int {
	if a <= 1 {
		return n
	}
	return (n + a - 1) &^ (a - 1)
}

// PutFixed appends the little-endian encoding of a fixed-kind value.
func PutFixed(dst []byte, v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(dst, 1)
		}
		return append(dst, 0)
	case reflect.Int8:
		return append(dst, byte(v.Int()))
	case reflect.Uint8:
		return append(dst, byte(v.Uint()))
	case reflect.Int16:
		return binary.LittleEndian.AppendUint16(dst, uint16(v.Int()))
	case reflect.Uint16:
		return binary.LittleEndian.AppendUint16(dst, uint16(v.Uint()))
	case reflect.Int32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v.Int()))
	case reflect.Uint32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v.Uint()))
	case reflect.Int64:
		return binary.LittleEndian.AppendUint64(dst, uint64(v.Int()))
	case reflect.Uint64:
		return binary.LittleEndian.AppendUint64(dst, v.Uint())
	case reflect.Float32:
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v.Float()))
	default:
		panic("common: not a fixed kind: " + v.Kind().String())
	}
}

// SetFixed decodes a fixed-width primitive from b and sets dst.
func SetFixed(dst reflect.Value, b []byte) {
	switch dst.Kind() {
	case reflect.Bool:
		dst.SetBool(b[0] != 0)
	case reflect.Int8:
		dst.SetInt(int64(int8(b[0])))
	case reflect.Uint8:
		dst.SetUint(uint64(b[0]))
	case reflect.Int16:
		dst.SetInt(int64(int16(binary.LittleEndian.Uint16(b))))
	case reflect.Uint16:
		dst.SetUint(uint64(binary.LittleEndian.Uint16(b)))
	case reflect.Int32:
		dst.SetInt(int64(int32(binary.LittleEndian.Uint32(b))))
	case reflect.Uint32:
		dst.SetUint(uint64(binary.LittleEndian.Uint32(b)))
	case reflect.Int64:
		dst.SetInt(int64(binary.LittleEndian.Uint64(b)))
	case reflect.Uint64:
		dst.SetUint(binary.LittleEndian.Uint64(b))
	case reflect.Float32:
		dst.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
	case reflect.Float64:
		dst.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	}
}

// LittleEndianHost reports whether the native byte order is little-endian.
func LittleEndianHost() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}

// ElemDistance returns the number of elements of the given size between
// base and p. The result is meaningless when p does not point into the
// same allocation as base.
func ElemDistance(base, p unsafe.Pointer, size uintptr) int {
	if size == 0 {
		return 0
	}
	return int((uintptr(p) - uintptr(base)) / size)
}

// Contains reports whether p addresses the start of one of the n elements
// of the given size beginning at base.
func Contains(base, p unsafe.Pointer, size uintptr, n int) bool {
	if size == 0 || base == nil || p == nil {
		return false
	}
	b, q := uintptr(base), uintptr(p)
	if q < b || q >= b+size*uintptr(n) {
		return false
	}
	return (q-b)%size == 0
}

// Aligned reports whether b starts on an a-byte boundary.
func Aligned(b []byte, a uintptr) bool {
	if len(b) == 0 || a <= 1 {
		return true
	}
	return uintptr(unsafe.Pointer(&b[0]))%a == 0
}

// Alias reinterprets b as n values of E without copying. The caller must
// ensure b holds at least n*sizeof(E) bytes, is suitably aligned, and
// outlives the returned slice.
func Alias[E any](b []byte, n int) []E {
	if n == 0 {
		return []E{}
	}
	return unsafe.Slice((*E)(unsafe.Pointer(&b[0])), n)
}
