// Package snapshot writes a context's slice fields to a single relocatable
// byte image and loads them back.
//
// Offsets stored in the fields (offptr.Ptr and offptr.Span values, or any
// other integers) are copied verbatim, so they resolve against the loaded
// context exactly as they did against the original.
//
// Layout:
//
//	header (36 B)  magic "OFS1" | version | flags | schema id | section count |
//	               reserved | table offset | data offset | data length | raw length
//	table          per section: name, element size, count, offset (varints)
//	data           section payloads, 8-byte aligned with FlagAligned,
//	               zstd-compressed as a whole with FlagCompressed
//	trailer        crc32 (IEEE) of everything before it
//
// Elements must be built from fixed-size kinds: bools, integers, floats,
// arrays and structs of those. All multi-byte values are little-endian.
package snapshot
