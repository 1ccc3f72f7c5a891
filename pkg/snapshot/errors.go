package snapshot

import "errors"

var (
	ErrShortBuffer = errors.New("snapshot: buffer too short")
	ErrBadMagic    = errors.New("snapshot: bad magic")
	ErrVersion     = errors.New("snapshot: unsupported version")
	ErrChecksum    = errors.New("snapshot: checksum mismatch")
	ErrCorrupt     = errors.New("snapshot: corrupt snapshot")
	ErrUnsupported = errors.New("snapshot: unsupported element type")
	ErrDuplicate   = errors.New("snapshot: duplicate section name")
)
