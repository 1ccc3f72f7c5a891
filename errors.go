package offptr

import "errors"

var (
	// ErrNotBound is returned by implicit resolution when no context of the
	// required type is bound.
	ErrNotBound = errors.New("offptr: no context bound")

	// ErrStructuralMismatch reports offsets or stored layouts that do not
	// belong to the context or field they are resolved against.
	ErrStructuralMismatch = errors.New("offptr: structural mismatch")

	// ErrOutOfRange is returned only by the checked resolution variants.
	ErrOutOfRange = errors.New("offptr: offset out of range")

	// ErrNotInField is returned by checked address conversion when the
	// address does not point at an element of the field.
	ErrNotInField = errors.New("offptr: address not in field")

	// ErrReleaseOrder is the panic value of a binding released while a
	// later binding on the same registry is still live.
	ErrReleaseOrder = errors.New("offptr: binding released out of order")
)
