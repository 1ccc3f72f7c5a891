package offptr

import "golang.org/x/exp/constraints"

// Field selects one slice field of a context type C. Implementations are
// zero-size selector types; their value is never inspected.
type Field[C, E any] interface {
	Elems(c *C) []E
}

// Index is the set of integer types an offset can be stored in.
type Index interface {
	constraints.Integer
}

func elems[F Field[C, E], C, E any](c *C) []E {
	var f F
	return f.Elems(c)
}
