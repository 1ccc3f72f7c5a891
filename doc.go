// Package offptr provides offset pointers: integer positions into a named
// slice field of an owning "context" struct, resolved to element references
// only when they are used.
//
// Because an offset stays valid when its context is copied, moved, written
// to disk or mapped back into memory, structures that point into themselves
// (including cycles) can be stored as plain bytes.
//
// # Selecting a field
//
// A field is named by a zero-size selector type:
//
//	type Header struct {
//	    Letters   []byte
//	    Important offptr.Ptr[letters, Header, byte, uint32]
//	}
//
//	type letters struct{}
//
//	func (letters) Elems(h *Header) []byte { return h.Letters }
//
//	type LetterPtr = offptr.Ptr[letters, Header, byte, uint32]
//
// Spell the instantiation out inside the context type itself; the alias is
// for code outside it.
//
// Every (context, field) pair gets its own selector, so a pointer into one
// field cannot be bound to another field or another context type.
//
// # Resolving
//
// Bind resolves against an explicit context. Resolve takes a Source that
// supplies the currently bound context: either a Registry owned by the
// calling goroutine or a context.Context carrying a binding made with Bind.
//
//	var reg offptr.Registry[Header]
//	b := reg.Register(&h)
//	defer b.Release()
//	c, err := h.Important.Deref(&reg)
//
// # Bounds
//
// The default resolution paths add no bounds checks of their own. An offset
// past the end of its field panics through Go's slice indexing. Checked
// variants that return ErrOutOfRange exist for debugging and tests.
package offptr
