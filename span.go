package offptr

import (
	"fmt"
	"iter"
	"unsafe"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/offptr/internal/common"
)

// Span is a contiguous run of Len elements starting at Off in the field
// selected by F. Like Ptr it holds no reference to its context and its byte
// layout is two consecutive I values.
type Span[F Field[C, E], C, E any, I Index] struct {
	Off I
	Len I
}

// Pointer returns the offset pointer to the first element.
func (s Span[F, C, E, I]) Pointer() Ptr[F, C, E, I] {
	return Ptr[F, C, E, I]{Off: s.Off}
}

// Offset returns the index of the first element.
func (s Span[F, C, E, I]) Offset() I { return s.Off }

// Size returns the number of elements.
func (s Span[F, C, E, I]) Size() I { return s.Len }

// Empty reports whether the span has no elements.
func (s Span[F, C, E, I]) Empty() bool { return s.Len == 0 }

// Begin returns the pointer to the first element.
func (s Span[F, C, E, I]) Begin() Ptr[F, C, E, I] { return s.Pointer() }

// End returns the pointer one past the last element.
func (s Span[F, C, E, I]) End() Ptr[F, C, E, I] {
	return Ptr[F, C, E, I]{Off: s.Off + s.Len}
}

// FromAddress sets s to the n elements starting at elem, which must point
// into the field of c. The address is not validated; see
// FromAddressChecked.
func (s *Span[F, C, E, I]) FromAddress(c *C, elem *E, n I) *Span[F, C, E, I] {
	base := elems[F, C, E](c)
	s.Off = I(common.ElemDistance(unsafe.Pointer(unsafe.SliceData(base)), unsafe.Pointer(elem), elemSize[E]()))
	s.Len = n
	return s
}

// FromAddressChecked is FromAddress but fails with ErrNotInField when elem
// is not the address of an element of the field, and with ErrOutOfRange
// when the n elements do not fit. s is left unchanged on error.
func (s *Span[F, C, E, I]) FromAddressChecked(c *C, elem *E, n I) error {
	base := elems[F, C, E](c)
	ptr := unsafe.Pointer(unsafe.SliceData(base))
	if !common.Contains(ptr, unsafe.Pointer(elem), elemSize[E](), len(base)) {
		return fmt.Errorf("%w: %p", ErrNotInField, elem)
	}
	off := common.ElemDistance(ptr, unsafe.Pointer(elem), elemSize[E]())
	if n < 0 || uint64(n) > uint64(len(base)-off) {
		return fmt.Errorf("%w: %d+%d of %d", ErrOutOfRange, off, n, len(base))
	}
	s.Off, s.Len = I(off), n
	return nil
}

// FromAddressRange sets s to the elements in [begin, end) of the field
// of c.
func (s *Span[F, C, E, I]) FromAddressRange(c *C, begin, end *E) *Span[F, C, E, I] {
	n := common.ElemDistance(unsafe.Pointer(begin), unsafe.Pointer(end), elemSize[E]())
	return s.FromAddress(c, begin, I(n))
}

// FromIterator sets s to the n elements starting at begin.
func (s *Span[F, C, E, I]) FromIterator(begin Ptr[F, C, E, I], n I) *Span[F, C, E, I] {
	s.Off, s.Len = begin.Off, n
	return s
}

// FromIterators sets s to the elements in [begin, end).
func (s *Span[F, C, E, I]) FromIterators(begin, end Ptr[F, C, E, I]) *Span[F, C, E, I] {
	return s.FromIterator(begin, end.Diff(begin))
}

// FromRange sets s to the elements of r, a sub-slice of the field of c.
// An empty r with no capacity carries no position and yields the zero span;
// this includes an empty range at the end of a full field, whose data
// pointer the runtime leaves at the start of the array. Use FromIterator
// to keep such a position.
func (s *Span[F, C, E, I]) FromRange(c *C, r []E) *Span[F, C, E, I] {
	if cap(r) == 0 {
		*s = Span[F, C, E, I]{}
		return s
	}
	return s.FromAddress(c, &r[:1][0], I(len(r)))
}

// Bind resolves s against c. The capacity of the result is capped at its
// length so appends never write into the rest of the field.
func (s Span[F, C, E, I]) Bind(c *C) []E {
	end := s.Off + s.Len
	return elems[F, C, E](c)[s.Off:end:end]
}

// Slice resolves s against the context src currently has bound.
func (s Span[F, C, E, I]) Slice(src Source[C]) ([]E, error) {
	c, err := current(src)
	if err != nil {
		return nil, err
	}
	return s.Bind(c), nil
}

// Elem resolves the element at pos within s. pos is not checked against Len.
func (s Span[F, C, E, I]) Elem(c *C, pos I) *E {
	return &elems[F, C, E](c)[s.Off+pos]
}

// At resolves the element at pos within s in the bound context.
func (s Span[F, C, E, I]) At(src Source[C], pos I) (*E, error) {
	c, err := current(src)
	if err != nil {
		return nil, err
	}
	return s.Elem(c, pos), nil
}

// Values iterates over copies of the elements of s in c.
func (s Span[F, C, E, I]) Values(c *C) iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range s.Bind(c) {
			if !yield(e) {
				return
			}
		}
	}
}

// All iterates over the positions within s and the addressed elements.
func (s Span[F, C, E, I]) All(c *C) iter.Seq2[I, *E] {
	return func(yield func(I, *E) bool) {
		v := s.Bind(c)
		for i := range v {
			if !yield(I(i), &v[i]) {
				return
			}
		}
	}
}

// Subspan returns the span starting off elements into s, in the same
// field. It panics if off exceeds the length, as slicing would.
func (s Span[F, C, E, I]) Subspan(off I) Span[F, C, E, I] {
	if off < 0 || off > s.Len {
		panic(fmt.Sprintf("offptr: subspan offset %d out of range [0:%d]", off, s.Len))
	}
	return Span[F, C, E, I]{Off: s.Off + off, Len: s.Len - off}
}

// Equal reports whether s and o cover the same offsets.
func (s Span[F, C, E, I]) Equal(o Span[F, C, E, I]) bool {
	return s.Off == o.Off && s.Len == o.Len
}

// EqualFunc reports whether the elements of s in c equal other, in order,
// using eq.
func (s Span[F, C, E, I]) EqualFunc(c *C, other []E, eq func(a, b E) bool) bool {
	v := s.Bind(c)
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if !eq(v[i], other[i]) {
			return false
		}
	}
	return true
}

// ElemsEqual reports whether the elements of s in c equal other, in order.
func ElemsEqual[F Field[C, E], C any, E comparable, I Index](s Span[F, C, E, I], c *C, other []E) bool {
	return s.EqualFunc(c, other, func(a, b E) bool { return a == b })
}

func (s Span[F, C, E, I]) String() string {
	return fmt.Sprintf("@%d+%d", s.Off, s.Len)
}

// AppendBinary appends Off then Len, each a little-endian integer of I's
// width.
func (s Span[F, C, E, I]) AppendBinary(b []byte) ([]byte, error) {
	b = appendIndex(b, s.Off)
	return appendIndex(b, s.Len), nil
}

func (s Span[F, C, E, I]) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(nil)
}

func (s *Span[F, C, E, I]) UnmarshalBinary(b []byte) error {
	w := indexWidth[I]()
	if len(b) != 2*w {
		return fmt.Errorf("offptr: span needs %d bytes, have %d", 2*w, len(b))
	}
	off, err := readIndex[I](b)
	if err != nil {
		return err
	}
	n, err := readIndex[I](b[w:])
	if err != nil {
		return err
	}
	s.Off, s.Len = off, n
	return nil
}

// MarshalYAML encodes s as the pair [off, len].
func (s Span[F, C, E, I]) MarshalYAML() (any, error) {
	return []I{s.Off, s.Len}, nil
}

func (s *Span[F, C, E, I]) UnmarshalYAML(node *yaml.Node) error {
	var pair []I
	if err := node.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("offptr: span wants [off, len], got %d values", len(pair))
	}
	s.Off, s.Len = pair[0], pair[1]
	return nil
}

func elemSize[E any]() uintptr {
	var e E
	return unsafe.Sizeof(e)
}
