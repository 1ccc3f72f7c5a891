package snapshot

import (
	"reflect"
	"unsafe"

	"github.com/rawbytedev/offptr/internal/common"
)

// Section is one slice field of a context type C as stored in a snapshot.
type Section[C any] interface {
	// Name identifies the section in the snapshot's table.
	Name() string
	// ElemSize is the encoded size of one element.
	ElemSize() int
	// Len is the number of elements the field of c currently holds.
	Len(c *C) int

	encode(dst []byte, c *C) []byte
	decode(src []byte, n int, c *C, alias bool)
	canAlias(src []byte, checkAlignment bool) bool
	planErr() error
}

// Slice returns the section named name that stores the slice slot
// returns. Decoding replaces the slice.
func Slice[C, E any](name string, slot func(*C) *[]E) Section[C] {
	t := reflect.TypeFor[E]()
	p, err := plans.get(t)
	return &sliceSection[C, E]{name: name, slot: slot, typ: t, plan: p, err: err}
}

type sliceSection[C, E any] struct {
	name string
	slot func(*C) *[]E
	typ  reflect.Type
	plan *plan
	err  error
}

func (s *sliceSection[C, E]) Name() string { return s.name }
func (s *sliceSection[C, E]) ElemSize() int { return s.plan.size }
func (s *sliceSection[C, E]) Len(c *C) int { return len(*s.slot(c)) }
func (s *sliceSection[C, E]) planErr() error { return s.err }

func (s *sliceSection[C, E]) encode(dst []byte, c *C) []byte {
	v := *s.slot(c)
	if len(v) == 0 {
		return dst
	}
	if s.plan.packed(s.typ) {
		return append(dst, unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*s.plan.size)...)
	}
	for i := range v {
		dst = s.plan.put(dst, reflect.ValueOf(&v[i]).Elem())
	}
	return dst
}

func (s *sliceSection[C, E]) canAlias(src []byte, checkAlignment bool) bool {
	if s.plan.size == 0 || !s.plan.packed(s.typ) {
		return false
	}
	return !checkAlignment || common.Aligned(src, uintptr(s.typ.Align()))
}

func (s *sliceSection[C, E]) decode(src []byte, n int, c *C, alias bool) {
	if alias {
		*s.slot(c) = common.Alias[E](src, n)
		return
	}
	out := make([]E, n)
	switch {
	case n == 0 || s.plan.size == 0:
	case s.plan.packed(s.typ):
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), n*s.plan.size), src)
	default:
		for i := range out {
			s.plan.get(src[i*s.plan.size:], reflect.ValueOf(&out[i]).Elem())
		}
	}
	*s.slot(c) = out
}
