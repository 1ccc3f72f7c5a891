package offptr

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ptr is an offset into the field selected by F of a context of type C.
// Its only state is the offset, so a Ptr has the size and byte layout of
// an I and can be stored wherever an I can.
type Ptr[F Field[C, E], C, E any, I Index] struct {
	Off I
}

// Offset returns the stored offset.
func (p Ptr[F, C, E, I]) Offset() I { return p.Off }

// Int returns the offset as an int.
func (p Ptr[F, C, E, I]) Int() int { return int(p.Off) }

// Set replaces the stored offset.
func (p *Ptr[F, C, E, I]) Set(off I) { p.Off = off }

// With returns a pointer into the same field at off.
func (p Ptr[F, C, E, I]) With(off I) Ptr[F, C, E, I] {
	return Ptr[F, C, E, I]{Off: off}
}

// Add returns p moved n elements forward.
func (p Ptr[F, C, E, I]) Add(n I) Ptr[F, C, E, I] {
	return Ptr[F, C, E, I]{Off: p.Off + n}
}

// Sub returns p moved n elements back.
func (p Ptr[F, C, E, I]) Sub(n I) Ptr[F, C, E, I] {
	return Ptr[F, C, E, I]{Off: p.Off - n}
}

// Diff returns the element distance from q to p.
func (p Ptr[F, C, E, I]) Diff(q Ptr[F, C, E, I]) I { return p.Off - q.Off }

// Next returns the pointer to the following element.
func (p Ptr[F, C, E, I]) Next() Ptr[F, C, E, I] { return p.Add(1) }

// Prev returns the pointer to the preceding element.
func (p Ptr[F, C, E, I]) Prev() Ptr[F, C, E, I] { return p.Sub(1) }

// Inc advances p by one element in place.
func (p *Ptr[F, C, E, I]) Inc() { p.Off++ }

// Base returns the field of c that p addresses.
func (p Ptr[F, C, E, I]) Base(c *C) []E { return elems[F, C, E](c) }

// Bind resolves p against c. The offset is not checked against the
// field's length.
func (p Ptr[F, C, E, I]) Bind(c *C) *E {
	return &elems[F, C, E](c)[p.Off]
}

// Elem resolves the element pos places after p in c.
func (p Ptr[F, C, E, I]) Elem(c *C, pos I) *E {
	return &elems[F, C, E](c)[p.Off+pos]
}

// Load returns a copy of the element p addresses in c.
func (p Ptr[F, C, E, I]) Load(c *C) E {
	return elems[F, C, E](c)[p.Off]
}

// Resolve resolves p against the context src currently has bound.
func (p Ptr[F, C, E, I]) Resolve(src Source[C]) (*E, error) {
	c, err := current(src)
	if err != nil {
		return nil, err
	}
	return p.Bind(c), nil
}

// Deref returns a copy of the element p addresses in the bound context.
func (p Ptr[F, C, E, I]) Deref(src Source[C]) (E, error) {
	e, err := p.Resolve(src)
	if err != nil {
		var zero E
		return zero, err
	}
	return *e, nil
}

// At resolves the element pos places after p in the bound context.
func (p Ptr[F, C, E, I]) At(src Source[C], pos I) (*E, error) {
	c, err := current(src)
	if err != nil {
		return nil, err
	}
	return p.Elem(c, pos), nil
}

func (p Ptr[F, C, E, I]) String() string {
	return fmt.Sprintf("@%d", p.Off)
}

// AppendBinary appends the offset as a little-endian integer of I's width.
func (p Ptr[F, C, E, I]) AppendBinary(b []byte) ([]byte, error) {
	return appendIndex(b, p.Off), nil
}

func (p Ptr[F, C, E, I]) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(nil)
}

func (p *Ptr[F, C, E, I]) UnmarshalBinary(b []byte) error {
	if w := indexWidth[I](); len(b) != w {
		return fmt.Errorf("offptr: pointer needs %d bytes, have %d", w, len(b))
	}
	off, err := readIndex[I](b)
	if err != nil {
		return err
	}
	p.Off = off
	return nil
}

// MarshalYAML encodes p as its bare offset.
func (p Ptr[F, C, E, I]) MarshalYAML() (any, error) {
	return p.Off, nil
}

func (p *Ptr[F, C, E, I]) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&p.Off)
}
