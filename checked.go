package offptr

import "fmt"

// Checked resolves p against c, returning ErrOutOfRange instead of
// panicking when the offset is past the end of the field.
func (p Ptr[F, C, E, I]) Checked(c *C) (*E, error) {
	base := elems[F, C, E](c)
	if p.Off < 0 || uint64(p.Off) >= uint64(len(base)) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, p.Off, len(base))
	}
	return &base[p.Off], nil
}

// Checked resolves s against c, returning ErrOutOfRange when the span does
// not lie within the field.
func (s Span[F, C, E, I]) Checked(c *C) ([]E, error) {
	base := elems[F, C, E](c)
	n := uint64(len(base))
	if s.Off < 0 || s.Len < 0 || uint64(s.Len) > n || uint64(s.Off) > n-uint64(s.Len) {
		return nil, fmt.Errorf("%w: %d+%d of %d", ErrOutOfRange, s.Off, s.Len, len(base))
	}
	end := s.Off + s.Len
	return base[s.Off:end:end], nil
}
