package offptr

import (
	"context"
	"fmt"
)

// Source supplies the context currently bound for type C.
type Source[C any] interface {
	Current() (*C, error)
}

// Registry is a stack of bound contexts of type C. A Registry belongs to a
// single goroutine and is not safe for concurrent use; goroutines that
// resolve implicitly each keep their own. The zero value is an empty
// registry ready to use.
type Registry[C any] struct {
	stack []*C
}

// Binding is the handle returned by Register.
type Binding[C any] struct {
	reg      *Registry[C]
	depth    int
	released bool
}

// Register pushes c, making it the current context until the returned
// binding is released.
func (r *Registry[C]) Register(c *C) *Binding[C] {
	r.stack = append(r.stack, c)
	return &Binding[C]{reg: r, depth: len(r.stack)}
}

// Release pops the entry pushed by the matching Register. Releasing a
// binding while a later one is still registered panics with
// ErrReleaseOrder. A second Release is a no-op.
func (b *Binding[C]) Release() {
	if b == nil || b.released {
		return
	}
	r := b.reg
	if len(r.stack) != b.depth {
		panic(fmt.Errorf("%w: depth %d, top %d", ErrReleaseOrder, b.depth, len(r.stack)))
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	b.released = true
}

// Current returns the most recently registered context that is still bound.
func (r *Registry[C]) Current() (*C, error) {
	if r == nil || len(r.stack) == 0 {
		return nil, fmt.Errorf("%w: %T", ErrNotBound, (*C)(nil))
	}
	return r.stack[len(r.stack)-1], nil
}

// Depth returns the number of live bindings.
func (r *Registry[C]) Depth() int {
	if r == nil {
		return 0
	}
	return len(r.stack)
}

// Do registers c for the duration of fn. The binding is released however
// fn exits, including by panic.
func (r *Registry[C]) Do(c *C, fn func() error) error {
	b := r.Register(c)
	defer b.Release()
	return fn()
}

type bindingKey[C any] struct{}

// Bind returns a copy of ctx in which c is the bound context of type C.
// A later Bind of the same type on the derived context shadows c; the
// parent context keeps seeing its own binding. A nil c leaves ctx
// unchanged, so any outer binding stays visible.
func Bind[C any](ctx context.Context, c *C) context.Context {
	if c == nil {
		return ctx
	}
	return context.WithValue(ctx, bindingKey[C]{}, c)
}

// Current returns the context of type C bound to ctx.
func Current[C any](ctx context.Context) (*C, error) {
	if ctx != nil {
		if c, ok := ctx.Value(bindingKey[C]{}).(*C); ok && c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrNotBound, (*C)(nil))
}

// FromContext adapts the binding carried by ctx to a Source.
func FromContext[C any](ctx context.Context) Source[C] {
	return ctxSource[C]{ctx: ctx}
}

type ctxSource[C any] struct {
	ctx context.Context
}

func (s ctxSource[C]) Current() (*C, error) {
	return Current[C](s.ctx)
}

func current[C any](src Source[C]) (*C, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: %T", ErrNotBound, (*C)(nil))
	}
	return src.Current()
}
