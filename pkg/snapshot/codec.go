package snapshot

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rawbytedev/offptr/internal/common"
)

// plan describes the packed little-endian encoding of one element type.
type plan struct {
	kind    reflect.Kind
	size    int // packed size in bytes
	fields  []fieldPlan
	elem    *plan
	n       int
	hasBool bool
}

type fieldPlan struct {
	idx   int
	p     *plan
	blank bool // "_" fields encode as zero bytes
}

type planCache struct {
	mu sync.RWMutex
	m  map[reflect.Type]*plan
}

var plans = &planCache{m: make(map[reflect.Type]*plan)}

func (pc *planCache) get(t reflect.Type) (*plan, error) {
	pc.mu.RLock()
	if p, ok := pc.m[t]; ok {
		pc.mu.RUnlock()
		return p, nil
	}
	pc.mu.RUnlock()

	pc.mu.Lock()
	defer pc.mu.Unlock()

	// Double-check
	if p, ok := pc.m[t]; ok {
		return p, nil
	}
	p, err := buildPlan(t)
	if err != nil {
		return nil, err
	}
	pc.m[t] = p
	return p, nil
}

func buildPlan(t reflect.Type) (*plan, error) {
	k := t.Kind()
	switch {
	case common.IsFixedKind(k):
		return &plan{kind: k, size: common.FixedSize(k), hasBool: k == reflect.Bool}, nil
	case k == reflect.Array:
		e, err := buildPlan(t.Elem())
		if err != nil {
			return nil, err
		}
		return &plan{kind: k, elem: e, n: t.Len(), size: e.size * t.Len(), hasBool: e.hasBool}, nil
	case k == reflect.Struct:
		p := &plan{kind: k}
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			fp, err := buildPlan(sf.Type)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t, sf.Name, err)
			}
			blank := sf.Name == "_"
			if !blank && !sf.IsExported() {
				return nil, fmt.Errorf("%w: unexported field %s.%s", ErrUnsupported, t, sf.Name)
			}
			p.fields = append(p.fields, fieldPlan{idx: i, p: fp, blank: blank})
			p.size += fp.size
			p.hasBool = p.hasBool || fp.hasBool
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
}

func (p *plan) put(dst []byte, v reflect.Value) []byte {
	switch p.kind {
	case reflect.Array:
		for i := 0; i < p.n; i++ {
			dst = p.elem.put(dst, v.Index(i))
		}
	case reflect.Struct:
		for _, f := range p.fields {
			if f.blank {
				dst = append(dst, make([]byte, f.p.size)...)
				continue
			}
			dst = f.p.put(dst, v.Field(f.idx))
		}
	default:
		dst = common.PutFixed(dst, v)
	}
	return dst
}

// get decodes src, which holds at least p.size bytes, into v.
func (p *plan) get(src []byte, v reflect.Value) {
	switch p.kind {
	case reflect.Array:
		for i := 0; i < p.n; i++ {
			p.elem.get(src[i*p.elem.size:], v.Index(i))
		}
	case reflect.Struct:
		off := 0
		for _, f := range p.fields {
			if !f.blank {
				f.p.get(src[off:], v.Field(f.idx))
			}
			off += f.p.size
		}
	default:
		common.SetFixed(v, src)
	}
}

// packed reports whether values of t are laid out in memory exactly as p
// encodes them, so element bytes can be copied or aliased directly.
func (p *plan) packed(t reflect.Type) bool {
	return !p.hasBool && p.size == int(t.Size()) && common.LittleEndianHost()
}
