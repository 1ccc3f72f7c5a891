package snapshot

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type packedPair struct {
	A uint32
	B int32
}

type paddedPair struct {
	A uint8
	B uint64
}

func TestPlanSizes(t *testing.T) {
	tests := []struct {
		typ    reflect.Type
		size   int
		packed bool
	}{
		{reflect.TypeFor[uint16](), 2, true},
		{reflect.TypeFor[float64](), 8, true},
		{reflect.TypeFor[bool](), 1, false},
		{reflect.TypeFor[[4]byte](), 4, true},
		{reflect.TypeFor[packedPair](), 8, true},
		{reflect.TypeFor[paddedPair](), 9, false},
		{reflect.TypeFor[[2]paddedPair](), 18, false},
	}
	for _, tt := range tests {
		p, err := buildPlan(tt.typ)
		require.NoError(t, err, tt.typ)
		assert.Equal(t, tt.size, p.size, tt.typ)
		assert.Equal(t, tt.packed, p.packed(tt.typ), tt.typ)
	}
}

func TestPlanUnsupported(t *testing.T) {
	for _, typ := range []reflect.Type{
		reflect.TypeFor[string](),
		reflect.TypeFor[[]byte](),
		reflect.TypeFor[*int](),
		reflect.TypeFor[int](),
		reflect.TypeFor[map[string]int](),
		reflect.TypeFor[struct{ S []int }](),
	} {
		_, err := buildPlan(typ)
		require.ErrorIs(t, err, ErrUnsupported, typ)
	}
}

func TestPlanPutGet(t *testing.T) {
	p, err := buildPlan(reflect.TypeFor[paddedPair]())
	require.NoError(t, err)
	in := paddedPair{A: 0xab, B: 0x0102030405060708}
	b := p.put(nil, reflect.ValueOf(in))
	require.Equal(t, []byte{0xab, 8, 7, 6, 5, 4, 3, 2, 1}, b)

	var out paddedPair
	p.get(b, reflect.ValueOf(&out).Elem())
	require.Equal(t, in, out)
}

func TestPlanCacheConcurrent(t *testing.T) {
	pc := &planCache{m: make(map[reflect.Type]*plan)}
	var wg sync.WaitGroup
	got := make([]*plan, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := pc.get(reflect.TypeFor[packedPair]())
			if err == nil {
				got[i] = p
			}
		}()
	}
	wg.Wait()
	for _, p := range got {
		require.Same(t, got[0], p)
	}
}
