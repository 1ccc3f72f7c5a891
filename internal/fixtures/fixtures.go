// Package fixtures holds the example contexts shared by the tests, the
// circle demo and offdump gen.
package fixtures

import (
	"bytes"

	"github.com/rawbytedev/offptr"
)

// ArrayHeader owns a fixed-size byte array.
type ArrayHeader struct {
	Base [11]byte
}

type arrayBase struct{}

func (arrayBase) Elems(h *ArrayHeader) []byte { return h.Base[:] }

type (
	ArrayPtr  = offptr.Ptr[arrayBase, ArrayHeader, byte, uint32]
	ArraySpan = offptr.Span[arrayBase, ArrayHeader, byte, uint32]
)

// NewArrayHeader returns a header holding "hello world".
func NewArrayHeader() *ArrayHeader {
	h := &ArrayHeader{}
	copy(h.Base[:], "hello world")
	return h
}

// StringHeader owns a growable byte buffer and one pointer into it.
type StringHeader struct {
	Base      []byte
	Important offptr.Ptr[stringBase, StringHeader, byte, uint32]
}

type stringBase struct{}

func (stringBase) Elems(h *StringHeader) []byte { return h.Base }

type (
	StringPtr  = offptr.Ptr[stringBase, StringHeader, byte, uint32]
	StringSpan = offptr.Span[stringBase, StringHeader, byte, uint32]
)

// NewStringHeader returns a header over s with Important at offset 0.
func NewStringHeader(s string) *StringHeader {
	return &StringHeader{Base: []byte(s)}
}

// Text keeps its spans inline, next to the bytes they index.
type Text struct {
	Base  []byte
	Hello offptr.Span[textBase, Text, byte, uint32]
	World offptr.Span[textBase, Text, byte, uint32]
	Words [2]offptr.Span[textBase, Text, byte, uint32]
}

type textBase struct{}

func (textBase) Elems(t *Text) []byte { return t.Base }

type TextSpan = offptr.Span[textBase, Text, byte, uint32]

// NewText returns "hello world" with both words marked twice.
func NewText() *Text {
	hello := TextSpan{Off: 0, Len: 5}
	world := TextSpan{Off: 6, Len: 5}
	return &Text{
		Base:  []byte("hello world"),
		Hello: hello,
		World: world,
		Words: [2]TextSpan{hello, world},
	}
}

// Key is one entry of the circle of fifths.
type Key struct {
	Note uint32
	Next offptr.Ptr[circleKeys, CircleOfFifths, Key, uint32]
}

// CircleOfFifths is a cyclic list stored in a single slice.
type CircleOfFifths struct {
	Keys []Key
}

type circleKeys struct{}

func (circleKeys) Elems(c *CircleOfFifths) []Key { return c.Keys }

type KeyPtr = offptr.Ptr[circleKeys, CircleOfFifths, Key, uint32]

// NoteNames maps a note number to its name.
var NoteNames = [12]string{"A", "Bb", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}

// Name returns the name of the key's note.
func (k Key) Name() string { return NoteNames[k.Note%12] }

// NewCircleOfFifths links each of the twelve notes to the note a fifth
// above it.
func NewCircleOfFifths() *CircleOfFifths {
	c := &CircleOfFifths{Keys: make([]Key, 12)}
	for i := range c.Keys {
		c.Keys[i] = Key{Note: uint32(i), Next: KeyPtr{Off: uint32((i + 7) % 12)}}
	}
	return c
}

// Foo and Bar point at each other across two fields of a Chain.
type Foo struct {
	Name [4]byte
	Bar  offptr.Ptr[chainBars, Chain, Bar, uint32]
}

type Bar struct {
	Name [4]byte
	Foo  offptr.Ptr[chainFoos, Chain, Foo, uint32]
}

// Chain owns the foos and bars of a two-field pointer graph.
type Chain struct {
	Foos []Foo
	Bars []Bar
}

type chainFoos struct{}

func (chainFoos) Elems(c *Chain) []Foo { return c.Foos }

type chainBars struct{}

func (chainBars) Elems(c *Chain) []Bar { return c.Bars }

type (
	FooPtr = offptr.Ptr[chainFoos, Chain, Foo, uint32]
	BarPtr = offptr.Ptr[chainBars, Chain, Bar, uint32]
)

// NewChain returns foo0 -> bar0 -> foo1 -> bar1 -> foo0.
func NewChain() *Chain {
	return &Chain{
		Foos: []Foo{
			{Name: name4("foo0"), Bar: BarPtr{Off: 0}},
			{Name: name4("foo1"), Bar: BarPtr{Off: 1}},
		},
		Bars: []Bar{
			{Name: name4("bar0"), Foo: FooPtr{Off: 1}},
			{Name: name4("bar1"), Foo: FooPtr{Off: 0}},
		},
	}
}

func name4(s string) (n [4]byte) {
	copy(n[:], s)
	return n
}

// Document stores a text and the spans of its words in separate fields.
type Document struct {
	Text  []byte
	Words []offptr.Span[docText, Document, byte, uint32]
}

type docText struct{}

func (docText) Elems(d *Document) []byte { return d.Text }

type WordSpan = offptr.Span[docText, Document, byte, uint32]

// NewDocument splits s on white space and records a span per word.
func NewDocument(s string) *Document {
	d := &Document{Text: []byte(s)}
	for _, w := range bytes.Fields(d.Text) {
		var sp WordSpan
		d.Words = append(d.Words, *sp.FromRange(d, w))
	}
	return d
}
