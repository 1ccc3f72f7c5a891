package fixtures

import (
	"fmt"

	"github.com/rawbytedev/offptr/pkg/snapshot"
)

// Schema ids of the fixture layouts.
const (
	CircleSchema   uint64 = 0xC1_0001
	ChainSchema    uint64 = 0xC1_0002
	DocumentSchema uint64 = 0xC1_0003
)

// CircleLayout stores a CircleOfFifths.
func CircleLayout(opts snapshot.Options) (*snapshot.Layout[CircleOfFifths], error) {
	l, err := snapshot.NewLayout(CircleSchema,
		snapshot.Slice("keys", func(c *CircleOfFifths) *[]Key { return &c.Keys }),
	)
	if err != nil {
		return nil, err
	}
	l.Opts = opts
	return l, nil
}

// ChainLayout stores a Chain.
func ChainLayout(opts snapshot.Options) (*snapshot.Layout[Chain], error) {
	l, err := snapshot.NewLayout(ChainSchema,
		snapshot.Slice("foos", func(c *Chain) *[]Foo { return &c.Foos }),
		snapshot.Slice("bars", func(c *Chain) *[]Bar { return &c.Bars }),
	)
	if err != nil {
		return nil, err
	}
	l.Opts = opts
	return l, nil
}

// DocumentLayout stores a Document.
func DocumentLayout(opts snapshot.Options) (*snapshot.Layout[Document], error) {
	l, err := snapshot.NewLayout(DocumentSchema,
		snapshot.Slice("text", func(d *Document) *[]byte { return &d.Text }),
		snapshot.Slice("words", func(d *Document) *[]WordSpan { return &d.Words }),
	)
	if err != nil {
		return nil, err
	}
	l.Opts = opts
	return l, nil
}

// Names lists the fixtures Encode knows, in the order offdump shows them.
var Names = []string{"circle", "chain", "document"}

// Encode writes a snapshot of the named fixture.
func Encode(name string, opts snapshot.Options) ([]byte, error) {
	switch name {
	case "circle":
		l, err := CircleLayout(opts)
		if err != nil {
			return nil, err
		}
		return l.Encode(NewCircleOfFifths())
	case "chain":
		l, err := ChainLayout(opts)
		if err != nil {
			return nil, err
		}
		return l.Encode(NewChain())
	case "document":
		l, err := DocumentLayout(opts)
		if err != nil {
			return nil, err
		}
		return l.Encode(NewDocument("offset pointers survive relocation"))
	default:
		return nil, fmt.Errorf("fixtures: unknown fixture %q", name)
	}
}
