package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/internal/provenance"
)

func sampleDocument() *Document {
	src := provenance.NewDirect("doc.qmd", 0, 120)
	return &Document{
		Meta: Meta{
			"title": "Sample",
			"tags":  []any{"a", "b"},
		},
		Blocks: []Block{
			&Header{
				Level:   1,
				Attr:    Attr{ID: "intro", Classes: []string{"unnumbered"}},
				Content: []Inline{&Str{Text: "Intro", Source: src}},
				Source:  src,
			},
			&Para{
				Content: []Inline{
					&Str{Text: "hello", Source: src},
					&Space{Source: src},
					&Emph{Content: []Inline{&Str{Text: "world", Source: src}}, Source: src},
					&Note{Content: []Block{
						&Para{Content: []Inline{&Str{Text: "aside", Source: src}}, Source: src},
					}, Source: src},
				},
				Source: src,
			},
			&BulletList{
				Items: [][]Block{
					{&Plain{Content: []Inline{&Str{Text: "one", Source: src}}, Source: src}},
					{&Plain{Content: []Inline{&Str{Text: "two", Source: src}}, Source: src}},
				},
				Source: src,
			},
			&CodeBlock{
				Attr:   Attr{Classes: []string{"python"}, KVs: []KV{{Key: "echo", Value: "true"}}},
				Text:   "print(1)\n",
				Source: src,
			},
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	cp := Clone(doc)

	// Mutating the clone must not touch the original.
	cp.Blocks[1].(*Para).Content[0].(*Str).Text = "changed"
	cp.Blocks[3].(*CodeBlock).Attr.Classes[0] = "r"
	cp.Meta["title"] = "Other"

	assert.Equal(t, "hello", doc.Blocks[1].(*Para).Content[0].(*Str).Text)
	assert.Equal(t, "python", doc.Blocks[3].(*CodeBlock).Attr.Classes[0])
	assert.Equal(t, "Sample", doc.Meta["title"])
}

func TestCloneSharesProvenance(t *testing.T) {
	doc := sampleDocument()
	cp := Clone(doc)

	origProv := doc.Blocks[1].(*Para).Provenance()
	cloneProv := cp.Blocks[1].(*Para).Provenance()
	require.NotNil(t, cloneProv)
	assert.Same(t, origProv, cloneProv, "clone must share provenance pointers")
}

func TestCloneNil(t *testing.T) {
	assert.Nil(t, Clone(nil))
	assert.Nil(t, CloneBlocks(nil))
	assert.Nil(t, CloneInlines(nil))
}
