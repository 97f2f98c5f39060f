package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/internal/provenance"
)

func TestDocumentRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := MarshalDocument(doc)
	require.NoError(t, err)

	got, err := UnmarshalDocument(data)
	require.NoError(t, err)

	require.Len(t, got.Blocks, len(doc.Blocks))
	assert.Equal(t, "Sample", got.Meta["title"])

	h, ok := got.Blocks[0].(*Header)
	require.True(t, ok)
	assert.Equal(t, 1, h.Level)
	assert.Equal(t, "intro", h.Attr.ID)

	p, ok := got.Blocks[1].(*Para)
	require.True(t, ok)
	require.Len(t, p.Content, 4)
	assert.Equal(t, "hello", p.Content[0].(*Str).Text)

	note, ok := p.Content[3].(*Note)
	require.True(t, ok)
	require.Len(t, note.Content, 1)

	cb, ok := got.Blocks[3].(*CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "print(1)\n", cb.Text)
	require.Len(t, cb.Attr.KVs, 1)
	assert.Equal(t, KV{Key: "echo", Value: "true"}, cb.Attr.KVs[0])
}

func TestRoundTripPreservesProvenance(t *testing.T) {
	src := &provenance.Derived{
		Parent: provenance.NewDirect("doc.qmd", 40, 90),
		Start:  2,
		End:    12,
	}
	doc := &Document{Blocks: []Block{
		&Para{Content: []Inline{&Str{Text: "x", Source: src}}, Source: src},
	}}

	data, err := MarshalDocument(doc)
	require.NoError(t, err)
	got, err := UnmarshalDocument(data)
	require.NoError(t, err)

	assert.True(t, provenance.Equal(src, got.Blocks[0].Provenance()))
	assert.True(t, provenance.Equal(src, got.Blocks[0].(*Para).Content[0].Provenance()))
}

func TestRoundTripNilProvenance(t *testing.T) {
	doc := &Document{Blocks: []Block{&HorizontalRule{}}}

	data, err := MarshalDocument(doc)
	require.NoError(t, err)
	got, err := UnmarshalDocument(data)
	require.NoError(t, err)

	require.Len(t, got.Blocks, 1)
	assert.Nil(t, got.Blocks[0].Provenance())
}

func TestUnmarshalUnknownKind(t *testing.T) {
	_, err := UnmarshalBlock([]byte(`{"t":"Sidebar"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sidebar")

	_, err = UnmarshalInline([]byte(`{"t":"Citation"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Citation")
}

func TestUnmarshalNestedContainers(t *testing.T) {
	data := []byte(`{
	  "blocks": [
	    {"t": "Div", "attr": {"classes": ["callout"]}, "content": [
	      {"t": "BlockQuote", "content": [
	        {"t": "Para", "content": [{"t": "Str", "text": "deep"}]}
	      ]}
	    ]},
	    {"t": "OrderedList", "start": 3, "style": "decimal", "delim": "period", "items": [
	      [{"t": "Plain", "content": [{"t": "Str", "text": "a"}]}]
	    ]}
	  ]
	}`)

	doc, err := UnmarshalDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)

	div := doc.Blocks[0].(*Div)
	bq := div.Content[0].(*BlockQuote)
	para := bq.Content[0].(*Para)
	assert.Equal(t, "deep", para.Content[0].(*Str).Text)

	ol := doc.Blocks[1].(*OrderedList)
	assert.Equal(t, 3, ol.Start)
	require.Len(t, ol.Items, 1)
}
