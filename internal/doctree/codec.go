package doctree

import (
	"encoding/json"
	"fmt"

	"github.com/restitch/restitch/internal/provenance"
)

// The interchange format is a tagged JSON encoding: every node is an
// object with a "t" discriminator (the node's Kind), its payload
// fields, and a "prov" field holding tagged provenance JSON.

type documentJSON struct {
	Meta   Meta              `json:"meta,omitempty"`
	Blocks []json.RawMessage `json:"blocks"`
}

type attrJSON struct {
	ID      string     `json:"id,omitempty"`
	Classes []string   `json:"classes,omitempty"`
	KVs     [][2]string `json:"kvs,omitempty"`
}

type targetJSON struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// nodeJSON is the union wire shape shared by blocks and inlines.
// Fields not used by a kind are omitted.
type nodeJSON struct {
	T       string              `json:"t"`
	Level   int                 `json:"level,omitempty"`
	Start   int                 `json:"start,omitempty"`
	Style   string              `json:"style,omitempty"`
	Delim   string              `json:"delim,omitempty"`
	Mode    string              `json:"mode,omitempty"`
	Format  string              `json:"format,omitempty"`
	Text    string              `json:"text,omitempty"`
	Attr    *attrJSON           `json:"attr,omitempty"`
	Target  *targetJSON         `json:"target,omitempty"`
	Content []json.RawMessage   `json:"content,omitempty"`
	Items   [][]json.RawMessage `json:"items,omitempty"`
	Prov    json.RawMessage     `json:"prov,omitempty"`
}

// MarshalDocument encodes a document in the interchange format.
func MarshalDocument(doc *Document) ([]byte, error) {
	blocks, err := marshalBlocks(doc.Blocks)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(documentJSON{Meta: doc.Meta, Blocks: blocks}, "", "  ")
}

// UnmarshalDocument decodes a document from the interchange format.
func UnmarshalDocument(data []byte) (*Document, error) {
	var dj documentJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	blocks, err := unmarshalBlocks(dj.Blocks)
	if err != nil {
		return nil, err
	}
	return &Document{Meta: dj.Meta, Blocks: blocks}, nil
}

func marshalAttr(a Attr) *attrJSON {
	if a.IsEmpty() {
		return nil
	}
	out := &attrJSON{ID: a.ID, Classes: a.Classes}
	for _, kv := range a.KVs {
		out.KVs = append(out.KVs, [2]string{kv.Key, kv.Value})
	}
	return out
}

func unmarshalAttr(a *attrJSON) Attr {
	if a == nil {
		return Attr{}
	}
	out := Attr{ID: a.ID, Classes: a.Classes}
	for _, kv := range a.KVs {
		out.KVs = append(out.KVs, KV{Key: kv[0], Value: kv[1]})
	}
	return out
}

func marshalProv(p provenance.Provenance) (json.RawMessage, error) {
	if p == nil {
		return nil, nil
	}
	return provenance.Marshal(p)
}

func marshalBlocks(blocks []Block) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(blocks))
	for i, b := range blocks {
		data, err := MarshalBlock(b)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

func marshalInlines(inlines []Inline) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(inlines))
	for i, n := range inlines {
		data, err := MarshalInline(n)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// MarshalBlock encodes a single block node.
func MarshalBlock(b Block) ([]byte, error) {
	prov, err := marshalProv(b.Provenance())
	if err != nil {
		return nil, err
	}
	nj := nodeJSON{T: b.Kind(), Prov: prov}

	switch v := b.(type) {
	case *Para:
		nj.Content, err = marshalInlines(v.Content)
	case *Plain:
		nj.Content, err = marshalInlines(v.Content)
	case *Header:
		nj.Level = v.Level
		nj.Attr = marshalAttr(v.Attr)
		nj.Content, err = marshalInlines(v.Content)
	case *CodeBlock:
		nj.Attr = marshalAttr(v.Attr)
		nj.Text = v.Text
	case *RawBlock:
		nj.Format = v.Format
		nj.Text = v.Text
	case *BlockQuote:
		nj.Content, err = marshalBlocks(v.Content)
	case *Div:
		nj.Attr = marshalAttr(v.Attr)
		nj.Content, err = marshalBlocks(v.Content)
	case *BulletList:
		nj.Items, err = marshalItems(v.Items)
	case *OrderedList:
		nj.Start = v.Start
		nj.Style = v.Style
		nj.Delim = v.Delim
		nj.Items, err = marshalItems(v.Items)
	case *HorizontalRule:
		// tag and provenance only
	default:
		return nil, fmt.Errorf("unknown block type %T", b)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(nj)
}

// MarshalInline encodes a single inline node.
func MarshalInline(n Inline) ([]byte, error) {
	prov, err := marshalProv(n.Provenance())
	if err != nil {
		return nil, err
	}
	nj := nodeJSON{T: n.Kind(), Prov: prov}

	switch v := n.(type) {
	case *Str:
		nj.Text = v.Text
	case *Space, *SoftBreak, *LineBreak:
		// tag and provenance only
	case *Code:
		nj.Attr = marshalAttr(v.Attr)
		nj.Text = v.Text
	case *Math:
		nj.Mode = v.Mode
		nj.Text = v.Text
	case *RawInline:
		nj.Format = v.Format
		nj.Text = v.Text
	case *Emph:
		nj.Content, err = marshalInlines(v.Content)
	case *Strong:
		nj.Content, err = marshalInlines(v.Content)
	case *Strikeout:
		nj.Content, err = marshalInlines(v.Content)
	case *Quoted:
		nj.Style = v.Style
		nj.Content, err = marshalInlines(v.Content)
	case *Span:
		nj.Attr = marshalAttr(v.Attr)
		nj.Content, err = marshalInlines(v.Content)
	case *Link:
		nj.Attr = marshalAttr(v.Attr)
		nj.Target = &targetJSON{URL: v.Target.URL, Title: v.Target.Title}
		nj.Content, err = marshalInlines(v.Content)
	case *Image:
		nj.Attr = marshalAttr(v.Attr)
		nj.Target = &targetJSON{URL: v.Target.URL, Title: v.Target.Title}
		nj.Content, err = marshalInlines(v.Content)
	case *Note:
		nj.Content, err = marshalBlocks(v.Content)
	default:
		return nil, fmt.Errorf("unknown inline type %T", n)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(nj)
}

func marshalItems(items [][]Block) ([][]json.RawMessage, error) {
	out := make([][]json.RawMessage, len(items))
	for i, item := range items {
		blocks, err := marshalBlocks(item)
		if err != nil {
			return nil, err
		}
		out[i] = blocks
	}
	return out, nil
}

func unmarshalBlocks(raw []json.RawMessage) ([]Block, error) {
	out := make([]Block, len(raw))
	for i, data := range raw {
		b, err := UnmarshalBlock(data)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

func unmarshalInlines(raw []json.RawMessage) ([]Inline, error) {
	out := make([]Inline, len(raw))
	for i, data := range raw {
		n, err := UnmarshalInline(data)
		if err != nil {
			return nil, fmt.Errorf("inline %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

func unmarshalItems(raw [][]json.RawMessage) ([][]Block, error) {
	out := make([][]Block, len(raw))
	for i, item := range raw {
		blocks, err := unmarshalBlocks(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = blocks
	}
	return out, nil
}

// UnmarshalBlock decodes a single block node.
func UnmarshalBlock(data []byte) (Block, error) {
	var nj nodeJSON
	if err := json.Unmarshal(data, &nj); err != nil {
		return nil, err
	}
	prov, err := provenance.Unmarshal(provOrNull(nj.Prov))
	if err != nil {
		return nil, err
	}

	switch nj.T {
	case KindPara:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Para{Content: content, Source: prov}, nil
	case KindPlain:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Plain{Content: content, Source: prov}, nil
	case KindHeader:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Header{Level: nj.Level, Attr: unmarshalAttr(nj.Attr), Content: content, Source: prov}, nil
	case KindCodeBlock:
		return &CodeBlock{Attr: unmarshalAttr(nj.Attr), Text: nj.Text, Source: prov}, nil
	case KindRawBlock:
		return &RawBlock{Format: nj.Format, Text: nj.Text, Source: prov}, nil
	case KindBlockQuote:
		content, err := unmarshalBlocks(nj.Content)
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Content: content, Source: prov}, nil
	case KindDiv:
		content, err := unmarshalBlocks(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Div{Attr: unmarshalAttr(nj.Attr), Content: content, Source: prov}, nil
	case KindBulletList:
		items, err := unmarshalItems(nj.Items)
		if err != nil {
			return nil, err
		}
		return &BulletList{Items: items, Source: prov}, nil
	case KindOrderedList:
		items, err := unmarshalItems(nj.Items)
		if err != nil {
			return nil, err
		}
		return &OrderedList{Start: nj.Start, Style: nj.Style, Delim: nj.Delim, Items: items, Source: prov}, nil
	case KindHorizontalRule:
		return &HorizontalRule{Source: prov}, nil
	default:
		return nil, fmt.Errorf("unknown block kind %q", nj.T)
	}
}

// UnmarshalInline decodes a single inline node.
func UnmarshalInline(data []byte) (Inline, error) {
	var nj nodeJSON
	if err := json.Unmarshal(data, &nj); err != nil {
		return nil, err
	}
	prov, err := provenance.Unmarshal(provOrNull(nj.Prov))
	if err != nil {
		return nil, err
	}

	switch nj.T {
	case KindStr:
		return &Str{Text: nj.Text, Source: prov}, nil
	case KindSpace:
		return &Space{Source: prov}, nil
	case KindSoftBreak:
		return &SoftBreak{Source: prov}, nil
	case KindLineBreak:
		return &LineBreak{Source: prov}, nil
	case KindCode:
		return &Code{Attr: unmarshalAttr(nj.Attr), Text: nj.Text, Source: prov}, nil
	case KindMath:
		return &Math{Mode: nj.Mode, Text: nj.Text, Source: prov}, nil
	case KindRawInline:
		return &RawInline{Format: nj.Format, Text: nj.Text, Source: prov}, nil
	case KindEmph:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Emph{Content: content, Source: prov}, nil
	case KindStrong:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Strong{Content: content, Source: prov}, nil
	case KindStrikeout:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Strikeout{Content: content, Source: prov}, nil
	case KindQuoted:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Quoted{Style: nj.Style, Content: content, Source: prov}, nil
	case KindSpan:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Span{Attr: unmarshalAttr(nj.Attr), Content: content, Source: prov}, nil
	case KindLink:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Link{Attr: unmarshalAttr(nj.Attr), Content: content, Target: unmarshalTarget(nj.Target), Source: prov}, nil
	case KindImage:
		content, err := unmarshalInlines(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Image{Attr: unmarshalAttr(nj.Attr), Content: content, Target: unmarshalTarget(nj.Target), Source: prov}, nil
	case KindNote:
		content, err := unmarshalBlocks(nj.Content)
		if err != nil {
			return nil, err
		}
		return &Note{Content: content, Source: prov}, nil
	default:
		return nil, fmt.Errorf("unknown inline kind %q", nj.T)
	}
}

func unmarshalTarget(t *targetJSON) Target {
	if t == nil {
		return Target{}
	}
	return Target{URL: t.URL, Title: t.Title}
}

func provOrNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
