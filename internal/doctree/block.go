package doctree

import "github.com/restitch/restitch/internal/provenance"

// Block is the sealed interface for paragraph-level nodes.
type Block interface {
	// blockMarker is a private method to restrict implementers.
	blockMarker()
	// Kind returns the wire tag for the node type, e.g. "Para".
	Kind() string
	// Provenance returns the node's source attribution.
	Provenance() provenance.Provenance
}

// Wire tags for block kinds.
const (
	KindPara           = "Para"
	KindPlain          = "Plain"
	KindHeader         = "Header"
	KindCodeBlock      = "CodeBlock"
	KindRawBlock       = "RawBlock"
	KindBlockQuote     = "BlockQuote"
	KindDiv            = "Div"
	KindBulletList     = "BulletList"
	KindOrderedList    = "OrderedList"
	KindHorizontalRule = "HorizontalRule"
)

// Para is a paragraph of inline content.
type Para struct {
	Content []Inline
	Source  provenance.Provenance
}

// Plain is inline content without paragraph semantics, e.g. a bare
// list item body.
type Plain struct {
	Content []Inline
	Source  provenance.Provenance
}

// Header is a section heading.
type Header struct {
	Level   int
	Attr    Attr
	Content []Inline
	Source  provenance.Provenance
}

// CodeBlock is a fenced or indented code block. Text is the literal
// body, byte for byte.
type CodeBlock struct {
	Attr   Attr
	Text   string
	Source provenance.Provenance
}

// RawBlock is verbatim content for a specific output format.
type RawBlock struct {
	Format string
	Text   string
	Source provenance.Provenance
}

// BlockQuote is a quoted sequence of blocks.
type BlockQuote struct {
	Content []Block
	Source  provenance.Provenance
}

// Div is an attributed container of blocks.
type Div struct {
	Attr    Attr
	Content []Block
	Source  provenance.Provenance
}

// BulletList is an unordered list. Each item is a block sequence.
type BulletList struct {
	Items  [][]Block
	Source provenance.Provenance
}

// OrderedList is a numbered list.
type OrderedList struct {
	Start  int
	Style  string // "decimal", "lower-alpha", ...
	Delim  string // "period", "paren", ...
	Items  [][]Block
	Source provenance.Provenance
}

// HorizontalRule is a thematic break.
type HorizontalRule struct {
	Source provenance.Provenance
}

func (*Para) blockMarker()           {}
func (*Plain) blockMarker()          {}
func (*Header) blockMarker()         {}
func (*CodeBlock) blockMarker()      {}
func (*RawBlock) blockMarker()       {}
func (*BlockQuote) blockMarker()     {}
func (*Div) blockMarker()            {}
func (*BulletList) blockMarker()     {}
func (*OrderedList) blockMarker()    {}
func (*HorizontalRule) blockMarker() {}

func (*Para) Kind() string           { return KindPara }
func (*Plain) Kind() string          { return KindPlain }
func (*Header) Kind() string         { return KindHeader }
func (*CodeBlock) Kind() string      { return KindCodeBlock }
func (*RawBlock) Kind() string       { return KindRawBlock }
func (*BlockQuote) Kind() string     { return KindBlockQuote }
func (*Div) Kind() string            { return KindDiv }
func (*BulletList) Kind() string     { return KindBulletList }
func (*OrderedList) Kind() string    { return KindOrderedList }
func (*HorizontalRule) Kind() string { return KindHorizontalRule }

func (b *Para) Provenance() provenance.Provenance           { return b.Source }
func (b *Plain) Provenance() provenance.Provenance          { return b.Source }
func (b *Header) Provenance() provenance.Provenance         { return b.Source }
func (b *CodeBlock) Provenance() provenance.Provenance      { return b.Source }
func (b *RawBlock) Provenance() provenance.Provenance       { return b.Source }
func (b *BlockQuote) Provenance() provenance.Provenance     { return b.Source }
func (b *Div) Provenance() provenance.Provenance            { return b.Source }
func (b *BulletList) Provenance() provenance.Provenance     { return b.Source }
func (b *OrderedList) Provenance() provenance.Provenance    { return b.Source }
func (b *HorizontalRule) Provenance() provenance.Provenance { return b.Source }
