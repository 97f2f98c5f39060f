package doctree

import "github.com/restitch/restitch/internal/provenance"

// Inline is the sealed interface for intra-paragraph nodes.
type Inline interface {
	// inlineMarker is a private method to restrict implementers.
	inlineMarker()
	// Kind returns the wire tag for the node type, e.g. "Str".
	Kind() string
	// Provenance returns the node's source attribution.
	Provenance() provenance.Provenance
}

// Wire tags for inline kinds.
const (
	KindStr       = "Str"
	KindSpace     = "Space"
	KindSoftBreak = "SoftBreak"
	KindLineBreak = "LineBreak"
	KindCode      = "Code"
	KindMath      = "Math"
	KindRawInline = "RawInline"
	KindEmph      = "Emph"
	KindStrong    = "Strong"
	KindStrikeout = "Strikeout"
	KindQuoted    = "Quoted"
	KindSpan      = "Span"
	KindLink      = "Link"
	KindImage     = "Image"
	KindNote      = "Note"
)

// Math display modes.
const (
	MathInline  = "InlineMath"
	MathDisplay = "DisplayMath"
)

// Quote styles.
const (
	QuoteSingle = "SingleQuote"
	QuoteDouble = "DoubleQuote"
)

// Str is a literal text run.
type Str struct {
	Text   string
	Source provenance.Provenance
}

// Space is an inter-word space.
type Space struct {
	Source provenance.Provenance
}

// SoftBreak is a source line break rendered as a space.
type SoftBreak struct {
	Source provenance.Provenance
}

// LineBreak is a hard line break.
type LineBreak struct {
	Source provenance.Provenance
}

// Code is inline verbatim text.
type Code struct {
	Attr   Attr
	Text   string
	Source provenance.Provenance
}

// Math is TeX math. Mode is MathInline or MathDisplay.
type Math struct {
	Mode   string
	Text   string
	Source provenance.Provenance
}

// RawInline is verbatim inline content for a specific output format.
type RawInline struct {
	Format string
	Text   string
	Source provenance.Provenance
}

// Emph is emphasized content.
type Emph struct {
	Content []Inline
	Source  provenance.Provenance
}

// Strong is strongly emphasized content.
type Strong struct {
	Content []Inline
	Source  provenance.Provenance
}

// Strikeout is struck-out content.
type Strikeout struct {
	Content []Inline
	Source  provenance.Provenance
}

// Quoted is quoted content. Style is QuoteSingle or QuoteDouble.
type Quoted struct {
	Style   string
	Content []Inline
	Source  provenance.Provenance
}

// Span is an attributed inline container.
type Span struct {
	Attr    Attr
	Content []Inline
	Source  provenance.Provenance
}

// Link is a hyperlink with inline label content.
type Link struct {
	Attr    Attr
	Content []Inline
	Target  Target
	Source  provenance.Provenance
}

// Image is an image with inline alt content.
type Image struct {
	Attr    Attr
	Content []Inline
	Target  Target
	Source  provenance.Provenance
}

// Note is a footnote. Its body is a block sequence, the one place
// blocks nest inside an inline.
type Note struct {
	Content []Block
	Source  provenance.Provenance
}

func (*Str) inlineMarker()       {}
func (*Space) inlineMarker()     {}
func (*SoftBreak) inlineMarker() {}
func (*LineBreak) inlineMarker() {}
func (*Code) inlineMarker()      {}
func (*Math) inlineMarker()      {}
func (*RawInline) inlineMarker() {}
func (*Emph) inlineMarker()      {}
func (*Strong) inlineMarker()    {}
func (*Strikeout) inlineMarker() {}
func (*Quoted) inlineMarker()    {}
func (*Span) inlineMarker()      {}
func (*Link) inlineMarker()      {}
func (*Image) inlineMarker()     {}
func (*Note) inlineMarker()      {}

func (*Str) Kind() string       { return KindStr }
func (*Space) Kind() string     { return KindSpace }
func (*SoftBreak) Kind() string { return KindSoftBreak }
func (*LineBreak) Kind() string { return KindLineBreak }
func (*Code) Kind() string      { return KindCode }
func (*Math) Kind() string      { return KindMath }
func (*RawInline) Kind() string { return KindRawInline }
func (*Emph) Kind() string      { return KindEmph }
func (*Strong) Kind() string    { return KindStrong }
func (*Strikeout) Kind() string { return KindStrikeout }
func (*Quoted) Kind() string    { return KindQuoted }
func (*Span) Kind() string      { return KindSpan }
func (*Link) Kind() string      { return KindLink }
func (*Image) Kind() string     { return KindImage }
func (*Note) Kind() string      { return KindNote }

func (n *Str) Provenance() provenance.Provenance       { return n.Source }
func (n *Space) Provenance() provenance.Provenance     { return n.Source }
func (n *SoftBreak) Provenance() provenance.Provenance { return n.Source }
func (n *LineBreak) Provenance() provenance.Provenance { return n.Source }
func (n *Code) Provenance() provenance.Provenance      { return n.Source }
func (n *Math) Provenance() provenance.Provenance      { return n.Source }
func (n *RawInline) Provenance() provenance.Provenance { return n.Source }
func (n *Emph) Provenance() provenance.Provenance      { return n.Source }
func (n *Strong) Provenance() provenance.Provenance    { return n.Source }
func (n *Strikeout) Provenance() provenance.Provenance { return n.Source }
func (n *Quoted) Provenance() provenance.Provenance    { return n.Source }
func (n *Span) Provenance() provenance.Provenance      { return n.Source }
func (n *Link) Provenance() provenance.Provenance      { return n.Source }
func (n *Image) Provenance() provenance.Provenance     { return n.Source }
func (n *Note) Provenance() provenance.Provenance      { return n.Source }
