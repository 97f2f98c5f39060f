package testutil

import (
	"fmt"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/provenance"
)

// Tree builders for tests. Each node gets a distinct Direct
// provenance from a SpanSource, so provenance identity assertions
// can tell any two nodes apart.

// SpanSource hands out non-overlapping source spans for one fake
// source file. Not safe for concurrent use; tests are sequential.
type SpanSource struct {
	sourceID string
	next     int
}

// NewSpanSource creates a span source for the given source id.
func NewSpanSource(sourceID string) *SpanSource {
	return &SpanSource{sourceID: sourceID}
}

// Next returns a fresh provenance span of the given width.
func (s *SpanSource) Next(width int) *provenance.Direct {
	p := provenance.NewDirect(s.sourceID, s.next, s.next+width)
	s.next += width
	return p
}

// Words builds the inline sequence for a space-separated phrase:
// Str/Space/Str/... with one span per token.
func (s *SpanSource) Words(phrase string) []doctree.Inline {
	var out []doctree.Inline
	word := ""
	flush := func() {
		if word != "" {
			out = append(out, &doctree.Str{Text: word, Source: s.Next(len(word))})
			word = ""
		}
	}
	for _, r := range phrase {
		if r == ' ' {
			flush()
			out = append(out, &doctree.Space{Source: s.Next(1)})
			continue
		}
		word += string(r)
	}
	flush()
	return out
}

// Para builds a paragraph from a phrase.
func (s *SpanSource) Para(phrase string) *doctree.Para {
	return &doctree.Para{Content: s.Words(phrase), Source: s.Next(len(phrase) + 2)}
}

// Plain builds a Plain block from a phrase.
func (s *SpanSource) Plain(phrase string) *doctree.Plain {
	return &doctree.Plain{Content: s.Words(phrase), Source: s.Next(len(phrase) + 1)}
}

// Header builds a header from a phrase.
func (s *SpanSource) Header(level int, phrase string) *doctree.Header {
	return &doctree.Header{Level: level, Content: s.Words(phrase), Source: s.Next(len(phrase) + level + 1)}
}

// CodeBlock builds a code block with the given class and body.
func (s *SpanSource) CodeBlock(class, text string) *doctree.CodeBlock {
	return &doctree.CodeBlock{
		Attr:   doctree.Attr{Classes: []string{class}},
		Text:   text,
		Source: s.Next(len(text) + 8),
	}
}

// Div wraps blocks in a Div with the given class.
func (s *SpanSource) Div(class string, blocks ...doctree.Block) *doctree.Div {
	return &doctree.Div{
		Attr:    doctree.Attr{Classes: []string{class}},
		Content: blocks,
		Source:  s.Next(8),
	}
}

// BlockQuote wraps blocks in a quote.
func (s *SpanSource) BlockQuote(blocks ...doctree.Block) *doctree.BlockQuote {
	return &doctree.BlockQuote{Content: blocks, Source: s.Next(4)}
}

// Bullets builds a bullet list, one phrase per item.
func (s *SpanSource) Bullets(phrases ...string) *doctree.BulletList {
	items := make([][]doctree.Block, len(phrases))
	for i, phrase := range phrases {
		items[i] = []doctree.Block{s.Plain(phrase)}
	}
	return &doctree.BulletList{Items: items, Source: s.Next(4)}
}

// Emph wraps a phrase in emphasis.
func (s *SpanSource) Emph(phrase string) *doctree.Emph {
	return &doctree.Emph{Content: s.Words(phrase), Source: s.Next(len(phrase) + 2)}
}

// Note builds a footnote whose body is a single paragraph.
func (s *SpanSource) Note(phrase string) *doctree.Note {
	return &doctree.Note{
		Content: []doctree.Block{s.Para(phrase)},
		Source:  s.Next(len(phrase) + 4),
	}
}

// Doc wraps blocks into a document without metadata.
func Doc(blocks ...doctree.Block) *doctree.Document {
	return &doctree.Document{Blocks: blocks}
}

// DocWithMeta wraps blocks into a document with metadata.
func DocWithMeta(meta doctree.Meta, blocks ...doctree.Block) *doctree.Document {
	return &doctree.Document{Meta: meta, Blocks: blocks}
}

// StageProv returns a Stage provenance, for transformed-side nodes
// synthesized by a filter.
func StageProv(stage string) *provenance.Stage {
	return provenance.NewStage(stage, 0)
}

// SourceLabel formats a provenance for failure messages.
func SourceLabel(p provenance.Provenance) string {
	switch v := p.(type) {
	case *provenance.Direct:
		return fmt.Sprintf("%s[%d:%d]", v.SourceID, v.Start, v.End)
	case *provenance.Stage:
		return fmt.Sprintf("stage(%s)", v.Name)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", p)
	}
}
