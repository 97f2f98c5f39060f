package doctree

import "fmt"

// Clone returns a deep copy of the document. Node structs are copied;
// provenance values are shared between the copy and the original.
func Clone(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	return &Document{
		Meta:   CloneMeta(doc.Meta),
		Blocks: CloneBlocks(doc.Blocks),
	}
}

// CloneBlocks deep-copies a block sequence.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = CloneBlock(b)
	}
	return out
}

// CloneBlock deep-copies a single block.
func CloneBlock(b Block) Block {
	switch v := b.(type) {
	case *Para:
		return &Para{Content: CloneInlines(v.Content), Source: v.Source}
	case *Plain:
		return &Plain{Content: CloneInlines(v.Content), Source: v.Source}
	case *Header:
		return &Header{Level: v.Level, Attr: v.Attr.Clone(), Content: CloneInlines(v.Content), Source: v.Source}
	case *CodeBlock:
		return &CodeBlock{Attr: v.Attr.Clone(), Text: v.Text, Source: v.Source}
	case *RawBlock:
		return &RawBlock{Format: v.Format, Text: v.Text, Source: v.Source}
	case *BlockQuote:
		return &BlockQuote{Content: CloneBlocks(v.Content), Source: v.Source}
	case *Div:
		return &Div{Attr: v.Attr.Clone(), Content: CloneBlocks(v.Content), Source: v.Source}
	case *BulletList:
		return &BulletList{Items: cloneItems(v.Items), Source: v.Source}
	case *OrderedList:
		return &OrderedList{Start: v.Start, Style: v.Style, Delim: v.Delim, Items: cloneItems(v.Items), Source: v.Source}
	case *HorizontalRule:
		return &HorizontalRule{Source: v.Source}
	default:
		panic(fmt.Sprintf("doctree: unknown block type %T", b))
	}
}

// CloneInlines deep-copies an inline sequence.
func CloneInlines(inlines []Inline) []Inline {
	if inlines == nil {
		return nil
	}
	out := make([]Inline, len(inlines))
	for i, n := range inlines {
		out[i] = CloneInline(n)
	}
	return out
}

// CloneInline deep-copies a single inline.
func CloneInline(n Inline) Inline {
	switch v := n.(type) {
	case *Str:
		return &Str{Text: v.Text, Source: v.Source}
	case *Space:
		return &Space{Source: v.Source}
	case *SoftBreak:
		return &SoftBreak{Source: v.Source}
	case *LineBreak:
		return &LineBreak{Source: v.Source}
	case *Code:
		return &Code{Attr: v.Attr.Clone(), Text: v.Text, Source: v.Source}
	case *Math:
		return &Math{Mode: v.Mode, Text: v.Text, Source: v.Source}
	case *RawInline:
		return &RawInline{Format: v.Format, Text: v.Text, Source: v.Source}
	case *Emph:
		return &Emph{Content: CloneInlines(v.Content), Source: v.Source}
	case *Strong:
		return &Strong{Content: CloneInlines(v.Content), Source: v.Source}
	case *Strikeout:
		return &Strikeout{Content: CloneInlines(v.Content), Source: v.Source}
	case *Quoted:
		return &Quoted{Style: v.Style, Content: CloneInlines(v.Content), Source: v.Source}
	case *Span:
		return &Span{Attr: v.Attr.Clone(), Content: CloneInlines(v.Content), Source: v.Source}
	case *Link:
		return &Link{Attr: v.Attr.Clone(), Content: CloneInlines(v.Content), Target: v.Target, Source: v.Source}
	case *Image:
		return &Image{Attr: v.Attr.Clone(), Content: CloneInlines(v.Content), Target: v.Target, Source: v.Source}
	case *Note:
		return &Note{Content: CloneBlocks(v.Content), Source: v.Source}
	default:
		panic(fmt.Sprintf("doctree: unknown inline type %T", n))
	}
}

func cloneItems(items [][]Block) [][]Block {
	if items == nil {
		return nil
	}
	out := make([][]Block, len(items))
	for i, item := range items {
		out[i] = CloneBlocks(item)
	}
	return out
}
