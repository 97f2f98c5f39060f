package reconcile

import "github.com/restitch/restitch/internal/doctree"

// Structural equality mirrors the hasher field for field: content
// only, provenance ignored. Every hash match is confirmed through
// these before a node is kept, so collisions are harmless.

// EqualBlocks reports content equality of two block sequences.
func EqualBlocks(a, b []doctree.Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualBlock(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualInlines reports content equality of two inline sequences.
func EqualInlines(a, b []doctree.Inline) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualInline(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalItems(a, b [][]doctree.Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualBlocks(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalAttr(a, b doctree.Attr) bool {
	if a.ID != b.ID || len(a.Classes) != len(b.Classes) || len(a.KVs) != len(b.KVs) {
		return false
	}
	for i := range a.Classes {
		if a.Classes[i] != b.Classes[i] {
			return false
		}
	}
	for i := range a.KVs {
		if a.KVs[i] != b.KVs[i] {
			return false
		}
	}
	return true
}

// EqualBlock reports content equality of two blocks.
func EqualBlock(a, b doctree.Block) bool {
	switch av := a.(type) {
	case *doctree.Para:
		bv, ok := b.(*doctree.Para)
		return ok && EqualInlines(av.Content, bv.Content)
	case *doctree.Plain:
		bv, ok := b.(*doctree.Plain)
		return ok && EqualInlines(av.Content, bv.Content)
	case *doctree.Header:
		bv, ok := b.(*doctree.Header)
		return ok && av.Level == bv.Level && equalAttr(av.Attr, bv.Attr) && EqualInlines(av.Content, bv.Content)
	case *doctree.CodeBlock:
		bv, ok := b.(*doctree.CodeBlock)
		return ok && equalAttr(av.Attr, bv.Attr) && av.Text == bv.Text
	case *doctree.RawBlock:
		bv, ok := b.(*doctree.RawBlock)
		return ok && av.Format == bv.Format && av.Text == bv.Text
	case *doctree.BlockQuote:
		bv, ok := b.(*doctree.BlockQuote)
		return ok && EqualBlocks(av.Content, bv.Content)
	case *doctree.Div:
		bv, ok := b.(*doctree.Div)
		return ok && equalAttr(av.Attr, bv.Attr) && EqualBlocks(av.Content, bv.Content)
	case *doctree.BulletList:
		bv, ok := b.(*doctree.BulletList)
		return ok && equalItems(av.Items, bv.Items)
	case *doctree.OrderedList:
		bv, ok := b.(*doctree.OrderedList)
		return ok && av.Start == bv.Start && av.Style == bv.Style && av.Delim == bv.Delim && equalItems(av.Items, bv.Items)
	case *doctree.HorizontalRule:
		_, ok := b.(*doctree.HorizontalRule)
		return ok
	default:
		return false
	}
}

// EqualInline reports content equality of two inlines.
func EqualInline(a, b doctree.Inline) bool {
	switch av := a.(type) {
	case *doctree.Str:
		bv, ok := b.(*doctree.Str)
		return ok && av.Text == bv.Text
	case *doctree.Space:
		_, ok := b.(*doctree.Space)
		return ok
	case *doctree.SoftBreak:
		_, ok := b.(*doctree.SoftBreak)
		return ok
	case *doctree.LineBreak:
		_, ok := b.(*doctree.LineBreak)
		return ok
	case *doctree.Code:
		bv, ok := b.(*doctree.Code)
		return ok && equalAttr(av.Attr, bv.Attr) && av.Text == bv.Text
	case *doctree.Math:
		bv, ok := b.(*doctree.Math)
		return ok && av.Mode == bv.Mode && av.Text == bv.Text
	case *doctree.RawInline:
		bv, ok := b.(*doctree.RawInline)
		return ok && av.Format == bv.Format && av.Text == bv.Text
	case *doctree.Emph:
		bv, ok := b.(*doctree.Emph)
		return ok && EqualInlines(av.Content, bv.Content)
	case *doctree.Strong:
		bv, ok := b.(*doctree.Strong)
		return ok && EqualInlines(av.Content, bv.Content)
	case *doctree.Strikeout:
		bv, ok := b.(*doctree.Strikeout)
		return ok && EqualInlines(av.Content, bv.Content)
	case *doctree.Quoted:
		bv, ok := b.(*doctree.Quoted)
		return ok && av.Style == bv.Style && EqualInlines(av.Content, bv.Content)
	case *doctree.Span:
		bv, ok := b.(*doctree.Span)
		return ok && equalAttr(av.Attr, bv.Attr) && EqualInlines(av.Content, bv.Content)
	case *doctree.Link:
		bv, ok := b.(*doctree.Link)
		return ok && equalAttr(av.Attr, bv.Attr) && av.Target == bv.Target && EqualInlines(av.Content, bv.Content)
	case *doctree.Image:
		bv, ok := b.(*doctree.Image)
		return ok && equalAttr(av.Attr, bv.Attr) && av.Target == bv.Target && EqualInlines(av.Content, bv.Content)
	case *doctree.Note:
		bv, ok := b.(*doctree.Note)
		return ok && EqualBlocks(av.Content, bv.Content)
	default:
		return false
	}
}
