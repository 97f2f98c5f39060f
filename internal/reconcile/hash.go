package reconcile

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/restitch/restitch/internal/doctree"
)

// Hasher computes 64-bit structural hashes over document nodes.
// Provenance never contributes to a hash: two nodes with identical
// content and different provenance hash the same.
//
// Results are memoized keyed on node identity (the interface value's
// pointer), so a hasher must only ever see nodes that are not mutated
// while it is alive. Use one fresh Hasher per tree per compute pass.
type Hasher struct {
	blocks  map[doctree.Block]uint64
	inlines map[doctree.Inline]uint64
}

// NewHasher returns a hasher with empty memo tables.
func NewHasher() *Hasher {
	return &Hasher{
		blocks:  make(map[doctree.Block]uint64),
		inlines: make(map[doctree.Inline]uint64),
	}
}

// HashBlocks hashes a block sequence, including its length.
func (h *Hasher) HashBlocks(blocks []doctree.Block) uint64 {
	d := xxhash.New()
	writeLen(d, len(blocks))
	for _, b := range blocks {
		writeU64(d, h.HashBlock(b))
	}
	return d.Sum64()
}

// HashInlines hashes an inline sequence, including its length.
func (h *Hasher) HashInlines(inlines []doctree.Inline) uint64 {
	d := xxhash.New()
	writeLen(d, len(inlines))
	for _, n := range inlines {
		writeU64(d, h.HashInline(n))
	}
	return d.Sum64()
}

// HashItems hashes a list item (a block group).
func (h *Hasher) HashItems(item []doctree.Block) uint64 {
	return h.HashBlocks(item)
}

// HashBlock hashes one block node, memoized.
func (h *Hasher) HashBlock(b doctree.Block) uint64 {
	if sum, ok := h.blocks[b]; ok {
		return sum
	}

	d := xxhash.New()
	writeString(d, b.Kind())
	switch v := b.(type) {
	case *doctree.Para:
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Plain:
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Header:
		writeLen(d, v.Level)
		writeAttr(d, v.Attr)
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.CodeBlock:
		writeAttr(d, v.Attr)
		writeString(d, v.Text)
	case *doctree.RawBlock:
		writeString(d, v.Format)
		writeString(d, v.Text)
	case *doctree.BlockQuote:
		writeU64(d, h.HashBlocks(v.Content))
	case *doctree.Div:
		writeAttr(d, v.Attr)
		writeU64(d, h.HashBlocks(v.Content))
	case *doctree.BulletList:
		writeLen(d, len(v.Items))
		for _, item := range v.Items {
			writeU64(d, h.HashBlocks(item))
		}
	case *doctree.OrderedList:
		writeLen(d, v.Start)
		writeString(d, v.Style)
		writeString(d, v.Delim)
		writeLen(d, len(v.Items))
		for _, item := range v.Items {
			writeU64(d, h.HashBlocks(item))
		}
	case *doctree.HorizontalRule:
		// kind tag only
	}
	sum := d.Sum64()
	h.blocks[b] = sum
	return sum
}

// HashInline hashes one inline node, memoized.
func (h *Hasher) HashInline(n doctree.Inline) uint64 {
	if sum, ok := h.inlines[n]; ok {
		return sum
	}

	d := xxhash.New()
	writeString(d, n.Kind())
	switch v := n.(type) {
	case *doctree.Str:
		writeString(d, v.Text)
	case *doctree.Space, *doctree.SoftBreak, *doctree.LineBreak:
		// kind tag only
	case *doctree.Code:
		writeAttr(d, v.Attr)
		writeString(d, v.Text)
	case *doctree.Math:
		writeString(d, v.Mode)
		writeString(d, v.Text)
	case *doctree.RawInline:
		writeString(d, v.Format)
		writeString(d, v.Text)
	case *doctree.Emph:
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Strong:
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Strikeout:
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Quoted:
		writeString(d, v.Style)
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Span:
		writeAttr(d, v.Attr)
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Link:
		writeAttr(d, v.Attr)
		writeString(d, v.Target.URL)
		writeString(d, v.Target.Title)
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Image:
		writeAttr(d, v.Attr)
		writeString(d, v.Target.URL)
		writeString(d, v.Target.Title)
		writeU64(d, h.HashInlines(v.Content))
	case *doctree.Note:
		writeU64(d, h.HashBlocks(v.Content))
	}
	sum := d.Sum64()
	h.inlines[n] = sum
	return sum
}

// Length-prefixed writes keep field boundaries unambiguous, so e.g.
// ("ab","c") and ("a","bc") never hash alike.

func writeString(d *xxhash.Digest, s string) {
	writeLen(d, len(s))
	_, _ = d.WriteString(s)
}

func writeU64(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}

func writeLen(d *xxhash.Digest, n int) {
	writeU64(d, uint64(int64(n)))
}

func writeAttr(d *xxhash.Digest, a doctree.Attr) {
	writeString(d, a.ID)
	writeLen(d, len(a.Classes))
	for _, c := range a.Classes {
		writeString(d, c)
	}
	writeLen(d, len(a.KVs))
	for _, kv := range a.KVs {
		writeString(d, kv.Key)
		writeString(d, kv.Value)
	}
}
