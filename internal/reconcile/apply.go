package reconcile

import (
	"fmt"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/metadata"
)

// Apply executes a plan, moving nodes out of both input trees into
// the merged result. The inputs are consumed: their child slices are
// left holding nil slots and must not be used afterwards. Callers
// that need either tree again clone it first.
//
// Apply panics if the plan addresses an input slot twice. A plan
// produced by Compute for the same pair of trees never does.
func Apply(original, transformed *doctree.Document, plan *Plan) *doctree.Document {
	// Metadata is all or nothing: any change hands the whole map to
	// the transformed side.
	meta := original.Meta
	if metadata.Changed(original.Meta, transformed.Meta) {
		meta = transformed.Meta
	}
	return &doctree.Document{
		Meta:   meta,
		Blocks: applyBlocks(original.Blocks, transformed.Blocks, plan),
	}
}

func applyBlocks(orig, xform []doctree.Block, plan *Plan) []doctree.Block {
	result := make([]doctree.Block, 0, len(plan.Alignments))

	for j, a := range plan.Alignments {
		switch a.Op {
		case OpKeepOriginal:
			result = append(result, takeBlock(orig, a.Original, "original"))
		case OpUseTransformed:
			result = append(result, takeBlock(xform, a.Transformed, "transformed"))
		case OpRecurse:
			ob := takeBlock(orig, a.Original, "original")
			tb := takeBlock(xform, a.Transformed, "transformed")
			result = append(result, applyBlockRecursion(ob, tb, plan, j))
		default:
			panic(fmt.Sprintf("reconcile: unknown alignment op %q", a.Op))
		}
	}

	return result
}

// applyBlockRecursion merges a same-kind container pair: the original
// shell survives (with its provenance) and only the child list is
// rebuilt from the nested plan.
func applyBlockRecursion(ob, tb doctree.Block, plan *Plan, j int) doctree.Block {
	if nested, ok := plan.Containers[j]; ok {
		switch ov := ob.(type) {
		case *doctree.BlockQuote:
			ov.Content = applyBlocks(ov.Content, tb.(*doctree.BlockQuote).Content, nested)
			return ov
		case *doctree.Div:
			ov.Content = applyBlocks(ov.Content, tb.(*doctree.Div).Content, nested)
			return ov
		}
	}
	if nested, ok := plan.Inlines[j]; ok {
		switch ov := ob.(type) {
		case *doctree.Para:
			ov.Content = applyInlines(ov.Content, tb.(*doctree.Para).Content, nested)
			return ov
		case *doctree.Plain:
			ov.Content = applyInlines(ov.Content, tb.(*doctree.Plain).Content, nested)
			return ov
		case *doctree.Header:
			ov.Content = applyInlines(ov.Content, tb.(*doctree.Header).Content, nested)
			return ov
		}
	}
	if nested, ok := plan.Lists[j]; ok {
		switch ov := ob.(type) {
		case *doctree.BulletList:
			ov.Items = applyItems(ov.Items, tb.(*doctree.BulletList).Items, nested)
			return ov
		case *doctree.OrderedList:
			ov.Items = applyItems(ov.Items, tb.(*doctree.OrderedList).Items, nested)
			return ov
		}
	}
	// No nested plan recorded for this position: keep the original.
	return ob
}

func applyInlines(orig, xform []doctree.Inline, plan *InlinePlan) []doctree.Inline {
	result := make([]doctree.Inline, 0, len(plan.Alignments))

	for j, a := range plan.Alignments {
		switch a.Op {
		case OpKeepOriginal:
			result = append(result, takeInline(orig, a.Original, "original"))
		case OpUseTransformed:
			result = append(result, takeInline(xform, a.Transformed, "transformed"))
		case OpRecurse:
			on := takeInline(orig, a.Original, "original")
			tn := takeInline(xform, a.Transformed, "transformed")
			result = append(result, applyInlineRecursion(on, tn, plan, j))
		default:
			panic(fmt.Sprintf("reconcile: unknown alignment op %q", a.Op))
		}
	}

	return result
}

func applyInlineRecursion(on, tn doctree.Inline, plan *InlinePlan, j int) doctree.Inline {
	if nested, ok := plan.Notes[j]; ok {
		if ov, isNote := on.(*doctree.Note); isNote {
			ov.Content = applyBlocks(ov.Content, tn.(*doctree.Note).Content, nested)
			return ov
		}
	}
	if nested, ok := plan.Containers[j]; ok {
		switch ov := on.(type) {
		case *doctree.Emph:
			ov.Content = applyInlines(ov.Content, tn.(*doctree.Emph).Content, nested)
			return ov
		case *doctree.Strong:
			ov.Content = applyInlines(ov.Content, tn.(*doctree.Strong).Content, nested)
			return ov
		case *doctree.Strikeout:
			ov.Content = applyInlines(ov.Content, tn.(*doctree.Strikeout).Content, nested)
			return ov
		case *doctree.Quoted:
			ov.Content = applyInlines(ov.Content, tn.(*doctree.Quoted).Content, nested)
			return ov
		case *doctree.Span:
			ov.Content = applyInlines(ov.Content, tn.(*doctree.Span).Content, nested)
			return ov
		case *doctree.Link:
			ov.Content = applyInlines(ov.Content, tn.(*doctree.Link).Content, nested)
			return ov
		case *doctree.Image:
			ov.Content = applyInlines(ov.Content, tn.(*doctree.Image).Content, nested)
			return ov
		}
	}
	return on
}

func applyItems(orig, xform [][]doctree.Block, plan *ListPlan) [][]doctree.Block {
	origTaken := make([]bool, len(orig))
	xformTaken := make([]bool, len(xform))
	result := make([][]doctree.Block, 0, len(plan.Alignments))

	for _, a := range plan.Alignments {
		switch a.Op {
		case OpKeepOriginal:
			result = append(result, takeItem(orig, origTaken, a.Original, "original"))
		case OpUseTransformed:
			result = append(result, takeItem(xform, xformTaken, a.Transformed, "transformed"))
		case OpRecurse:
			oi := takeItem(orig, origTaken, a.Original, "original")
			xi := takeItem(xform, xformTaken, a.Transformed, "transformed")
			if nested, ok := plan.ItemPlans[a.Transformed]; ok {
				result = append(result, applyBlocks(oi, xi, nested))
			} else {
				result = append(result, oi)
			}
		default:
			panic(fmt.Sprintf("reconcile: unknown alignment op %q", a.Op))
		}
	}

	return result
}

// Take-once slots: taking a node nils its slot, and taking a nil slot
// panics. Catches malformed plans that address an index twice.

func takeBlock(slots []doctree.Block, i int, side string) doctree.Block {
	if slots[i] == nil {
		panic(fmt.Sprintf("reconcile: %s block %d already taken", side, i))
	}
	b := slots[i]
	slots[i] = nil
	return b
}

func takeInline(slots []doctree.Inline, i int, side string) doctree.Inline {
	if slots[i] == nil {
		panic(fmt.Sprintf("reconcile: %s inline %d already taken", side, i))
	}
	n := slots[i]
	slots[i] = nil
	return n
}

func takeItem(items [][]doctree.Block, taken []bool, i int, side string) []doctree.Block {
	if taken[i] {
		panic(fmt.Sprintf("reconcile: %s list item %d already taken", side, i))
	}
	taken[i] = true
	return items[i]
}
