package reconcile

import "github.com/restitch/restitch/internal/doctree"

// Compute builds a reconciliation plan for merging transformed into
// original. It is pure: both trees are walked read-only and neither
// is mutated or retained.
//
// Fast path: when the two block sequences are structurally identical,
// the result is an all-kept plan and no per-child alignment runs.
func Compute(original, transformed *doctree.Document) *Plan {
	oh, th := NewHasher(), NewHasher()

	if len(original.Blocks) == len(transformed.Blocks) &&
		oh.HashBlocks(original.Blocks) == th.HashBlocks(transformed.Blocks) &&
		EqualBlocks(original.Blocks, transformed.Blocks) {
		return AllKept(len(transformed.Blocks))
	}

	return computeBlocks(oh, th, original.Blocks, transformed.Blocks)
}

// computeBlocks aligns one block sequence. For each transformed child
// in order: exact content match against an unused original first,
// then a same-kind unused original to recurse into, else the
// transformed child stands as new content.
func computeBlocks(oh, th *Hasher, orig, xform []doctree.Block) *Plan {
	plan := NewPlan()

	byHash := make(map[uint64][]int, len(orig))
	for i, b := range orig {
		sum := oh.HashBlock(b)
		byHash[sum] = append(byHash[sum], i)
	}
	used := make([]bool, len(orig))

	for j, tb := range xform {
		// Exact match: hash hit confirmed by structural equality.
		// First unused wins so duplicates pair in document order.
		if i, ok := findEqualBlock(byHash[th.HashBlock(tb)], used, orig, tb); ok {
			used[i] = true
			plan.Alignments = append(plan.Alignments, Alignment{Op: OpKeepOriginal, Original: i, Transformed: j})
			plan.Stats.BlocksKept++
			continue
		}

		// Same-kind container: recurse so unchanged descendants
		// still keep their provenance.
		if recursableBlock(tb) {
			if i := findUnusedKind(orig, used, tb.Kind()); i >= 0 {
				used[i] = true
				plan.Alignments = append(plan.Alignments, Alignment{Op: OpRecurse, Original: i, Transformed: j})
				plan.recurseBlock(oh, th, j, orig[i], tb)
				plan.Stats.BlocksRecursed++
				continue
			}
		}

		plan.Alignments = append(plan.Alignments, Alignment{Op: OpUseTransformed, Original: -1, Transformed: j})
		plan.Stats.BlocksReplaced++
	}

	return plan
}

// recurseBlock records the nested plan for a same-kind container pair
// at transformed position j.
func (p *Plan) recurseBlock(oh, th *Hasher, j int, ob, tb doctree.Block) {
	switch tv := tb.(type) {
	case *doctree.Para:
		p.putInline(j, computeInlines(oh, th, ob.(*doctree.Para).Content, tv.Content))
	case *doctree.Plain:
		p.putInline(j, computeInlines(oh, th, ob.(*doctree.Plain).Content, tv.Content))
	case *doctree.Header:
		p.putInline(j, computeInlines(oh, th, ob.(*doctree.Header).Content, tv.Content))
	case *doctree.BlockQuote:
		p.putContainer(j, computeBlocks(oh, th, ob.(*doctree.BlockQuote).Content, tv.Content))
	case *doctree.Div:
		p.putContainer(j, computeBlocks(oh, th, ob.(*doctree.Div).Content, tv.Content))
	case *doctree.BulletList:
		p.putList(j, computeList(oh, th, ob.(*doctree.BulletList).Items, tv.Items))
	case *doctree.OrderedList:
		p.putList(j, computeList(oh, th, ob.(*doctree.OrderedList).Items, tv.Items))
	}
}

func (p *Plan) putContainer(j int, nested *Plan) {
	if p.Containers == nil {
		p.Containers = make(map[int]*Plan)
	}
	p.Containers[j] = nested
	p.Stats.Merge(nested.Stats)
}

func (p *Plan) putInline(j int, nested *InlinePlan) {
	if p.Inlines == nil {
		p.Inlines = make(map[int]*InlinePlan)
	}
	p.Inlines[j] = nested
	p.Stats.Merge(nested.Stats)
}

func (p *Plan) putList(j int, nested *ListPlan) {
	if p.Lists == nil {
		p.Lists = make(map[int]*ListPlan)
	}
	p.Lists[j] = nested
	p.Stats.Merge(nested.Stats)
}

// computeInlines aligns one inline sequence with the same strategy as
// computeBlocks. Note is the special case: its children are blocks,
// so it recurses back into block alignment.
func computeInlines(oh, th *Hasher, orig, xform []doctree.Inline) *InlinePlan {
	plan := &InlinePlan{Alignments: []Alignment{}}

	byHash := make(map[uint64][]int, len(orig))
	for i, n := range orig {
		sum := oh.HashInline(n)
		byHash[sum] = append(byHash[sum], i)
	}
	used := make([]bool, len(orig))

	for j, tn := range xform {
		if i, ok := findEqualInline(byHash[th.HashInline(tn)], used, orig, tn); ok {
			used[i] = true
			plan.Alignments = append(plan.Alignments, Alignment{Op: OpKeepOriginal, Original: i, Transformed: j})
			plan.Stats.InlinesKept++
			continue
		}

		if recursableInline(tn) {
			if i := findUnusedInlineKind(orig, used, tn.Kind()); i >= 0 {
				used[i] = true
				plan.Alignments = append(plan.Alignments, Alignment{Op: OpRecurse, Original: i, Transformed: j})
				plan.recurseInline(oh, th, j, orig[i], tn)
				plan.Stats.InlinesRecursed++
				continue
			}
		}

		plan.Alignments = append(plan.Alignments, Alignment{Op: OpUseTransformed, Original: -1, Transformed: j})
		plan.Stats.InlinesReplaced++
	}

	return plan
}

func (p *InlinePlan) recurseInline(oh, th *Hasher, j int, on, tn doctree.Inline) {
	switch tv := tn.(type) {
	case *doctree.Emph:
		p.putContainer(j, computeInlines(oh, th, on.(*doctree.Emph).Content, tv.Content))
	case *doctree.Strong:
		p.putContainer(j, computeInlines(oh, th, on.(*doctree.Strong).Content, tv.Content))
	case *doctree.Strikeout:
		p.putContainer(j, computeInlines(oh, th, on.(*doctree.Strikeout).Content, tv.Content))
	case *doctree.Quoted:
		p.putContainer(j, computeInlines(oh, th, on.(*doctree.Quoted).Content, tv.Content))
	case *doctree.Span:
		p.putContainer(j, computeInlines(oh, th, on.(*doctree.Span).Content, tv.Content))
	case *doctree.Link:
		p.putContainer(j, computeInlines(oh, th, on.(*doctree.Link).Content, tv.Content))
	case *doctree.Image:
		p.putContainer(j, computeInlines(oh, th, on.(*doctree.Image).Content, tv.Content))
	case *doctree.Note:
		p.putNote(j, computeBlocks(oh, th, on.(*doctree.Note).Content, tv.Content))
	}
}

func (p *InlinePlan) putContainer(j int, nested *InlinePlan) {
	if p.Containers == nil {
		p.Containers = make(map[int]*InlinePlan)
	}
	p.Containers[j] = nested
	p.Stats.Merge(nested.Stats)
}

func (p *InlinePlan) putNote(j int, nested *Plan) {
	if p.Notes == nil {
		p.Notes = make(map[int]*Plan)
	}
	p.Notes[j] = nested
	p.Stats.Merge(nested.Stats)
}

// computeList aligns list items. Items carry no kind tag, so the
// recursion heuristic is positional: an unmatched transformed item
// pairs with the original item at the same index when available.
func computeList(oh, th *Hasher, origItems, xformItems [][]doctree.Block) *ListPlan {
	plan := &ListPlan{Alignments: []Alignment{}}

	byHash := make(map[uint64][]int, len(origItems))
	for i, item := range origItems {
		sum := oh.HashItems(item)
		byHash[sum] = append(byHash[sum], i)
	}
	used := make([]bool, len(origItems))

	for j, item := range xformItems {
		if i, ok := findEqualItem(byHash[th.HashItems(item)], used, origItems, item); ok {
			used[i] = true
			plan.Alignments = append(plan.Alignments, Alignment{Op: OpKeepOriginal, Original: i, Transformed: j})
			continue
		}

		if j < len(origItems) && !used[j] {
			used[j] = true
			nested := computeBlocks(oh, th, origItems[j], item)
			if plan.ItemPlans == nil {
				plan.ItemPlans = make(map[int]*Plan)
			}
			plan.ItemPlans[j] = nested
			plan.Stats.Merge(nested.Stats)
			plan.Alignments = append(plan.Alignments, Alignment{Op: OpRecurse, Original: j, Transformed: j})
			continue
		}

		plan.Alignments = append(plan.Alignments, Alignment{Op: OpUseTransformed, Original: -1, Transformed: j})
		plan.Stats.BlocksReplaced += len(item)
	}

	return plan
}

// recursableBlock reports whether the block kind has children worth
// aligning. CodeBlock, RawBlock and HorizontalRule are leaves: any
// change replaces them whole.
func recursableBlock(b doctree.Block) bool {
	switch b.(type) {
	case *doctree.Para, *doctree.Plain, *doctree.Header,
		*doctree.BlockQuote, *doctree.Div,
		*doctree.BulletList, *doctree.OrderedList:
		return true
	default:
		return false
	}
}

func recursableInline(n doctree.Inline) bool {
	switch n.(type) {
	case *doctree.Emph, *doctree.Strong, *doctree.Strikeout,
		*doctree.Quoted, *doctree.Span, *doctree.Link,
		*doctree.Image, *doctree.Note:
		return true
	default:
		return false
	}
}

// findEqualBlock picks the first unused candidate that is truly equal
// to tb. Candidates come from the hash multimap in document order.
func findEqualBlock(candidates []int, used []bool, orig []doctree.Block, tb doctree.Block) (int, bool) {
	for _, i := range candidates {
		if !used[i] && EqualBlock(orig[i], tb) {
			return i, true
		}
	}
	return 0, false
}

func findEqualInline(candidates []int, used []bool, orig []doctree.Inline, tn doctree.Inline) (int, bool) {
	for _, i := range candidates {
		if !used[i] && EqualInline(orig[i], tn) {
			return i, true
		}
	}
	return 0, false
}

func findEqualItem(candidates []int, used []bool, origItems [][]doctree.Block, item []doctree.Block) (int, bool) {
	for _, i := range candidates {
		if !used[i] && EqualBlocks(origItems[i], item) {
			return i, true
		}
	}
	return 0, false
}

// findUnusedKind returns the first unused original whose kind matches,
// or -1.
func findUnusedKind(orig []doctree.Block, used []bool, kind string) int {
	for i, b := range orig {
		if !used[i] && b.Kind() == kind {
			return i
		}
	}
	return -1
}

func findUnusedInlineKind(orig []doctree.Inline, used []bool, kind string) int {
	for i, n := range orig {
		if !used[i] && n.Kind() == kind {
			return i
		}
	}
	return -1
}
