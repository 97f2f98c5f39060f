package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/testutil"
)

func ops(alignments []Alignment) []AlignOp {
	out := make([]AlignOp, len(alignments))
	for i, a := range alignments {
		out[i] = a.Op
	}
	return out
}

func TestComputeIdenticalTreesFastPath(t *testing.T) {
	src := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(
		src.Para("first paragraph"),
		src.CodeBlock("python", "1 + 1\n"),
		src.Para("second paragraph"),
	)
	transformed := doctree.Clone(original)

	plan := Compute(original, transformed)

	require.Len(t, plan.Alignments, 3)
	for i, a := range plan.Alignments {
		assert.Equal(t, OpKeepOriginal, a.Op)
		assert.Equal(t, i, a.Original)
		assert.Equal(t, i, a.Transformed)
	}
	assert.Equal(t, 3, plan.Stats.BlocksKept)
	assert.Zero(t, plan.Stats.BlocksReplaced)
	assert.Zero(t, plan.Stats.BlocksRecursed)
	assert.Empty(t, plan.Containers)
	assert.Empty(t, plan.Inlines)
}

func TestComputeChangedCodeBlock(t *testing.T) {
	// Para / CodeBlock / Para where only the code output changed:
	// both paragraphs keep, the code block is replaced whole.
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(
		osrc.Para("foo"),
		osrc.CodeBlock("python", "x = 1\n"),
		osrc.Para("bar"),
	)
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(
		tsrc.Para("foo"),
		tsrc.CodeBlock("python", "x = 1\n# output: 1\n"),
		tsrc.Para("bar"),
	)

	plan := Compute(original, transformed)

	require.Equal(t, []AlignOp{OpKeepOriginal, OpUseTransformed, OpKeepOriginal}, ops(plan.Alignments))
	assert.Equal(t, 0, plan.Alignments[0].Original)
	assert.Equal(t, -1, plan.Alignments[1].Original)
	assert.Equal(t, 2, plan.Alignments[2].Original)
	assert.Equal(t, Stats{BlocksKept: 2, BlocksReplaced: 1}, plan.Stats)
}

func TestComputeDuplicateParagraphsPairInOrder(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(
		osrc.Para("repeated"),
		osrc.Para("repeated"),
	)
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(
		tsrc.Para("repeated"),
		tsrc.Para("repeated"),
	)

	plan := Compute(original, transformed)

	require.Len(t, plan.Alignments, 2)
	assert.Equal(t, Alignment{Op: OpKeepOriginal, Original: 0, Transformed: 0}, plan.Alignments[0])
	assert.Equal(t, Alignment{Op: OpKeepOriginal, Original: 1, Transformed: 1}, plan.Alignments[1])
}

func TestComputeEmptyOriginal(t *testing.T) {
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(tsrc.Para("all new"))

	plan := Compute(testutil.Doc(), transformed)

	require.Equal(t, []AlignOp{OpUseTransformed}, ops(plan.Alignments))
	assert.Equal(t, 1, plan.Stats.BlocksReplaced)
}

func TestComputeEmptyTransformed(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(osrc.Para("dropped"))

	plan := Compute(original, testutil.Doc())

	assert.Empty(t, plan.Alignments)
	assert.Equal(t, Stats{}, plan.Stats)
}

func TestComputeBothEmpty(t *testing.T) {
	plan := Compute(testutil.Doc(), testutil.Doc())
	assert.Empty(t, plan.Alignments)
}

func TestComputeRecursesIntoChangedParagraph(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(osrc.Para("keep this word"))
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(tsrc.Para("keep that word"))

	plan := Compute(original, transformed)

	require.Equal(t, []AlignOp{OpRecurse}, ops(plan.Alignments))
	nested := plan.Inlines[0]
	require.NotNil(t, nested)

	// "keep" and "word" and the spaces survive; "this" -> "that".
	assert.Equal(t, []AlignOp{
		OpKeepOriginal, OpKeepOriginal, OpUseTransformed, OpKeepOriginal, OpKeepOriginal,
	}, ops(nested.Alignments))
	assert.Equal(t, 4, plan.Stats.InlinesKept)
	assert.Equal(t, 1, plan.Stats.InlinesReplaced)
	assert.Equal(t, 1, plan.Stats.BlocksRecursed)
}

func TestComputeRecursesIntoDiv(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(osrc.Div("callout",
		osrc.Para("unchanged"),
		osrc.CodeBlock("python", "a\n"),
	))
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(tsrc.Div("callout",
		tsrc.Para("unchanged"),
		tsrc.CodeBlock("python", "b\n"),
	))

	plan := Compute(original, transformed)

	require.Equal(t, []AlignOp{OpRecurse}, ops(plan.Alignments))
	nested := plan.Containers[0]
	require.NotNil(t, nested)
	assert.Equal(t, []AlignOp{OpKeepOriginal, OpUseTransformed}, ops(nested.Alignments))
	assert.Equal(t, 1, plan.Stats.BlocksKept)
	assert.Equal(t, 1, plan.Stats.BlocksReplaced)
	assert.Equal(t, 1, plan.Stats.BlocksRecursed)
}

func TestComputeListItems(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(osrc.Bullets("alpha", "beta", "gamma"))
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(tsrc.Bullets("alpha", "BETA", "gamma", "delta"))

	plan := Compute(original, transformed)

	require.Equal(t, []AlignOp{OpRecurse}, ops(plan.Alignments))
	lp := plan.Lists[0]
	require.NotNil(t, lp)
	require.Len(t, lp.Alignments, 4)

	assert.Equal(t, OpKeepOriginal, lp.Alignments[0].Op)
	assert.Equal(t, OpRecurse, lp.Alignments[1].Op, "changed item pairs positionally")
	assert.Equal(t, OpKeepOriginal, lp.Alignments[2].Op)
	assert.Equal(t, OpUseTransformed, lp.Alignments[3].Op, "extra item is new content")
	require.Contains(t, lp.ItemPlans, 1)
}

func TestComputeNoteRecursesIntoBlocks(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(&doctree.Para{
		Content: []doctree.Inline{osrc.Note("old footnote body")},
		Source:  osrc.Next(4),
	})
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(&doctree.Para{
		Content: []doctree.Inline{tsrc.Note("new footnote body")},
		Source:  tsrc.Next(4),
	})

	plan := Compute(original, transformed)

	require.Equal(t, []AlignOp{OpRecurse}, ops(plan.Alignments))
	ip := plan.Inlines[0]
	require.NotNil(t, ip)
	require.Equal(t, []AlignOp{OpRecurse}, ops(ip.Alignments))
	require.Contains(t, ip.Notes, 0, "note body gets a block-level plan")

	notePlan := ip.Notes[0]
	require.Equal(t, []AlignOp{OpRecurse}, ops(notePlan.Alignments))
}

func TestComputeMovedParagraphStillKept(t *testing.T) {
	// Exact matches are position independent.
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(
		osrc.Para("one"),
		osrc.Para("two"),
	)
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(
		tsrc.Para("two"),
		tsrc.Para("one"),
	)

	plan := Compute(original, transformed)

	require.Len(t, plan.Alignments, 2)
	assert.Equal(t, Alignment{Op: OpKeepOriginal, Original: 1, Transformed: 0}, plan.Alignments[0])
	assert.Equal(t, Alignment{Op: OpKeepOriginal, Original: 0, Transformed: 1}, plan.Alignments[1])
}

func TestComputeKindMismatchReplaces(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(osrc.CodeBlock("python", "x\n"))
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(tsrc.Para("now prose"))

	plan := Compute(original, transformed)

	require.Equal(t, []AlignOp{OpUseTransformed}, ops(plan.Alignments))
}

func TestComputeIsPure(t *testing.T) {
	osrc := testutil.NewSpanSource("doc.qmd")
	original := testutil.Doc(osrc.Para("alpha"), osrc.Div("d", osrc.Para("beta")))
	tsrc := testutil.NewSpanSource("stage-1")
	transformed := testutil.Doc(tsrc.Para("alpha"), tsrc.Div("d", tsrc.Para("gamma")))

	before, err := doctree.MarshalDocument(original)
	require.NoError(t, err)
	beforeX, err := doctree.MarshalDocument(transformed)
	require.NoError(t, err)

	_ = Compute(original, transformed)

	after, err := doctree.MarshalDocument(original)
	require.NoError(t, err)
	afterX, err := doctree.MarshalDocument(transformed)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, string(beforeX), string(afterX))
}
