package reconcile

// AlignOp is the decision taken for one transformed child position.
type AlignOp string

const (
	// OpKeepOriginal keeps the original child (provenance and all).
	OpKeepOriginal AlignOp = "keep_original"
	// OpUseTransformed takes the transformed child as-is.
	OpUseTransformed AlignOp = "use_transformed"
	// OpRecurse keeps the original container shell and merges its
	// children via a nested plan.
	OpRecurse AlignOp = "recurse"
)

// Alignment pairs an operation with the child indices it consumes.
// Original is -1 for OpUseTransformed.
type Alignment struct {
	Op          AlignOp `json:"op"`
	Original    int     `json:"original"`
	Transformed int     `json:"transformed"`
}

// Stats counts alignment decisions at both granularities. Nested plan
// stats are folded into their parent, so a root plan's stats cover
// the whole tree.
type Stats struct {
	BlocksKept       int `json:"blocks_kept"`
	BlocksReplaced   int `json:"blocks_replaced"`
	BlocksRecursed   int `json:"blocks_recursed"`
	InlinesKept      int `json:"inlines_kept"`
	InlinesReplaced  int `json:"inlines_replaced"`
	InlinesRecursed  int `json:"inlines_recursed"`
}

// Merge folds other into s.
func (s *Stats) Merge(other Stats) {
	s.BlocksKept += other.BlocksKept
	s.BlocksReplaced += other.BlocksReplaced
	s.BlocksRecursed += other.BlocksRecursed
	s.InlinesKept += other.InlinesKept
	s.InlinesReplaced += other.InlinesReplaced
	s.InlinesRecursed += other.InlinesRecursed
}

// Plan is the full reconciliation decision for a block sequence.
// Alignments has one entry per transformed child, in order. The maps
// are keyed by transformed child index and carry nested plans for
// positions whose alignment is OpRecurse.
type Plan struct {
	Alignments []Alignment         `json:"alignments"`
	Containers map[int]*Plan       `json:"containers,omitempty"` // BlockQuote, Div
	Inlines    map[int]*InlinePlan `json:"inlines,omitempty"`    // Para, Plain, Header
	Lists      map[int]*ListPlan   `json:"lists,omitempty"`      // BulletList, OrderedList
	Stats      Stats               `json:"stats"`
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{Alignments: []Alignment{}}
}

// AllKept returns the fast-path plan: every one of n children kept
// from the original in place.
func AllKept(n int) *Plan {
	p := &Plan{Alignments: make([]Alignment, n)}
	for i := range p.Alignments {
		p.Alignments[i] = Alignment{Op: OpKeepOriginal, Original: i, Transformed: i}
	}
	p.Stats.BlocksKept = n
	return p
}

// InlinePlan is the reconciliation decision for an inline sequence.
type InlinePlan struct {
	Alignments []Alignment         `json:"alignments"`
	Containers map[int]*InlinePlan `json:"containers,omitempty"` // Emph, Strong, Span, ...
	Notes      map[int]*Plan       `json:"notes,omitempty"`      // Note bodies are blocks
	Stats      Stats               `json:"stats"`
}

// ListPlan aligns list items. Items are untyped block groups, so
// matching is by content hash and then by position.
type ListPlan struct {
	Alignments []Alignment   `json:"alignments"`
	ItemPlans  map[int]*Plan `json:"item_plans,omitempty"` // keyed by transformed item index
	Stats      Stats         `json:"stats"`
}
