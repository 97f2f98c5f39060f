package harness

import (
	"fmt"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/metadata"
	"github.com/restitch/restitch/internal/reconcile"
)

// Result is the outcome of one scenario execution.
type Result struct {
	Pass        bool               `json:"pass"`
	Errors      []string           `json:"errors,omitempty"`
	Plan        *reconcile.Plan    `json:"plan"`
	Merged      *doctree.Document  `json:"-"`
	MetaChanged bool               `json:"meta_changed"`
}

// AddError records a failure message and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario: load both trees, compute, apply, verify.
func Run(scenario *Scenario) (*Result, error) {
	original, err := scenario.loadTree(scenario.Original)
	if err != nil {
		return nil, err
	}
	transformed, err := scenario.loadTree(scenario.Transformed)
	if err != nil {
		return nil, err
	}

	result := &Result{Pass: true}
	result.MetaChanged = metadata.Changed(original.Meta, transformed.Meta)

	plan := reconcile.Compute(original, transformed)
	result.Plan = plan

	// Apply consumes both trees; keep a content reference for the
	// invariant check.
	wantContent := doctree.Clone(transformed)
	merged := reconcile.Apply(original, transformed, plan)
	result.Merged = merged

	if len(plan.Alignments) != len(wantContent.Blocks) {
		result.AddError("plan has %d alignments for %d transformed blocks",
			len(plan.Alignments), len(wantContent.Blocks))
	}
	if !reconcile.EqualBlocks(wantContent.Blocks, merged.Blocks) {
		result.AddError("merged content differs from transformed content")
	}

	for _, msg := range scenario.Expect.check(plan.Stats, result.MetaChanged) {
		result.AddError("%s", msg)
	}

	return result, nil
}
