package reconcile

import "github.com/restitch/restitch/internal/doctree"

// Reconcile computes a plan for the document pair and applies it in
// one step. Both inputs are consumed; the merged document and the
// plan (for inspection or logging) are returned.
func Reconcile(original, transformed *doctree.Document) (*doctree.Document, *Plan) {
	plan := Compute(original, transformed)
	merged := Apply(original, transformed, plan)
	return merged, plan
}
