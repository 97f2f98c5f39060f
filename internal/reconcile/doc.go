// Package reconcile merges an original document tree with a
// transformed-then-reparsed tree so that unchanged nodes keep their
// original provenance and changed nodes adopt the transformed one.
//
// ARCHITECTURE
//
// Reconciliation is split into two phases:
//
//	Compute - pure. Walks both trees read-only and produces a Plan:
//	          one alignment decision per transformed child position,
//	          plus nested plans for containers that recurse.
//	Apply   - consuming. Moves nodes out of both input trees into the
//	          merged result according to the plan. O(tree) moves, no
//	          node copying.
//
// Matching is driven by 64-bit structural hashes (xxhash) that cover
// content only, never provenance. A hash hit is always confirmed with
// a structural equality check before a node is kept, so a hash
// collision can never smuggle stale provenance onto changed content.
// Hashes are memoized per hasher keyed on node identity; each tree
// gets its own hasher for a compute pass.
//
// CRITICAL PATTERNS
//
//  1. First-unused-wins: when several original children share a hash
//     (duplicate paragraphs), the earliest unmatched one is taken, so
//     duplicates pair up in document order.
//  2. Take-once slots: Apply moves each input node at most once and
//     panics if a plan addresses a slot twice. A panic here means the
//     plan is malformed, not that the input is.
//  3. Plans address transformed child positions. Alignments[j] decides
//     position j of the merged child list; nested plan tables are
//     keyed by the same j.
//  4. Metadata is reconciled wholesale: if it changed at all, the
//     transformed metadata wins in its entirety.
package reconcile
