// Package provenance defines the source attribution attached to every
// document node.
//
// ARCHITECTURE
//
// Provenance is a small sealed union with four variants:
//
//   - Direct: a byte span in an on-disk source
//   - Derived: a span relative to a parent provenance
//   - Composite: an ordered concatenation of pieces from other provenances
//   - Stage: synthesized by a named pipeline stage, no source span
//
// Values are immutable after construction and freely shared between
// trees. The reconciliation engine treats provenance as an opaque
// payload: it is carried, never compared and never hashed. Resolution
// back to concrete source locations (Resolve) exists for diagnostics
// and downstream consumers only.
//
// CRITICAL PATTERNS
//
//  1. Sealed interface: only the four variants in this package
//     implement Provenance. Consumers switch over the concrete types.
//  2. Share, don't copy: tree cloning shares provenance pointers, so
//     a kept node's provenance is the original value, not a replica.
package provenance
