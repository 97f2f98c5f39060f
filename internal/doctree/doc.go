// Package doctree defines the document tree: a Pandoc-style AST of
// block and inline nodes, each carrying provenance.
//
// ARCHITECTURE
//
// Two sealed interfaces partition the node space:
//
//	Block  - paragraph-level structure (Para, Header, CodeBlock, Div, ...)
//	Inline - intra-paragraph content (Str, Emph, Link, Note, ...)
//
// Only types in this package implement them; consumers dispatch with
// type switches. Every node holds a Source field (its provenance)
// that is carried verbatim through cloning and serialization.
//
// A Document pairs a block sequence with front-matter metadata. The
// metadata value space is plain Go (string, bool, int64, float64,
// []any, map[string]any), the shape yaml.v3 produces.
//
// CRITICAL PATTERNS
//
//  1. Kind() returns the wire tag for a node. The reconciliation
//     engine matches node types by this tag; the JSON codec uses it
//     as the "t" discriminator.
//  2. Clone copies node structure but shares provenance pointers, so
//     provenance identity survives cloning.
//  3. Child slices are owned by their parent. Callers that need to
//     keep a tree across a consuming operation clone it first.
package doctree
