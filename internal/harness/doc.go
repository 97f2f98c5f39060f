// Package harness runs reconciliation scenarios described in YAML.
//
// A scenario names two tree files (original and transformed), runs
// the full compute/apply pipeline on them, checks the engine's
// invariants, and compares the outcome against the scenario's
// expectations. Golden tests additionally snapshot the computed plan
// as JSON under testdata/golden.
//
// The harness checks two invariants on every run regardless of what
// the scenario expects:
//
//  1. Merged content is structurally identical to the transformed
//     input.
//  2. The plan has exactly one alignment per transformed child.
//
// Scenario execution is deterministic: the same pair of trees always
// produces the same plan bytes, which is what makes golden
// comparison meaningful.
package harness
