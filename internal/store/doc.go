// Package store persists the reconciliation run log.
//
// ARCHITECTURE
//
// SQLite with WAL mode, one writer. Each reconciliation run appends a
// row: tree hashes for both inputs and the merged output, the
// metadata digest, whether metadata changed, and the plan's counters.
// Rows are ordered by a logical sequence number assigned inside the
// insert transaction, never by wall-clock time, so replaying the same
// runs yields byte-identical logs.
//
// CRITICAL PATTERNS
//
//  1. Single writer: the connection pool is capped at one connection
//     to avoid SQLITE_BUSY under concurrent writes.
//  2. Append only: rows are never updated or deleted by this package.
package store
