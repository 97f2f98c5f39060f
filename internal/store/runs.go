package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/restitch/restitch/internal/reconcile"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one reconciliation run log entry.
type Run struct {
	ID              string          `json:"id"`
	Seq             int64           `json:"seq"`
	Doc             string          `json:"doc"`
	OriginalHash    string          `json:"original_hash"`
	TransformedHash string          `json:"transformed_hash"`
	MergedHash      string          `json:"merged_hash"`
	MetaDigest      string          `json:"meta_digest"`
	MetaChanged     bool            `json:"meta_changed"`
	Stats           reconcile.Stats `json:"stats"`
}

// RecordRun appends a run to the log. A missing ID is assigned a
// fresh UUID; Seq is always assigned inside the insert transaction
// and written back to the passed Run.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM runs").Scan(&seq); err != nil {
		return fmt.Errorf("next seq: %w", err)
	}

	metaChanged := 0
	if run.MetaChanged {
		metaChanged = 1
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, seq, doc,
			original_hash, transformed_hash, merged_hash,
			meta_digest, meta_changed,
			blocks_kept, blocks_replaced, blocks_recursed,
			inlines_kept, inlines_replaced, inlines_recursed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, seq, run.Doc,
		run.OriginalHash, run.TransformedHash, run.MergedHash,
		run.MetaDigest, metaChanged,
		run.Stats.BlocksKept, run.Stats.BlocksReplaced, run.Stats.BlocksRecursed,
		run.Stats.InlinesKept, run.Stats.InlinesReplaced, run.Stats.InlinesRecursed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	run.Seq = seq
	return nil
}

// GetRun fetches a run by id. Returns ErrNotFound if absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns runs in descending seq order. doc filters to one
// document when non-empty; limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, doc string, limit int) ([]*Run, error) {
	query := selectRuns
	var args []any
	if doc != "" {
		query += " WHERE doc = ?"
		args = append(args, doc)
	}
	query += " ORDER BY seq DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

const selectRuns = `
	SELECT id, seq, doc,
	       original_hash, transformed_hash, merged_hash,
	       meta_digest, meta_changed,
	       blocks_kept, blocks_replaced, blocks_recursed,
	       inlines_kept, inlines_replaced, inlines_recursed
	FROM runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var metaChanged int
	err := row.Scan(
		&run.ID, &run.Seq, &run.Doc,
		&run.OriginalHash, &run.TransformedHash, &run.MergedHash,
		&run.MetaDigest, &metaChanged,
		&run.Stats.BlocksKept, &run.Stats.BlocksReplaced, &run.Stats.BlocksRecursed,
		&run.Stats.InlinesKept, &run.Stats.InlinesReplaced, &run.Stats.InlinesRecursed,
	)
	if err != nil {
		return nil, err
	}
	run.MetaChanged = metaChanged != 0
	return &run, nil
}
