package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/internal/reconcile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(doc string) *Run {
	return &Run{
		Doc:             doc,
		OriginalHash:    "00000000000000aa",
		TransformedHash: "00000000000000bb",
		MergedHash:      "00000000000000bb",
		MetaDigest:      "d0d0",
		MetaChanged:     false,
		Stats:           reconcile.Stats{BlocksKept: 2, BlocksReplaced: 1},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	var version int
	require.NoError(t, s2.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestRecordRunAssignsIDAndSeq(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := sampleRun("doc.qmd")
	require.NoError(t, s.RecordRun(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, int64(1), first.Seq)

	second := sampleRun("doc.qmd")
	require.NoError(t, s.RecordRun(ctx, second))
	assert.Equal(t, int64(2), second.Seq)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := sampleRun("doc.qmd")
	run.MetaChanged = true
	require.NoError(t, s.RecordRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Doc, got.Doc)
	assert.Equal(t, run.Stats, got.Stats)
	assert.True(t, got.MetaChanged)

	_, err = s.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordRun(ctx, sampleRun("a.qmd")))
	require.NoError(t, s.RecordRun(ctx, sampleRun("b.qmd")))
	require.NoError(t, s.RecordRun(ctx, sampleRun("a.qmd")))

	t.Run("all runs newest first", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, int64(3), runs[0].Seq)
		assert.Equal(t, int64(1), runs[2].Seq)
	})

	t.Run("filtered by doc", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, "a.qmd", 0)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		for _, r := range runs {
			assert.Equal(t, "a.qmd", r.Doc)
		}
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := s.ListRuns(ctx, "", 1)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, int64(3), runs[0].Seq)
	})
}
