package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/testutil"
)

func TestHashText(t *testing.T) {
	dir := t.TempDir()
	src := testutil.NewSpanSource("doc.md")
	path := writeTree(t, dir, "tree.json", testutil.Doc(src.Para("alpha beta")))

	buf := &bytes.Buffer{}
	cmd := NewHashCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "blocks=1")
	assert.Contains(t, buf.String(), "meta=")
}

func TestHashIgnoresProvenance(t *testing.T) {
	dir := t.TempDir()

	src := testutil.NewSpanSource("doc.md")
	pathA := writeTree(t, dir, "a.json", testutil.Doc(src.Para("alpha beta")))

	other := testutil.NewSpanSource("elsewhere.md")
	doc := testutil.Doc(other.Para("alpha beta"))
	doc.Blocks[0].(*doctree.Para).Source = testutil.StageProv("filter")
	pathB := writeTree(t, dir, "b.json", doc)

	hashFor := func(path string) string {
		buf := &bytes.Buffer{}
		cmd := NewHashCommand(&RootOptions{Format: "json"})
		cmd.SetOut(buf)
		cmd.SetArgs([]string{path})
		require.NoError(t, cmd.Execute())

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		require.Equal(t, "ok", resp.Status)
		return resp.Data.(map[string]any)["block_hash"].(string)
	}

	hashA := hashFor(pathA)
	hashB := hashFor(pathB)
	require.Len(t, hashA, 16)
	assert.Equal(t, hashA, hashB)
}

func TestHashMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewHashCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/tree.json"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, buf.String(), "E003")
}
