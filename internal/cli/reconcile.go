package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/metadata"
	"github.com/restitch/restitch/internal/reconcile"
	"github.com/restitch/restitch/internal/store"
)

// ReconcileOptions holds flags for the reconcile command.
type ReconcileOptions struct {
	*RootOptions
	Output string // merged tree output path ("" = stdout)
	DBPath string // run log database; empty disables logging
	Doc    string // document id for the run log (defaults to the original path)
	Schema string // CUE schema for metadata validation
}

// ReconcileSummary is the success payload.
type ReconcileSummary struct {
	Doc             string          `json:"doc"`
	OriginalHash    string          `json:"original_hash"`
	TransformedHash string          `json:"transformed_hash"`
	MergedHash      string          `json:"merged_hash"`
	MetaChanged     bool            `json:"meta_changed"`
	Stats           reconcile.Stats `json:"stats"`
	Output          string          `json:"output,omitempty"`
	RunID           string          `json:"run_id,omitempty"`
}

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReconcileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reconcile <original-tree> <transformed-tree>",
		Short: "Merge a transformed tree back onto its original",
		Long: `Merge a transformed-then-reparsed document tree with the original parse.

Nodes whose content survived the transform keep the original tree's
provenance; new or altered nodes carry the transformed tree's. The
merged tree is written as interchange JSON.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "merged tree output path (default stdout)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "run log database path (disabled when empty)")
	cmd.Flags().StringVar(&opts.Doc, "doc", "", "document id for the run log (default: original path)")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema to validate transformed metadata against")

	return cmd
}

func runReconcile(opts *ReconcileOptions, originalPath, transformedPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	original, err := LoadTree(originalPath)
	if err != nil {
		return reportError(formatter, ErrCodeReadFailed, err)
	}
	transformed, err := LoadTree(transformedPath)
	if err != nil {
		return reportError(formatter, ErrCodeReadFailed, err)
	}
	formatter.VerboseLog("loaded %d original and %d transformed blocks",
		len(original.Blocks), len(transformed.Blocks))

	if opts.Schema != "" {
		if err := validateMeta(transformed.Meta, opts.Schema); err != nil {
			return reportError(formatter, ErrCodeSchemaInvalid, err)
		}
		formatter.VerboseLog("transformed metadata passed schema %s", opts.Schema)
	}

	// Hashes and the metadata verdict must be taken before Reconcile
	// consumes both trees.
	originalHash := treeHashHex(original.Blocks)
	transformedHash := treeHashHex(transformed.Blocks)
	metaChanged := metadata.Changed(original.Meta, transformed.Meta)

	merged, plan := reconcile.Reconcile(original, transformed)

	summary := &ReconcileSummary{
		Doc:             opts.Doc,
		OriginalHash:    originalHash,
		TransformedHash: transformedHash,
		MergedHash:      treeHashHex(merged.Blocks),
		MetaChanged:     metaChanged,
		Stats:           plan.Stats,
		Output:          opts.Output,
	}
	if summary.Doc == "" {
		summary.Doc = originalPath
	}

	mergedJSON, err := doctree.MarshalDocument(merged)
	if err != nil {
		return reportError(formatter, ErrCodeGeneric,
			WrapExitError(ExitCommandError, "encoding merged tree", err))
	}

	if opts.DBPath != "" {
		runID, err := recordRun(cmd.Context(), opts.DBPath, summary, merged.Meta)
		if err != nil {
			return reportError(formatter, ErrCodeStoreFailed, err)
		}
		summary.RunID = runID
		formatter.VerboseLog("recorded run %s in %s", runID, opts.DBPath)
	}

	if opts.Output == "" {
		// Merged tree is the primary output; the summary stays on
		// stderr so stdout remains valid JSON.
		fmt.Fprintln(cmd.OutOrStdout(), string(mergedJSON))
		formatter.VerboseLog("%s", summaryText(summary))
		return nil
	}

	if err := os.WriteFile(opts.Output, append(mergedJSON, '\n'), 0o644); err != nil {
		return reportError(formatter, ErrCodeWriteFailed,
			WrapExitError(ExitCommandError, fmt.Sprintf("writing merged tree to %s", opts.Output), err))
	}

	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	return formatter.Success(summaryText(summary))
}

func summaryText(s *ReconcileSummary) string {
	meta := "metadata unchanged"
	if s.MetaChanged {
		meta = "metadata replaced"
	}
	return fmt.Sprintf(
		"reconciled %s: blocks %d kept / %d replaced / %d recursed, inlines %d kept / %d replaced / %d recursed, %s",
		s.Doc,
		s.Stats.BlocksKept, s.Stats.BlocksReplaced, s.Stats.BlocksRecursed,
		s.Stats.InlinesKept, s.Stats.InlinesReplaced, s.Stats.InlinesRecursed,
		meta,
	)
}

// recordRun appends the run to the log database.
func recordRun(ctx context.Context, dbPath string, summary *ReconcileSummary, mergedMeta doctree.Meta) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return "", WrapExitError(ExitCommandError, fmt.Sprintf("opening run log %s", dbPath), err)
	}
	defer s.Close()

	digest, err := metadata.Digest(mergedMeta)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "computing metadata digest", err)
	}

	run := &store.Run{
		Doc:             summary.Doc,
		OriginalHash:    summary.OriginalHash,
		TransformedHash: summary.TransformedHash,
		MergedHash:      summary.MergedHash,
		MetaDigest:      digest,
		MetaChanged:     summary.MetaChanged,
		Stats:           summary.Stats,
	}
	if err := s.RecordRun(ctx, run); err != nil {
		return "", WrapExitError(ExitCommandError, "recording run", err)
	}
	return run.ID, nil
}

// treeHashHex formats the structural hash of a block sequence.
func treeHashHex(blocks []doctree.Block) string {
	return fmt.Sprintf("%016x", reconcile.NewHasher().HashBlocks(blocks))
}

// reportError prints the error through the formatter and returns it
// so Execute exits with the error's code.
func reportError(formatter *OutputFormatter, code string, err error) error {
	_ = formatter.Error(code, err.Error(), nil)
	return err
}
