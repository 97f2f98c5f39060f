package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/internal/metadata"
)

// HashSummary carries the structural fingerprints of a tree.
type HashSummary struct {
	Tree       string `json:"tree"`
	BlockHash  string `json:"block_hash"`
	MetaDigest string `json:"meta_digest"`
	Blocks     int    `json:"blocks"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <tree>",
		Short: "Print a tree's structural hash and metadata digest",
		Long: `Print the provenance-blind structural hash of a tree's blocks and the
canonical digest of its metadata.

Two trees with the same hash have the same content even when their
provenance differs, so hashes from different pipeline stages are
directly comparable.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runHash(rootOpts *RootOptions, treePath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	doc, err := LoadTree(treePath)
	if err != nil {
		return reportError(formatter, ErrCodeReadFailed, err)
	}

	digest, err := metadata.Digest(doc.Meta)
	if err != nil {
		return reportError(formatter, ErrCodeGeneric,
			WrapExitError(ExitCommandError, "computing metadata digest", err))
	}

	summary := HashSummary{
		Tree:       treePath,
		BlockHash:  treeHashHex(doc.Blocks),
		MetaDigest: digest,
		Blocks:     len(doc.Blocks),
	}

	if rootOpts.Format == "json" {
		return formatter.Success(summary)
	}
	return formatter.Success(fmt.Sprintf("%s  blocks=%d  meta=%s", summary.BlockHash, summary.Blocks, summary.MetaDigest))
}
