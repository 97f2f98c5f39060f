package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/internal/doctree"
	"github.com/restitch/restitch/internal/metadata"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Schema string
}

// ValidateSummary reports the outcome of a metadata validation.
type ValidateSummary struct {
	Tree       string   `json:"tree"`
	Schema     string   `json:"schema"`
	MetaDigest string   `json:"meta_digest"`
	Valid      bool     `json:"valid"`
	Issues     []string `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <tree>",
		Short: "Validate a tree's metadata against a CUE schema",
		Long: `Check a document tree's metadata block against a CUE schema.

Exits 0 when the metadata satisfies the schema and 1 when it does not.
Individual schema violations are listed in the output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema file (required)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(opts *ValidateOptions, treePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	doc, err := LoadTree(treePath)
	if err != nil {
		return reportError(formatter, ErrCodeReadFailed, err)
	}

	digest, err := metadata.Digest(doc.Meta)
	if err != nil {
		return reportError(formatter, ErrCodeGeneric,
			WrapExitError(ExitCommandError, "computing metadata digest", err))
	}

	summary := ValidateSummary{
		Tree:       treePath,
		Schema:     opts.Schema,
		MetaDigest: digest,
		Valid:      true,
	}

	if err := validateMeta(doc.Meta, opts.Schema); err != nil {
		var verr *metadata.ValidationError
		if errors.As(err, &verr) {
			summary.Valid = false
			summary.Issues = verr.Issues
			if ferr := formatter.Error(ErrCodeSchemaInvalid, verr.Error(), summary); ferr != nil {
				return ferr
			}
			return NewExitError(ExitFailure, verr.Error())
		}
		return reportError(formatter, ErrCodeSchemaBroken, err)
	}

	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	return formatter.Success(fmt.Sprintf("metadata in %s satisfies %s", treePath, opts.Schema))
}

// validateMeta checks metadata against the CUE schema at schemaPath.
// Schema violations come back as *metadata.ValidationError; anything
// else means the schema itself could not be used.
func validateMeta(meta doctree.Meta, schemaPath string) error {
	schemaSource, err := LoadSchemaFile(schemaPath)
	if err != nil {
		return err
	}
	return metadata.ValidateSchema(meta, schemaSource, schemaPath)
}
