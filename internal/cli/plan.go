package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/internal/reconcile"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Output string
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan <original-tree> <transformed-tree>",
		Short: "Compute a reconciliation plan without applying it",
		Long: `Compute the alignment plan for a document pair and print it as JSON.

The plan records, per transformed child, whether the original node is
kept, the transformed node is taken, or the pair recurses. Nothing is
merged; both input trees are left untouched.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "plan output path (default stdout)")

	return cmd
}

func runPlan(opts *PlanOptions, originalPath, transformedPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	original, err := LoadTree(originalPath)
	if err != nil {
		return reportError(formatter, ErrCodeReadFailed, err)
	}
	transformed, err := LoadTree(transformedPath)
	if err != nil {
		return reportError(formatter, ErrCodeReadFailed, err)
	}

	plan := reconcile.Compute(original, transformed)
	formatter.VerboseLog("plan: %d alignments, stats %+v", len(plan.Alignments), plan.Stats)

	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return reportError(formatter, ErrCodeGeneric,
			WrapExitError(ExitCommandError, "encoding plan", err))
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, append(planJSON, '\n'), 0o644); err != nil {
			return reportError(formatter, ErrCodeWriteFailed,
				WrapExitError(ExitCommandError, fmt.Sprintf("writing plan to %s", opts.Output), err))
		}
		return formatter.Success(fmt.Sprintf("plan written to %s", opts.Output))
	}

	if opts.Format == "json" {
		return formatter.Success(plan)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(planJSON))
	return nil
}
