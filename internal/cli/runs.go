package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restitch/restitch/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	DBPath string
	Doc    string
	Limit  int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Inspect the reconciliation run log",
		Long: `List recorded reconciliation runs, newest first, or show a single run
by id. Runs are written by "reconcile --db".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runRuns(opts, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "run log database path (required)")
	cmd.Flags().StringVar(&opts.Doc, "doc", "", "only list runs for this document id")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RunsOptions, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return reportError(formatter, ErrCodeStoreFailed,
			WrapExitError(ExitCommandError, fmt.Sprintf("opening run log %s", opts.DBPath), err))
	}
	defer s.Close()

	ctx := cmd.Context()

	if runID != "" {
		run, err := s.GetRun(ctx, runID)
		if errors.Is(err, store.ErrNotFound) {
			return reportError(formatter, ErrCodeRunNotFound,
				NewExitError(ExitCommandError, fmt.Sprintf("run %s not found", runID)))
		}
		if err != nil {
			return reportError(formatter, ErrCodeStoreFailed,
				WrapExitError(ExitCommandError, fmt.Sprintf("loading run %s", runID), err))
		}
		if opts.Format == "json" {
			return formatter.Success(run)
		}
		return formatter.Success(runText(run))
	}

	runs, err := s.ListRuns(ctx, opts.Doc, opts.Limit)
	if err != nil {
		return reportError(formatter, ErrCodeStoreFailed,
			WrapExitError(ExitCommandError, "listing runs", err))
	}
	formatter.VerboseLog("%d run(s) in %s", len(runs), opts.DBPath)

	if opts.Format == "json" {
		return formatter.Success(runs)
	}
	if len(runs) == 0 {
		return formatter.Success("no runs recorded")
	}
	for _, run := range runs {
		if err := formatter.Success(runText(run)); err != nil {
			return err
		}
	}
	return nil
}

func runText(run *store.Run) string {
	meta := "meta unchanged"
	if run.MetaChanged {
		meta = "meta replaced"
	}
	return fmt.Sprintf("#%d %s doc=%s merged=%s blocks %d/%d/%d %s",
		run.Seq, run.ID, run.Doc, run.MergedHash,
		run.Stats.BlocksKept, run.Stats.BlocksReplaced, run.Stats.BlocksRecursed,
		meta,
	)
}
