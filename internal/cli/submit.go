package cli

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/slingproj/sling/pkg/submit"
)

const submitExamples = `  # Submit every job in the experiment:
  sling submit ./experiment.yaml

  # Preview the submissions without executing anything:
  sling submit ./experiment.yaml --dry-run

  # Append extra workload arguments to every job:
  sling submit ./experiment.yaml -- --epochs 100 --fast`

type SubmitArgs struct {
	*RootArgs

	ConfigPath string
	Dir        string
	ExtraArgs  []string
	DryRun     bool
}

func NewSubmitArgs(rootArgs *RootArgs) *SubmitArgs {
	return &SubmitArgs{
		RootArgs: rootArgs,
	}
}

func (sa *SubmitArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&sa.DryRun, "dry-run", false, "Plan the batch without executing the scheduler command")
	cmd.Flags().StringVar(&sa.Dir, "dir", "", "Working directory for the scheduler command")

	err := cmd.MarkFlagDirname("dir")
	if err != nil {
		panic(fmt.Errorf("mark dir flag: %w", err))
	}
}

func NewSubmitCmd(rootArgs *RootArgs) *cobra.Command {
	sa := NewSubmitArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "submit <config> [-- args...]",
		Short:   "Expand the experiment and submit every job",
		Example: submitExamples,
		Args:    argsWithDash(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sa.ConfigPath, sa.ExtraArgs = splitDashArgs(cmd, args)

			return runSubmit(cmd, sa)
		},
	}
	sa.AddFlags(cmd)

	return cmd
}

func runSubmit(cmd *cobra.Command, sa *SubmitArgs) error {
	e, err := loadExperiment(sa.ConfigPath)
	if err != nil {
		return err
	}

	jobs := submit.Plan(e, sa.ExtraArgs...)

	slog.Info("starting batch",
		slog.String("experiment", e.Name),
		slog.String("jobs", humanize.Comma(int64(len(jobs)))),
		slog.Bool("dry_run", sa.DryRun),
	)

	runner := submit.NewRunner(*e.Submit,
		submit.WithDir(sa.Dir),
		submit.WithDryRun(sa.DryRun),
	)

	results, err := runner.Run(cmd.Context(), jobs)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	slog.Info("batch complete",
		slog.String("experiment", e.Name),
		slog.Int("submitted", len(results)),
	)

	return nil
}
