package cli

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/slingproj/sling/pkg/config"
	"github.com/slingproj/sling/pkg/expand"
	"github.com/slingproj/sling/pkg/submit"
	"github.com/slingproj/sling/pkg/yaml"
)

const expandExamples = `  # Print the jobs an experiment expands to:
  sling expand ./experiment.yaml

  # Append extra workload arguments before expansion:
  sling expand ./experiment.yaml -- --epochs 100`

type ExpandArgs struct {
	*RootArgs

	ConfigPath string
	ExtraArgs  []string
}

func NewExpandArgs(rootArgs *RootArgs) *ExpandArgs {
	return &ExpandArgs{
		RootArgs: rootArgs,
	}
}

func NewExpandCmd(rootArgs *RootArgs) *cobra.Command {
	ea := NewExpandArgs(rootArgs)

	cmd := &cobra.Command{
		Use:     "expand <config> [-- args...]",
		Short:   "Print the expanded job configurations without submitting",
		Example: expandExamples,
		Args:    argsWithDash(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ea.ConfigPath, ea.ExtraArgs = splitDashArgs(cmd, args)

			return runExpand(cmd, ea)
		},
	}

	return cmd
}

func runExpand(cmd *cobra.Command, ea *ExpandArgs) error {
	e, err := loadExperiment(ea.ConfigPath)
	if err != nil {
		return err
	}

	slog.Debug("planned expansion",
		slog.String("experiment", e.Name),
		slog.String("jobs", humanize.Comma(int64(expand.Count(e.Parameters)))),
	)

	jobs := submit.Plan(e, ea.ExtraArgs...)

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer func() {
		must(enc.Close())
	}()

	for _, job := range jobs {
		err := enc.Encode(job)
		if err != nil {
			return fmt.Errorf("encode job %q: %w", job.Name, err)
		}
	}

	return nil
}

// loadExperiment validates and loads an experiment configuration file.
func loadExperiment(path string) (*config.Experiment, error) {
	cl, err := config.NewLoaderFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	err = cl.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	e, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return e, nil
}

// argsWithDash builds a cobra args validator that allows at most n
// positional arguments before the dash separator.
func argsWithDash(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		dashPos := cmd.ArgsLenAtDash()
		if dashPos == -1 {
			if len(args) != n {
				return fmt.Errorf("accepts %d arg(s), received %d", n, len(args))
			}

			return nil
		}

		if dashPos != n {
			return fmt.Errorf("accepts %d arg(s) before --, received %d", n, dashPos)
		}

		return nil
	}
}

// splitDashArgs returns the config path and the extra arguments after the
// dash separator.
func splitDashArgs(cmd *cobra.Command, args []string) (string, []string) {
	var (
		path  string
		extra []string
	)

	dashPos := cmd.ArgsLenAtDash()
	if dashPos == -1 {
		dashPos = len(args)
	}

	if dashPos > 0 {
		path = args[0]
	}

	extra = args[dashPos:]

	return path, extra
}
