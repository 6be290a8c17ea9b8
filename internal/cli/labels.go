package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slingproj/sling/pkg/label"
	"github.com/slingproj/sling/pkg/yaml"
)

const labelsExamples = `  # Show the labels derived from a workload argument list:
  sling labels -- --learning.rate 0.01 --Deep

  # Everything sanitizes; nothing is rejected:
  sling labels -- --My.Key!! "Some Value"`

func NewLabelsCmd(_ *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:     "labels [-- tokens...]",
		Short:   "Show the sanitized label map derived from workload arguments",
		Example: labelsExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := label.FromArgs(args)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer func() {
				must(enc.Close())
			}()

			err := enc.Encode(labels)
			if err != nil {
				return fmt.Errorf("encode labels: %w", err)
			}

			return nil
		},
	}
}
