package cli

import (
	"github.com/spf13/cobra"

	"prflow.dev/prflow/internal/actions"
	"prflow.dev/prflow/internal/runtime"
)

// newDescriptionCmd creates the description command
func newDescriptionCmd() *cobra.Command {
	var opts actions.DescriptionOptions

	cmd := &cobra.Command{
		Use:          "description",
		Short:        "Print the commit-derived description between two branches as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJSON(cmd, func(ctx *runtime.Context) error {
				return actions.DescriptionAction(ctx, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "Source branch. Defaults to the current branch.")
	cmd.Flags().StringVar(&opts.Target, "target", "", "Target branch the commits are compared against")

	return cmd
}
