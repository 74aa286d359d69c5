package cli

import (
	"github.com/spf13/cobra"

	"prflow.dev/prflow/internal/actions"
	"prflow.dev/prflow/internal/runtime"
)

// newDataCmd creates the data command
func newDataCmd() *cobra.Command {
	var opts actions.DataOptions

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Print the current branch, remote branches, contributors and suggestions as JSON",
		Long: `Print the repository data used to prefill a pull request form as a single JSON record.

With --strategy, the targets the strategy suggests for the current branch are included.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJSON(cmd, func(ctx *runtime.Context) error {
				return actions.DataAction(ctx, opts)
			})
		},
	}

	addStrategyFlag(cmd.Flags(), &opts.Strategy)
	cmd.Flags().BoolVar(&opts.Fetch, "fetch", false, "Fetch the remote before listing branches")

	return cmd
}
