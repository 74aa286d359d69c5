package cli

import (
	"github.com/spf13/cobra"

	"prflow.dev/prflow/internal/actions"
	"prflow.dev/prflow/internal/runtime"
)

// newCreateCmd creates the create command
func newCreateCmd() *cobra.Command {
	var opts actions.PROptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pull request for every target without prompting",
		Long: `Create a pull request from the source branch into every target without prompting.

Targets that already have an open pull request from the source are skipped.
The outcome of every target is printed as a single JSON record.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJSON(cmd, func(ctx *runtime.Context) error {
				return actions.HeadlessAction(ctx, opts)
			})
		},
	}

	addPRFlags(cmd.Flags(), &opts)

	return cmd
}
