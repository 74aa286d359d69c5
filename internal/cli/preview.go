package cli

import (
	"github.com/spf13/cobra"

	"prflow.dev/prflow/internal/actions"
	"prflow.dev/prflow/internal/runtime"
)

// newPreviewCmd creates the preview command
func newPreviewCmd() *cobra.Command {
	var opts actions.PROptions

	cmd := &cobra.Command{
		Use:          "preview",
		Short:        "Print the title and body of the pull request for the first target as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJSON(cmd, func(ctx *runtime.Context) error {
				return actions.PreviewAction(ctx, opts)
			})
		},
	}

	addPRFlags(cmd.Flags(), &opts)

	return cmd
}
