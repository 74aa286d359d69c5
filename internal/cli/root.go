package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"prflow.dev/prflow/internal/actions"
	"prflow.dev/prflow/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var (
		opts    actions.PROptions
		noFetch bool

		getData        bool
		getDescription bool
		getPreview     bool
		headless       bool
	)

	rootCmd := &cobra.Command{
		Use:   "prflow",
		Short: "Create pull requests with consistent titles, descriptions and reviewers",
		Long: `prflow creates GitHub pull requests from the current branch.

Run without a subcommand to be walked through picking a branching strategy,
targets, JIRA tickets, a title, a description and reviewers. The data,
description, preview and create subcommands print a single JSON record
for front ends that run prflow as a subprocess.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case getData:
				return runJSON(cmd, func(ctx *runtime.Context) error {
					return actions.DataAction(ctx, actions.DataOptions{Strategy: opts.Strategy})
				})
			case getDescription:
				return runJSON(cmd, func(ctx *runtime.Context) error {
					return actions.DescriptionAction(ctx, actions.DescriptionOptions{
						Source: opts.Source,
						Target: firstOrEmpty(opts.Targets),
					})
				})
			case getPreview:
				return runJSON(cmd, func(ctx *runtime.Context) error {
					return actions.PreviewAction(ctx, opts)
				})
			case headless:
				return runJSON(cmd, func(ctx *runtime.Context) error {
					return actions.HeadlessAction(ctx, opts)
				})
			}
			return run(cmd, func(ctx *runtime.Context) error {
				return actions.InteractiveAction(ctx, actions.InteractiveOptions{
					Strategy: opts.Strategy,
					NoFetch:  noFetch,
				})
			})
		},
	}

	flags := rootCmd.Flags()
	addPRFlags(flags, &opts)
	flags.BoolVar(&noFetch, "no-fetch", false, "Do not fetch the remote before listing branches")

	flags.BoolVar(&getData, "get-data", false, "Print the repository data record")
	flags.BoolVar(&getDescription, "get-description", false, "Print the description record for --source and --target")
	flags.BoolVar(&getPreview, "get-preview", false, "Print the preview record")
	flags.BoolVar(&headless, "headless", false, "Create the pull requests without prompting")
	rootCmd.MarkFlagsMutuallyExclusive("get-data", "get-description", "get-preview", "headless")
	for _, name := range []string{"get-data", "get-description", "get-preview", "headless", "source", "target", "title", "body", "reviewer", "ticket"} {
		_ = flags.MarkHidden(name)
	}

	rootCmd.AddCommand(newDataCmd())
	rootCmd.AddCommand(newDescriptionCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newStrategiesCmd())

	return rootCmd
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
