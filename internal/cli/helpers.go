package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"prflow.dev/prflow/internal/actions"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/tui"
	"prflow.dev/prflow/internal/wire"
)

// run provides a runtime context to an interactive command
func run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context(), runtime.Options{})
	if err != nil {
		return err
	}
	defer ctx.Close()

	err = fn(ctx)
	if errors.Is(err, tui.ErrCanceled) {
		ctx.Splog.Info("%s", tui.ColorDim("Canceled."))
		return nil
	}
	return err
}

// runJSON provides a runtime context to a command whose stdout carries a
// single record. Errors that were not written by the action are written as
// a failure record so callers always get one line of JSON.
func runJSON(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context(), runtime.Options{JSON: true})
	if err != nil {
		return writeFailure(cmd, err)
	}
	defer ctx.Close()

	err = fn(ctx)
	if err == nil || wire.IsReported(err) {
		return err
	}
	ctx.Splog.Debug("writing failure record: %v", err)
	if werr := wire.Write(ctx.Stdout, wire.NewFailure(err)); werr != nil {
		return errors.Join(err, werr)
	}
	return wire.Reported(err)
}

func writeFailure(cmd *cobra.Command, err error) error {
	if werr := wire.Write(cmd.OutOrStdout(), wire.NewFailure(err)); werr != nil {
		return errors.Join(err, werr)
	}
	return wire.Reported(err)
}

// addPRFlags binds the pull request flags shared by preview and create
func addPRFlags(flags *pflag.FlagSet, opts *actions.PROptions) {
	flags.StringVar(&opts.Source, "source", "", "Source branch. Defaults to the current branch.")
	flags.StringArrayVar(&opts.Targets, "target", nil, "Target branch (can be repeated). Defaults to the strategy suggestion, then the configured default target.")
	flags.StringVar(&opts.Title, "title", "", "Descriptive part of the PR title")
	flags.StringVar(&opts.Body, "body", "", "PR description body. Defaults to the commits missing from the first target.")
	flags.StringArrayVar(&opts.Reviewers, "reviewer", nil, "Reviewer login, git identity, reviewer group or org/team (can be repeated)")
	flags.StringArrayVar(&opts.Tickets, "ticket", nil, "JIRA ticket ID or URL (can be repeated)")
	addStrategyFlag(flags, &opts.Strategy)
	flags.SetNormalizeFunc(legacyFlagNames)
}

func addStrategyFlag(flags *pflag.FlagSet, value *string) {
	flags.StringVar(value, "strategy", "", "Branching strategy used to suggest targets: Release, Hotfix or Manual")
}

// legacyFlagNames accepts the plural flag names of older callers
func legacyFlagNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "reviewers":
		name = "reviewer"
	case "tickets":
		name = "ticket"
	}
	return pflag.NormalizedName(name)
}
