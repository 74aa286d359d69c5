package actions

import (
	"fmt"

	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/metadata"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/wire"
)

// DescriptionOptions contains options for the description command
type DescriptionOptions struct {
	// Source defaults to the current branch
	Source string
	Target string
}

// DescriptionAction writes the commit-derived description between two branches
func DescriptionAction(ctx *runtime.Context, opts DescriptionOptions) error {
	rec := &wire.Description{Source: opts.Source, Target: opts.Target}
	return writeRecord(ctx, rec, describe(ctx, opts, rec))
}

func describe(ctx *runtime.Context, opts DescriptionOptions, rec *wire.Description) error {
	if opts.Target == "" {
		return fmt.Errorf("a target branch is required for the description: %w", prerrors.ErrNoTargets)
	}
	if err := ensureRepo(ctx); err != nil {
		return err
	}
	source, err := sourceBranch(ctx, opts.Source)
	if err != nil {
		return err
	}
	rec.Source = source

	commits, err := ctx.Git.CommitSubjects(ctx.Context, ctx.Config.RemoteName(), opts.Target, source)
	if err != nil {
		return err
	}
	rec.Commits = commits
	rec.Description = metadata.BuildDescription(commits, ctx.Config.TicketBaseURL(), extractor(ctx).Extract(source))
	return nil
}
