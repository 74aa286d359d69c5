package actions

import (
	"prflow.dev/prflow/internal/metadata"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/strategy"
	"prflow.dev/prflow/internal/wire"
)

// DataOptions contains options for the data command
type DataOptions struct {
	// Strategy adds suggested targets for the current branch when set
	Strategy string
	// Fetch updates the remote branches first
	Fetch bool
}

// DataAction writes the GitData record used to prefill a front end form
func DataAction(ctx *runtime.Context, opts DataOptions) error {
	rec := &wire.GitData{}
	return writeRecord(ctx, rec, collectData(ctx, opts, rec))
}

func collectData(ctx *runtime.Context, opts DataOptions, rec *wire.GitData) error {
	s, err := parseStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	if err := ensureRepo(ctx); err != nil {
		return err
	}

	if opts.Fetch {
		if err := ctx.Git.Fetch(ctx.Context, ctx.Config.RemoteName()); err != nil {
			ctx.Splog.Warn("Failed to fetch %s: %v", ctx.Config.RemoteName(), err)
		}
	}

	rec.RemoteBranches = remoteBranches(ctx)
	rec.Contributors = contributors(ctx)

	current, err := sourceBranch(ctx, "")
	if err != nil {
		return err
	}
	rec.CurrentBranch = current
	rec.SuggestedTickets = extractor(ctx).Extract(current).Strings()
	rec.SuggestedTitle = metadata.SuggestTitle(current)

	if opts.Strategy != "" {
		rec.Strategy = s.String()
		target, err := strategy.Resolve(s, current, rec.RemoteBranches)
		if err != nil {
			return err
		}
		rec.SuggestedTargets = target.Branches
	}
	return nil
}

// contributors lists the repository contributors, empty when GitHub is unavailable
func contributors(ctx *runtime.Context) []string {
	gh, err := ctx.GitHub()
	if err != nil {
		return []string{}
	}
	logins, err := gh.Contributors(ctx.Context)
	if err != nil {
		ctx.Splog.Debug("failed to list contributors: %v", err)
		return []string{}
	}
	return logins
}
