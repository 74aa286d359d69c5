package actions

import (
	"errors"
	"fmt"

	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/engine"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/strategy"
	"prflow.dev/prflow/internal/tickets"
	"prflow.dev/prflow/internal/wire"
)

// authorHistoryLimit bounds the commits scanned for reviewer candidates
const authorHistoryLimit = 1000

// PROptions carries the pull request inputs shared by the non-interactive flows
type PROptions struct {
	// Source defaults to the current branch
	Source string
	// Targets override any strategy suggestion
	Targets []string
	// Title is the descriptive suffix of the title
	Title string
	// Body replaces the commit-derived description
	Body      string
	Reviewers []string
	Tickets   []string
	// Strategy suggests targets when none are given; empty means Manual
	Strategy string
}

// prepared is the composed state shared by preview and create
type prepared struct {
	source     string
	strategy   strategy.Strategy
	resolution engine.Resolution
	plan       engine.Plan
}

// parseStrategy treats an empty value as Manual
func parseStrategy(value string) (strategy.Strategy, error) {
	if value == "" {
		return strategy.Manual, nil
	}
	return strategy.Parse(value)
}

// ensureRepo fails with ErrNotGitRepo outside a work tree
func ensureRepo(ctx *runtime.Context) error {
	if !ctx.Git.IsRepo(ctx.Context) {
		return prerrors.ErrNotGitRepo
	}
	return nil
}

// sourceBranch returns explicit, or the current branch when it is empty
func sourceBranch(ctx *runtime.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	branch, err := ctx.Git.CurrentBranch(ctx.Context)
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return branch, nil
}

// remoteBranches lists the remote branches, logging rather than failing
func remoteBranches(ctx *runtime.Context) []string {
	branches, err := ctx.Git.RemoteBranches(ctx.Context, ctx.Config.RemoteName())
	if err != nil {
		ctx.Splog.Debug("failed to list remote branches: %v", err)
		return []string{}
	}
	return branches
}

// commitSubjects lists the commits of source missing from target, logging rather than failing
func commitSubjects(ctx *runtime.Context, target, source string) []string {
	commits, err := ctx.Git.CommitSubjects(ctx.Context, ctx.Config.RemoteName(), target, source)
	if err != nil {
		ctx.Splog.Debug("failed to list commits between %s and %s: %v", target, source, err)
		return []string{}
	}
	return commits
}

func extractor(ctx *runtime.Context) *tickets.Extractor {
	return tickets.NewExtractor(ctx.Config.JiraProjectKeys...)
}

// prepare resolves the targets and drafts every pull request for opts
func prepare(ctx *runtime.Context, opts PROptions) (*prepared, error) {
	s, err := parseStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}
	if err := ensureRepo(ctx); err != nil {
		return nil, err
	}
	source, err := sourceBranch(ctx, opts.Source)
	if err != nil {
		return nil, err
	}

	var available []string
	if len(opts.Targets) == 0 && s != strategy.Manual {
		available = remoteBranches(ctx)
	}
	res, err := engine.ResolveTargets(engine.TargetRequest{
		Strategy:      s,
		Current:       source,
		Available:     available,
		DefaultTarget: ctx.Config.DefaultTarget(),
		Chosen:        opts.Targets,
	})
	if err != nil {
		return nil, err
	}
	ctx.Splog.Debug("targets for %s (%s): %v", source, s, res.Targets)

	var commits []string
	if opts.Body == "" {
		commits = commitSubjects(ctx, res.Targets[0], source)
	}

	plan := engine.Compose(engine.ComposeRequest{
		Source:         source,
		Targets:        res.Targets,
		TicketInput:    opts.Tickets,
		TitleSuffix:    opts.Title,
		Commits:        commits,
		Description:    opts.Body,
		LinkBase:       ctx.Config.TicketBaseURL(),
		ChecklistURL:   ctx.Config.Checklist(),
		Extractor:      extractor(ctx),
		Reviewers:      opts.Reviewers,
		ReviewerGroups: ctx.Config.ReviewerGroups,
	})

	return &prepared{source: source, strategy: s, resolution: res, plan: plan}, nil
}

// writeRecord attaches err to rec, writes it to stdout and marks err as reported
func writeRecord(ctx *runtime.Context, rec wire.Record, err error) error {
	wire.Fail(rec, err)
	if werr := wire.Write(ctx.Stdout, rec); werr != nil {
		return errors.Join(err, werr)
	}
	return wire.Reported(err)
}
