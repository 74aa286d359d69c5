package actions

import (
	"errors"
	"fmt"

	"prflow.dev/prflow/internal/engine"
	"prflow.dev/prflow/internal/github"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/wire"
)

// existingPRReason is reported for targets that already have an open pull request
const existingPRReason = "PR already exists"

// errSomeTargetsFailed is returned when at least one pull request could not be created
var errSomeTargetsFailed = errors.New("some pull requests could not be created")

// HeadlessAction creates a pull request for every target without prompting
func HeadlessAction(ctx *runtime.Context, opts PROptions) error {
	rec := &wire.CreateResult{}
	return writeRecord(ctx, rec, createAll(ctx, opts, rec))
}

func createAll(ctx *runtime.Context, opts PROptions, rec *wire.CreateResult) error {
	p, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	gh, err := ctx.GitHub()
	if err != nil {
		return err
	}

	users, teams := resolveReviewers(ctx, gh, p.plan.Drafts[0].Reviewers, false)

	rec.Success = true
	for _, draft := range p.plan.Drafts {
		result := createDraft(ctx, gh, p.source, draft, users, teams)
		if result.Error != "" {
			rec.Success = false
		}
		rec.Results = append(rec.Results, result)
	}
	if !rec.Success {
		return errSomeTargetsFailed
	}
	return nil
}

// createDraft opens the pull request for draft unless one is already open
func createDraft(ctx *runtime.Context, gh github.Client, source string, draft engine.Draft, users, teams []string) wire.TargetResult {
	result := wire.TargetResult{Target: draft.Target}

	existing, err := gh.FindOpenPullRequests(ctx.Context, source, draft.Target)
	if err != nil {
		ctx.Splog.Warn("Failed to check for existing PRs: %v", err)
	}
	if len(existing) > 0 {
		ctx.Splog.Info("A PR already exists for %s -> %s: %s", source, draft.Target, existing[0].HTMLURL)
		result.Skipped = true
		result.Reason = existingPRReason
		result.URL = existing[0].HTMLURL
		return result
	}

	pr, err := gh.CreatePullRequest(ctx.Context, github.CreatePROptions{
		Title:         draft.Title,
		Body:          draft.Body,
		Head:          source,
		Base:          draft.Target,
		Reviewers:     users,
		TeamReviewers: teams,
	})
	if pr != nil {
		result.URL = pr.HTMLURL
	}
	switch {
	case errors.Is(err, github.ErrReviewersNotRequested):
		ctx.Splog.Warn("%v", err)
	case err != nil:
		result.Error = fmt.Sprintf("failed to create PR for %s: %v", draft.Target, err)
		ctx.Splog.Error("%s", result.Error)
	}
	return result
}
