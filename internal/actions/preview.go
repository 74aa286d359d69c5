package actions

import (
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/wire"
)

// PreviewAction writes the title and body of the pull request for the first target
func PreviewAction(ctx *runtime.Context, opts PROptions) error {
	rec := &wire.Preview{Source: opts.Source}
	return writeRecord(ctx, rec, preview(ctx, opts, rec))
}

func preview(ctx *runtime.Context, opts PROptions, rec *wire.Preview) error {
	p, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	draft := p.plan.Drafts[0]
	rec.Source = p.source
	rec.Target = draft.Target
	rec.Title = draft.Title
	rec.Body = draft.Body
	rec.Tickets = p.plan.Tickets.Strings()
	rec.Reviewers = draft.Reviewers
	return nil
}
