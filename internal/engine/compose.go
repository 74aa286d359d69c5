package engine

import (
	"strings"

	"prflow.dev/prflow/internal/metadata"
	"prflow.dev/prflow/internal/reviewers"
	"prflow.dev/prflow/internal/tickets"
)

// Compose drafts one pull request per target. The description and ticket
// block are shared; only the title differs between targets.
func Compose(req ComposeRequest) Plan {
	extractor := req.Extractor
	if extractor == nil {
		extractor = tickets.NewExtractor()
	}
	ids := extractor.ExtractAll(append([]string{req.Source}, req.TicketInput...)...)

	section := req.TicketSection
	if section == "" {
		input := req.TicketInput
		if len(input) == 0 {
			input = ids.Strings()
		}
		section = extractor.Section(input, req.LinkBase)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = metadata.Bullets(req.DescriptionLines)
	}
	if description == "" {
		description = metadata.BuildDescription(req.Commits, req.LinkBase, ids)
	}

	body := metadata.RenderBody(metadata.BodyInput{
		Tickets:      section,
		Description:  description,
		ChecklistURL: req.ChecklistURL,
	})
	chosen := reviewers.ExpandGroups(req.Reviewers, req.ReviewerGroups)

	plan := Plan{
		Tickets:       ids,
		Description:   description,
		TicketSection: section,
		Candidates:    reviewers.Rank(reviewers.Filter(req.Authors, req.Exclusions), req.Self),
	}
	for _, target := range req.Targets {
		plan.Drafts = append(plan.Drafts, Draft{
			Target:    target,
			Title:     metadata.BuildTitle(ids, req.Source, target, req.TitleSuffix),
			Body:      body,
			Reviewers: chosen,
		})
	}
	return plan
}

// PR returns the metadata drafted for target
func (p Plan) PR(target string) (metadata.PR, bool) {
	for _, d := range p.Drafts {
		if d.Target == target {
			return metadata.PR{Title: d.Title, Description: p.Description, Tickets: p.Tickets}, true
		}
	}
	return metadata.PR{}, false
}
