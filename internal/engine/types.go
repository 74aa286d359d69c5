package engine

import (
	"prflow.dev/prflow/internal/reviewers"
	"prflow.dev/prflow/internal/strategy"
	"prflow.dev/prflow/internal/tickets"
)

// TargetRequest holds the inputs of target resolution
type TargetRequest struct {
	Strategy strategy.Strategy
	// Current is the source branch
	Current string
	// Available are the remote branch names without the remote prefix
	Available []string
	// DefaultTarget is used when the strategy suggests nothing
	DefaultTarget string
	// Chosen are targets picked by the user; they win over any suggestion
	Chosen []string
}

// Resolution is the outcome of target resolution
type Resolution struct {
	// Targets are the branches to open pull requests against, in order
	Targets  []string
	Resolved strategy.Target
	// Fallback is true when the default target was used
	Fallback bool
}

// ComposeRequest holds everything needed to draft the pull requests
type ComposeRequest struct {
	Source  string
	Targets []string
	// TicketInput are the raw ids or URLs typed by the user
	TicketInput []string
	// TicketSection replaces the rendered ticket block, e.g. for a release link
	TicketSection string
	TitleSuffix   string
	// Commits are the subjects between the first target and the source
	Commits []string
	// Description is used as is when set
	Description string
	// DescriptionLines replace the commit-derived description when set
	DescriptionLines []string
	LinkBase         string
	ChecklistURL     string
	// Extractor restricts ticket keys; nil accepts every key
	Extractor *tickets.Extractor

	Authors    []string
	Self       string
	Exclusions reviewers.Exclusions
	// Reviewers are the chosen reviewers, possibly naming groups
	Reviewers      []string
	ReviewerGroups map[string][]string
}

// Draft is one pull request ready to be created
type Draft struct {
	Target    string
	Title     string
	Body      string
	Reviewers []string
}

// Plan is the composed result for every target
type Plan struct {
	Tickets     tickets.Result
	Description string
	// TicketSection is the rendered ticket block shared by every body
	TicketSection string
	Candidates    []reviewers.Candidate
	Drafts        []Draft
}
