package actions

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"prflow.dev/prflow/internal/engine"
	"prflow.dev/prflow/internal/github"
	"prflow.dev/prflow/internal/metadata"
	"prflow.dev/prflow/internal/reviewers"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/strategy"
	"prflow.dev/prflow/internal/tui"
)

// Ticket prompt choices
const (
	ticketChoiceIDs     = "Enter JIRA ticket IDs"
	ticketChoiceRelease = "Enter JIRA release info"
	ticketChoiceSkip    = "Skip"
)

// InteractiveOptions contains options for the interactive flow
type InteractiveOptions struct {
	// Strategy preselects the strategy prompt
	Strategy string
	// NoFetch skips updating the remote branches
	NoFetch bool
}

// session is the state collected by the interactive flow
type session struct {
	ctx       *runtime.Context
	summary   tui.Summary
	available []string
	req       engine.ComposeRequest
}

// InteractiveAction walks the user through creating pull requests
func InteractiveAction(ctx *runtime.Context, opts InteractiveOptions) error {
	splog := ctx.Splog
	s := &session{ctx: ctx}
	s.header()

	if err := ensureRepo(ctx); err != nil {
		return err
	}
	if !opts.NoFetch {
		if err := ctx.Git.Fetch(ctx.Context, ctx.Config.RemoteName()); err != nil {
			splog.Warn("Failed to fetch %s: %v", ctx.Config.RemoteName(), err)
		}
	}
	s.available = remoteBranches(ctx)
	current, err := sourceBranch(ctx, "")
	if err != nil {
		return err
	}

	chosen, err := s.promptStrategy(opts.Strategy)
	if err != nil {
		return err
	}
	source, targets, err := s.promptTargets(chosen, current)
	if err != nil {
		return err
	}
	s.summary.Source = source
	s.summary.Targets = targets
	s.summary.Strategy = chosen.String()
	s.header()

	s.req = engine.ComposeRequest{
		Source:         source,
		Targets:        targets,
		LinkBase:       ctx.Config.TicketBaseURL(),
		ChecklistURL:   ctx.Config.Checklist(),
		Extractor:      extractor(ctx),
		ReviewerGroups: ctx.Config.ReviewerGroups,
	}

	titleDefault, err := s.promptTickets()
	if err != nil {
		return err
	}
	if err := s.promptTitle(titleDefault); err != nil {
		return err
	}
	if err := s.promptDescription(); err != nil {
		return err
	}

	gh, ghErr := ctx.GitHub()
	if err := s.promptReviewers(gh); err != nil {
		return err
	}

	plan := engine.Compose(s.req)
	s.header()
	splog.Newline()
	splog.Info("%s", tui.ColorCyan(fmt.Sprintf("Ready to create %d Pull Request(s):", len(plan.Drafts))))
	for _, d := range plan.Drafts {
		splog.Info("  -> %s: %s", tui.ColorBranchName(d.Target), d.Title)
	}

	ok, err := ctx.Prompter.Confirm("Create these PRs?", true)
	if err != nil {
		return err
	}
	if !ok {
		splog.Info("%s", tui.ColorRed("Aborted."))
		return nil
	}
	if ghErr != nil {
		splog.Tip("Set %s or run 'gh auth login' so prflow can reach GitHub.", github.EnvToken)
		return ghErr
	}

	users, teams := resolveReviewers(ctx, gh, plan.Drafts[0].Reviewers, true)
	items := make([]tui.CreateItem, 0, len(plan.Drafts))
	for _, d := range plan.Drafts {
		items = append(items, tui.CreateItem{Target: d.Target})
	}
	items, err = tui.RunCreateProgress(items, func(idx int) (string, string, error) {
		r := createDraft(ctx, gh, source, plan.Drafts[idx], users, teams)
		if r.Error != "" {
			return r.URL, "", errors.New(r.Error)
		}
		return r.URL, r.Reason, nil
	}, splog)
	if err != nil {
		return err
	}

	return s.report(items)
}

func (s *session) header() {
	s.ctx.Splog.Page(tui.RenderHeader(s.summary) + "\n")
}

func (s *session) promptStrategy(preset string) (strategy.Strategy, error) {
	options := make([]string, 0, len(strategy.All))
	for _, st := range strategy.All {
		options = append(options, st.String())
	}
	def := strategy.Release.String()
	if preset != "" {
		st, err := strategy.Parse(preset)
		if err != nil {
			return "", err
		}
		def = st.String()
	}
	answer, err := s.ctx.Prompter.Select("Branching strategy?", options, def)
	if err != nil {
		return "", err
	}
	return strategy.Parse(answer)
}

// promptTargets returns the source branch and the targets, asking for them
// when the strategy is Manual or suggests nothing
func (s *session) promptTargets(st strategy.Strategy, current string) (string, []string, error) {
	ctx := s.ctx
	source := current
	req := engine.TargetRequest{
		Strategy:      st,
		Current:       current,
		Available:     s.available,
		DefaultTarget: ctx.Config.DefaultTarget(),
	}

	if st != strategy.Manual {
		res, err := engine.ResolveTargets(req)
		if err == nil && !res.Fallback {
			target := res.Resolved
			if target.Stage != nil {
				ctx.Splog.Debug("%s matched stage %s", current, target.Stage.Name)
			}
			if !target.Exists {
				ctx.Splog.Warn("Suggested target %s does not exist on %s yet.", strings.Join(res.Targets, ", "), ctx.Config.RemoteName())
			}
			use, err := ctx.Prompter.Confirm(fmt.Sprintf("Use suggested target(s) %s?", strings.Join(res.Targets, ", ")), true)
			if err != nil {
				return "", nil, err
			}
			if use {
				return source, res.Targets, nil
			}
		} else {
			ctx.Splog.Warn("No valid targets determined from strategy. Reverting to manual selection.")
		}
	}

	branches := withBranch(s.available, current)
	if st == strategy.Manual {
		answer, err := ctx.Prompter.Select(fmt.Sprintf("Source branch? (current: %s)", current), branches, current)
		if err != nil {
			return "", nil, err
		}
		source = answer
	}

	def := ctx.Config.DefaultTarget()
	target, err := ctx.Prompter.Select(fmt.Sprintf("Target branch? (default: %s)", def), withBranch(s.available, def), def)
	if err != nil {
		return "", nil, err
	}

	req.Current = source
	req.Chosen = []string{target}
	res, err := engine.ResolveTargets(req)
	if err != nil {
		return "", nil, err
	}
	return source, res.Targets, nil
}

// withBranch returns branches with name added when it is missing
func withBranch(branches []string, name string) []string {
	if name == "" || slices.Contains(branches, name) {
		return branches
	}
	return append([]string{name}, branches...)
}

// promptTickets fills the ticket part of the request and returns the default title suffix
func (s *session) promptTickets() (string, error) {
	ctx := s.ctx
	titleDefault := metadata.SuggestTitle(s.req.Source)

	choice, err := ctx.Prompter.Select("JIRA details?", []string{ticketChoiceIDs, ticketChoiceRelease, ticketChoiceSkip}, ticketChoiceIDs)
	if err != nil {
		return "", err
	}

	switch choice {
	case ticketChoiceIDs:
		lines, err := ctx.Prompter.Lines("JIRA ticket IDs or URLs (e.g. PROJ-123), empty line to finish:")
		if err != nil {
			return "", err
		}
		s.req.TicketInput = lines
	case ticketChoiceRelease:
		title, err := ctx.Prompter.Input("Release title:", "")
		if err != nil {
			return "", err
		}
		url, err := ctx.Prompter.Input("Release URL:", "")
		if err != nil {
			return "", err
		}
		s.req.TicketSection = metadata.ReleaseSection(title, url)
		if titleDefault == "" {
			titleDefault = title
		}
	default:
		s.req.TicketSection = "None"
		titleDefault = ""
	}

	ids := s.req.Extractor.ExtractAll(append([]string{s.req.Source}, s.req.TicketInput...)...)
	s.summary.Tickets = ids.Strings()
	s.header()
	if len(ids) > 0 {
		return "", nil
	}
	return titleDefault, nil
}

func (s *session) promptTitle(def string) error {
	ctx := s.ctx
	preview := engine.Compose(engine.ComposeRequest{
		Source:      s.req.Source,
		Targets:     s.req.Targets[:1],
		TicketInput: s.req.TicketInput,
		Extractor:   s.req.Extractor,
	})
	ctx.Splog.Info("%s", tui.ColorGreen("Default title: " + preview.Drafts[0].Title))
	if len(s.req.Targets) > 1 {
		ctx.Splog.Info("%s", tui.ColorGreen(fmt.Sprintf("(Will be applied to %d targets)", len(s.req.Targets))))
	}

	suffix, err := ctx.Prompter.Input("Descriptive title (Enter keeps the default)", def)
	if err != nil {
		return err
	}
	s.req.TitleSuffix = suffix
	s.summary.Title = &suffix
	s.header()
	return nil
}

func (s *session) promptDescription() error {
	ctx := s.ctx
	s.req.Commits = commitSubjects(ctx, s.req.Targets[0], s.req.Source)
	generated := metadata.Bullets(s.req.Commits)
	if generated != "" {
		ctx.Splog.Info("Current:\n%s", generated)
	} else {
		ctx.Splog.Info("%s", tui.ColorDim("(No commits found - description will be blank by default)"))
	}

	lines, err := ctx.Prompter.Lines("New description? (empty line keeps the generated one)")
	if err != nil {
		return err
	}
	s.req.DescriptionLines = lines
	s.summary.Description = engine.Compose(s.req).Description
	s.header()
	return nil
}

// promptReviewers offers reviewer groups, ranked commit authors and GitHub
// contributors, excluding the current user and ignored authors
func (s *session) promptReviewers(gh github.Client) error {
	ctx := s.ctx

	authors, err := ctx.Git.Authors(ctx.Context, authorHistoryLimit)
	if err != nil {
		ctx.Splog.Debug("failed to read authors: %v", err)
	}
	email, _ := ctx.Git.UserEmail(ctx.Context)
	var handle string
	var logins []string
	if gh != nil {
		if handle, err = gh.CurrentUser(ctx.Context); err != nil {
			ctx.Splog.Debug("failed to get current user: %v", err)
		}
		if logins, err = gh.Contributors(ctx.Context); err != nil {
			ctx.Splog.Debug("failed to list contributors: %v", err)
		}
	}

	s.req.Authors = authors
	s.req.Self = handle
	s.req.Exclusions = reviewers.Exclusions{Email: email, Handle: handle, Ignored: ctx.Config.IgnoredAuthors}
	candidates := engine.Compose(s.req).Candidates

	groups := make([]string, 0, len(ctx.Config.ReviewerGroups))
	for name := range ctx.Config.ReviewerGroups {
		groups = append(groups, name)
	}
	sort.Strings(groups)

	options := append(groups, reviewers.Names(candidates)...)
	for _, login := range reviewers.Filter(logins, s.req.Exclusions) {
		if !slices.Contains(options, login) {
			options = append(options, login)
		}
	}
	if len(options) == 0 {
		ctx.Splog.Warn("Could not find authors in git log.")
		return nil
	}
	ctx.Splog.Info("%s", tui.ColorGreen(fmt.Sprintf("Found %d authors in history.", len(candidates))))

	selected, err := ctx.Prompter.MultiSelect("Who are the reviewers?", options, nil)
	if err != nil {
		return err
	}
	s.req.Reviewers = selected
	s.summary.Reviewers = reviewers.ExpandGroups(selected, ctx.Config.ReviewerGroups)
	return nil
}

// report prints the created pull requests
func (s *session) report(items []tui.CreateItem) error {
	splog := s.ctx.Splog
	created := 0
	failed := 0
	for _, item := range items {
		switch item.Status {
		case tui.StatusDone:
			created++
		case tui.StatusError:
			failed++
		}
	}

	if created == 0 {
		splog.Info("%s", tui.ColorYellow("No PRs were created."))
	} else {
		s.header()
		if failed == 0 {
			splog.Info("%s", tui.ColorGreen("ALL PULL REQUESTS COMPLETED!"))
		} else {
			splog.Info("%s", tui.ColorYellow(fmt.Sprintf("%d of %d pull requests created:", created, len(items))))
		}
		for _, item := range items {
			if item.Status == tui.StatusDone {
				splog.Info("  %-15s: %s", item.Target, item.URL)
			}
		}
	}
	if failed > 0 {
		return errSomeTargetsFailed
	}
	return nil
}
