package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"prflow.dev/prflow/internal/reviewers"
	"prflow.dev/prflow/internal/tickets"
)

const linkBase = "https://jira.example.com/browse/"

func TestCompose(t *testing.T) {
	t.Parallel()

	plan := Compose(ComposeRequest{
		Source:      "feature/PROJ-1-add-widget",
		Targets:     []string{"develop", "alpha"},
		TicketInput: []string{"proj-2"},
		TitleSuffix: "Add widget",
		Commits:     []string{"Add widget", "Wire widget"},
		LinkBase:    linkBase,
		Authors:     []string{"bob", "me@example.com", "alice", "bob", "renovate[bot]"},
		Exclusions:  reviewers.Exclusions{Email: "me@example.com", Ignored: []string{"[bot]"}},
		Reviewers:   []string{"team", "carol"},
		ReviewerGroups: map[string][]string{
			"team": {"alice", "bob"},
		},
	})

	require.Equal(t, tickets.Result{"PROJ-1", "PROJ-2"}, plan.Tickets)
	require.Equal(t, []reviewers.Candidate{{Name: "bob", Count: 2}, {Name: "alice", Count: 1}}, plan.Candidates)
	require.Equal(t, "[PROJ-2](https://jira.example.com/browse/PROJ-2)", plan.TicketSection)
	require.Equal(t, "- Add widget\n- Wire widget\n\n"+
		"[PROJ-1](https://jira.example.com/browse/PROJ-1)\n"+
		"[PROJ-2](https://jira.example.com/browse/PROJ-2)", plan.Description)

	require.Len(t, plan.Drafts, 2)
	require.Equal(t, "[PROJ-1][PROJ-2][feature/PROJ-1-add-widget] -> [develop] Add widget", plan.Drafts[0].Title)
	require.Equal(t, "[PROJ-1][PROJ-2][feature/PROJ-1-add-widget] -> [alpha] Add widget", plan.Drafts[1].Title)
	require.Equal(t, plan.Drafts[0].Body, plan.Drafts[1].Body)
	require.Equal(t, []string{"alice", "bob", "carol"}, plan.Drafts[0].Reviewers)

	pr, ok := plan.PR("alpha")
	require.True(t, ok)
	require.Equal(t, plan.Drafts[1].Title, pr.Title)
	_, ok = plan.PR("beta")
	require.False(t, ok)
}

func TestComposeDefaults(t *testing.T) {
	t.Parallel()

	t.Run("branch tickets fill the ticket block", func(t *testing.T) {
		t.Parallel()
		plan := Compose(ComposeRequest{Source: "feature/PROJ-1-x", Targets: []string{"develop"}, LinkBase: linkBase})
		require.Equal(t, "[PROJ-1](https://jira.example.com/browse/PROJ-1)", plan.TicketSection)
		require.Equal(t, "", plan.Description)
		require.Empty(t, plan.Candidates)
	})

	t.Run("no tickets anywhere", func(t *testing.T) {
		t.Parallel()
		plan := Compose(ComposeRequest{Source: "feature/x", Targets: []string{"develop"}})
		require.Equal(t, "None", plan.TicketSection)
		require.Equal(t, "[feature/x] -> [develop]", plan.Drafts[0].Title)
	})

	t.Run("typed description wins over commits", func(t *testing.T) {
		t.Parallel()
		plan := Compose(ComposeRequest{
			Source:           "feature/x",
			Targets:          []string{"develop"},
			Commits:          []string{"wip"},
			DescriptionLines: []string{"Explain the change", ""},
		})
		require.Equal(t, "- Explain the change", plan.Description)
		require.Contains(t, plan.Drafts[0].Body, "<br>**Description:**\n- Explain the change")
	})

	t.Run("free text description is kept verbatim", func(t *testing.T) {
		t.Parallel()
		plan := Compose(ComposeRequest{
			Source:           "feature/x",
			Targets:          []string{"develop"},
			Commits:          []string{"wip"},
			Description:      "Body from the caller\n\nSecond paragraph\n",
			DescriptionLines: []string{"ignored"},
		})
		require.Equal(t, "Body from the caller\n\nSecond paragraph", plan.Description)
	})

	t.Run("release section is kept", func(t *testing.T) {
		t.Parallel()
		plan := Compose(ComposeRequest{
			Source:        "release/1.2.3-a",
			Targets:       []string{"release/1.2.3-b"},
			TicketSection: "[Sprint 4](https://t/rel/4)",
			ChecklistURL:  "https://wiki/pr",
		})
		require.Contains(t, plan.Drafts[0].Body, "**JIRA Ticket/Release:**\n[Sprint 4](https://t/rel/4)")
		require.Contains(t, plan.Drafts[0].Body, "- [ ] Checklist covered")
	})

	t.Run("restricted keys", func(t *testing.T) {
		t.Parallel()
		plan := Compose(ComposeRequest{
			Source:      "feature/OPS-1-FIX-2",
			Targets:     []string{"develop"},
			TicketInput: []string{"OPS-3", "PROJ-9"},
			LinkBase:    "https://t/browse",
			Extractor:   tickets.NewExtractor("OPS"),
		})
		require.Equal(t, tickets.Result{"OPS-1", "OPS-3"}, plan.Tickets)
		require.Contains(t, plan.Drafts[0].Body, "**JIRA Ticket/Release:**\n[OPS-3](https://t/browse/OPS-3)\n")
		require.NotContains(t, plan.Drafts[0].Body, "PROJ-9")
	})
}
