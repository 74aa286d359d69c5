package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"prflow.dev/prflow/internal/tickets"
)

func TestBuildTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ids    tickets.Result
		source string
		target string
		suffix string
		want   string
	}{
		{
			name:   "no tickets omits brackets",
			source: "feature/x",
			target: "develop",
			want:   "[feature/x] -> [develop]",
		},
		{
			name:   "ticket and suffix",
			ids:    tickets.Result{"PROJ-1"},
			source: "feature/x",
			target: "develop",
			suffix: "Add widget",
			want:   "[PROJ-1][feature/x] -> [develop] Add widget",
		},
		{
			name:   "tickets keep extraction order",
			ids:    tickets.Result{"PROJ-2", "PROJ-1"},
			source: "feature/x",
			target: "develop",
			want:   "[PROJ-2][PROJ-1][feature/x] -> [develop]",
		},
		{
			name:   "blank suffix is ignored",
			source: "hotfix/A-1",
			target: "main",
			suffix: "   ",
			want:   "[hotfix/A-1] -> [main]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BuildTitle(tt.ids, tt.source, tt.target, tt.suffix)
			require.Equal(t, tt.want, got)
			require.Equal(t, got, BuildTitle(tt.ids, tt.source, tt.target, tt.suffix))
		})
	}
}

func TestBuildDescription(t *testing.T) {
	t.Parallel()

	base := "https://jira.example.com/browse/"

	t.Run("no commits is blank", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", BuildDescription(nil, base, tickets.Result{"PROJ-1"}))
		require.Equal(t, "", BuildDescription([]string{" ", ""}, base, nil))
	})

	t.Run("commits only", func(t *testing.T) {
		t.Parallel()
		got := BuildDescription([]string{"Add widget", "Fix typo"}, base, nil)
		require.Equal(t, "- Add widget\n- Fix typo", got)
	})

	t.Run("commits with ticket links", func(t *testing.T) {
		t.Parallel()
		got := BuildDescription([]string{"Add widget"}, base, tickets.Result{"PROJ-1", "PROJ-2"})
		want := "- Add widget\n\n" +
			"[PROJ-1](https://jira.example.com/browse/PROJ-1)\n" +
			"[PROJ-2](https://jira.example.com/browse/PROJ-2)"
		require.Equal(t, want, got)
		require.Equal(t, got, BuildDescription([]string{"Add widget"}, base, tickets.Result{"PROJ-1", "PROJ-2"}))
	})
}

func TestSuggestTitle(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"feature/PROJ-123-some-fix":       "Some Fix",
		"feature/proj-1-PROJ-2_add_cache": "Add Cache",
		"hotfix/PROJ-9/login-crash":       "Login Crash",
		"cleanup":                         "Cleanup",
		"feature/PROJ-7":                  "",
	}
	for in, want := range tests {
		require.Equal(t, want, SuggestTitle(in), in)
	}
}

func TestReleaseSection(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[Sprint 42](https://t/rel/42)", ReleaseSection("Sprint 42", "https://t/rel/42"))
	require.Equal(t, "Sprint 42", ReleaseSection("Sprint 42", ""))
	require.Equal(t, "https://t/rel/42", ReleaseSection("", "https://t/rel/42"))
	require.Equal(t, "None", ReleaseSection(" ", ""))
}

func TestRenderBody(t *testing.T) {
	t.Parallel()

	t.Run("without checklist", func(t *testing.T) {
		t.Parallel()
		got := RenderBody(BodyInput{Tickets: "[A-1](b/A-1)", Description: "- thing"})
		require.Equal(t, "**JIRA Ticket/Release:**\n[A-1](b/A-1)\n\n<br>**Description:**\n- thing", got)
	})

	t.Run("empty tickets render None", func(t *testing.T) {
		t.Parallel()
		got := RenderBody(BodyInput{})
		require.Equal(t, "**JIRA Ticket/Release:**\nNone\n\n<br>**Description:**\n", got)
	})

	t.Run("checklist block", func(t *testing.T) {
		t.Parallel()
		got := RenderBody(BodyInput{Tickets: "None", Description: "x", ChecklistURL: "https://wiki/pr"})
		require.Contains(t, got, "<br>**Checklist:**\n\nRefer to the checklist [here](https://wiki/pr)\n\n- [ ] Checklist covered")
	})
}
