package reviewers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		authors []string
		self    string
		want    []Candidate
	}{
		{
			name:    "stable tie break by first occurrence",
			authors: []string{"a", "b", "a", "c", "a"},
			want:    []Candidate{{"a", 3}, {"b", 1}, {"c", 1}},
		},
		{
			name:    "later author overtakes on count",
			authors: []string{"c", "b", "b", "a", "b", "c"},
			want:    []Candidate{{"b", 3}, {"c", 2}, {"a", 1}},
		},
		{
			name:    "self excluded",
			authors: []string{"me", "a", "me", "me"},
			self:    "me",
			want:    []Candidate{{"a", 1}},
		},
		{
			name:    "case sensitive names",
			authors: []string{"Ann", "ann"},
			want:    []Candidate{{"Ann", 1}, {"ann", 1}},
		},
		{
			name: "empty input",
			want: []Candidate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Rank(tt.authors, tt.self))
		})
	}
}

func TestNames(t *testing.T) {
	t.Parallel()
	require.Equal(t, []string{"a", "b"}, Names([]Candidate{{"a", 2}, {"b", 1}}))
	require.Empty(t, Names(nil))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	authors := []string{
		"Jane Doe <jane@example.com>",
		"octocat",
		"dependabot[bot] <support@github.com>",
		"Bob <bob@example.com>",
	}
	got := Filter(authors, Exclusions{
		Email:   "jane@example.com",
		Handle:  "OctoCat",
		Ignored: []string{"[bot]", ""},
	})
	require.Equal(t, []string{"Bob <bob@example.com>"}, got)
	require.Equal(t, authors, Filter(authors, Exclusions{}))
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Jane Doe <jane@example.com>": "jane@example.com",
		"jane@example.com":            "jane@example.com",
		"Jane Doe":                    "",
		"Broken <":                    "",
		"":                            "",
	}
	for in, want := range tests {
		require.Equal(t, want, Email(in), in)
	}
}

func TestExpandGroups(t *testing.T) {
	t.Parallel()

	groups := map[string][]string{
		"backend": {"alice", "bob"},
	}
	got := ExpandGroups([]string{"carol", "backend", "bob", " "}, groups)
	require.Equal(t, []string{"carol", "alice", "bob"}, got)
}
