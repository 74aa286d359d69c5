package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	prerrors "prflow.dev/prflow/internal/errors"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Strategy{
		"Release": Release,
		"hotfix":  Hotfix,
		" MANUAL": Manual,
	} {
		got, err := Parse(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := Parse("Sideways")
	require.ErrorIs(t, err, prerrors.ErrInvalidStrategy)
	require.Contains(t, err.Error(), "Sideways")
}

func TestStagesFor(t *testing.T) {
	t.Parallel()

	names := func(stages []Stage) []string {
		var out []string
		for _, s := range stages {
			out = append(out, s.Name)
		}
		return out
	}

	require.Equal(t, []string{"feature", "develop", "alpha", "beta", "live"}, names(StagesFor(Release)))
	require.Equal(t, []string{"child-hotfix", "parent-hotfix", "all-environments"}, names(StagesFor(Hotfix)))
	require.Empty(t, StagesFor(Manual))

	t.Run("copies are independent of the catalog", func(t *testing.T) {
		t.Parallel()
		stages := StagesFor(Release)
		stages[0].Name = "mutated"
		require.Equal(t, "feature", StagesFor(Release)[0].Name)
	})

	t.Run("each successor exists and the last stage has none", func(t *testing.T) {
		t.Parallel()
		for _, s := range []Strategy{Release, Hotfix} {
			stages := StagesFor(s)
			for i, st := range stages[:len(stages)-1] {
				require.Equal(t, stages[i+1].Name, st.Next)
			}
			require.False(t, stages[len(stages)-1].HasNext())
		}
	})
}

func TestPatternMatches(t *testing.T) {
	t.Parallel()

	alpha, ok := StageByName(Release, "alpha")
	require.True(t, ok)
	require.True(t, alpha.Pattern.Matches("alpha"))
	require.True(t, alpha.Pattern.Matches("alpha/2024-10"))
	require.False(t, alpha.Pattern.Matches("Alpha"))
	require.False(t, alpha.Pattern.Matches("alpha/"))
	require.False(t, alpha.Pattern.Matches("alphabet"))
	require.False(t, alpha.Pattern.Matches(""))

	child, ok := StageByName(Hotfix, "child-hotfix")
	require.True(t, ok)
	require.True(t, child.Pattern.Matches("hotfix/PROJ-1/fix-login"))
	require.False(t, child.Pattern.Matches("hotfix/PROJ-1"))
	require.False(t, child.Pattern.Matches("hotfix/a/b/c"))

	_, ok = StageByName(Release, "nope")
	require.False(t, ok)
}

func TestPatternGlobs(t *testing.T) {
	t.Parallel()

	develop, _ := StageByName(Release, "develop")
	require.Equal(t, []string{"develop", "staging", "develop/*", "staging/*"}, develop.Pattern.Globs())

	child, _ := StageByName(Hotfix, "child-hotfix")
	require.Equal(t, []string{"hotfix/*/*"}, child.Pattern.Globs())

	parent, _ := StageByName(Hotfix, "parent-hotfix")
	require.Equal(t, []string{"hotfix/*"}, parent.Pattern.Globs())
}

func TestResolve(t *testing.T) {
	t.Parallel()

	remote := []string{"main", "develop", "alpha", "beta", "release/1.2.3-a", "hotfix/PROJ-9"}

	tests := []struct {
		name     string
		strategy Strategy
		current  string
		branches []string
		want     []string
		stage    string
		exists   bool
		derived  bool
	}{
		{
			name:     "feature goes to develop",
			strategy: Release,
			current:  "feature/PROJ-1-x",
			branches: remote,
			want:     []string{"develop"},
			stage:    "feature",
			exists:   true,
		},
		{
			name:     "develop stage prefers existing staging",
			strategy: Release,
			current:  "feat/PROJ-2",
			branches: []string{"staging", "main"},
			want:     []string{"staging"},
			stage:    "feature",
			exists:   true,
		},
		{
			name:     "successor not yet created",
			strategy: Release,
			current:  "develop",
			branches: []string{"develop", "main"},
			want:     []string{"alpha"},
			stage:    "develop",
		},
		{
			name:     "beta goes to live via main",
			strategy: Release,
			current:  "beta",
			branches: remote,
			want:     []string{"main"},
			stage:    "beta",
			exists:   true,
		},
		{
			name:     "release branch letter sibling",
			strategy: Release,
			current:  "release/1.2.3-a",
			branches: remote,
			want:     []string{"release/1.2.3-b"},
			stage:    "live",
			derived:  true,
		},
		{
			name:     "release branch numeric sibling",
			strategy: Release,
			current:  "release/1.2.3",
			branches: remote,
			want:     []string{"release/1.2.4"},
			stage:    "live",
			derived:  true,
		},
		{
			name:     "child hotfix goes to parent",
			strategy: Hotfix,
			current:  "hotfix/PROJ-9/fix-login",
			branches: remote,
			want:     []string{"hotfix/PROJ-9"},
			stage:    "child-hotfix",
			exists:   true,
		},
		{
			name:     "parent hotfix fans out to existing environments",
			strategy: Hotfix,
			current:  "hotfix/PROJ-9",
			branches: remote,
			want:     []string{"develop", "alpha", "beta", "main"},
			stage:    "parent-hotfix",
			exists:   true,
		},
		{
			name:     "parent hotfix skips missing environments",
			strategy: Hotfix,
			current:  "hotfix/PROJ-9",
			branches: []string{"staging", "master"},
			want:     []string{"staging", "master"},
			stage:    "parent-hotfix",
			exists:   true,
		},
		{
			name:     "parent hotfix without environments proposes canonical names",
			strategy: Hotfix,
			current:  "hotfix/PROJ-9",
			branches: nil,
			want:     []string{"develop", "alpha", "beta", "live"},
			stage:    "parent-hotfix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(tt.strategy, tt.current, tt.branches)
			require.NoError(t, err)
			require.True(t, got.Matched())
			require.Equal(t, tt.stage, got.Stage.Name)
			require.Equal(t, tt.want, got.Branches)
			require.Equal(t, tt.want[0], got.Branch)
			require.True(t, got.IsSuggestion)
			require.Equal(t, tt.exists, got.Exists)
			require.Equal(t, tt.derived, got.Derived)
		})
	}
}

func TestResolveWithoutTarget(t *testing.T) {
	t.Parallel()

	t.Run("manual contributes nothing", func(t *testing.T) {
		t.Parallel()
		got, err := Resolve(Manual, "feature/PROJ-1-x", []string{"develop"})
		require.NoError(t, err)
		require.Equal(t, Target{}, got)
	})

	t.Run("unknown branch is a no match", func(t *testing.T) {
		t.Parallel()
		got, err := Resolve(Release, "experiment/x", []string{"develop"})
		require.NoError(t, err)
		require.Equal(t, Target{}, got)
		require.False(t, got.Matched())
	})

	t.Run("last stage without version keeps only the stage", func(t *testing.T) {
		t.Parallel()
		got, err := Resolve(Release, "main", []string{"main"})
		require.NoError(t, err)
		require.True(t, got.Matched())
		require.Equal(t, "live", got.Stage.Name)
		require.False(t, got.HasBranch())
		require.False(t, got.IsSuggestion)
	})

	t.Run("environment branch ends a hotfix", func(t *testing.T) {
		t.Parallel()
		got, err := Resolve(Hotfix, "develop", []string{"develop"})
		require.NoError(t, err)
		require.Equal(t, "all-environments", got.Stage.Name)
		require.False(t, got.HasBranch())
	})

	t.Run("invalid strategy fails fast", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(Strategy("Sideways"), "feature/x", nil)
		require.ErrorIs(t, err, prerrors.ErrInvalidStrategy)
	})
}

func TestFirstMatchPrefersEarliestStage(t *testing.T) {
	t.Parallel()

	stages := []Stage{
		{Name: "broad", Pattern: Pattern{Prefixes: []string{"release/"}}},
		{Name: "specific", Pattern: Pattern{Names: []string{"release/1.0"}}},
	}
	got, ok := firstMatch(stages, "release/1.0")
	require.True(t, ok)
	require.Equal(t, "broad", got.Name)
}

func TestNextSibling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "release/1.2.3-a", want: "release/1.2.3-b", ok: true},
		{in: "release/1.2.3-z", want: "release/1.2.3-aa", ok: true},
		{in: "release/1.2.3-az", want: "release/1.2.3-ba", ok: true},
		{in: "release/1.2.3-C", want: "release/1.2.3-D", ok: true},
		{in: "release/1.2.3", want: "release/1.2.4", ok: true},
		{in: "release/1.2.9", want: "release/1.2.10", ok: true},
		{in: "live/2024-09", want: "live/2024-10", ok: true},
		{in: "main", ok: false},
		{in: "release/next", ok: false},
		{in: "release/18446744073709551615", ok: false},
		{in: "release/99999999999999999999", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := NextSibling(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
