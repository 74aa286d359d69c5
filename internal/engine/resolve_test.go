package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/strategy"
)

func TestResolveTargets(t *testing.T) {
	t.Parallel()

	remote := []string{"main", "develop", "alpha", "beta", "hotfix/PROJ-9"}

	tests := []struct {
		name     string
		req      TargetRequest
		want     []string
		fallback bool
	}{
		{
			name: "strategy suggestion",
			req:  TargetRequest{Strategy: strategy.Release, Current: "feature/PROJ-1-x", Available: remote, DefaultTarget: "main"},
			want: []string{"develop"},
		},
		{
			name:     "no stage falls back to default",
			req:      TargetRequest{Strategy: strategy.Release, Current: "spike/x", Available: remote, DefaultTarget: "main"},
			want:     []string{"main"},
			fallback: true,
		},
		{
			name: "manual uses chosen targets",
			req:  TargetRequest{Strategy: strategy.Manual, Current: "feature/x", Available: remote, Chosen: []string{"alpha", " alpha", "beta"}},
			want: []string{"alpha", "beta"},
		},
		{
			name: "chosen overrides suggestion",
			req:  TargetRequest{Strategy: strategy.Release, Current: "feature/x", Available: remote, Chosen: []string{"beta"}},
			want: []string{"beta"},
		},
		{
			name: "hotfix fan out",
			req:  TargetRequest{Strategy: strategy.Hotfix, Current: "hotfix/PROJ-9", Available: remote},
			want: []string{"develop", "alpha", "beta", "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveTargets(tt.req)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Targets)
			require.Equal(t, tt.fallback, got.Fallback)
		})
	}
}

func TestResolveTargetsErrors(t *testing.T) {
	t.Parallel()

	t.Run("invalid strategy", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveTargets(TargetRequest{Strategy: "Nope", Current: "feature/x"})
		require.ErrorIs(t, err, prerrors.ErrInvalidStrategy)
	})

	t.Run("default equal to source", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveTargets(TargetRequest{Strategy: strategy.Manual, Current: "main", DefaultTarget: "main"})
		require.ErrorIs(t, err, prerrors.ErrNoTargets)
	})

	t.Run("no default configured", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveTargets(TargetRequest{Strategy: strategy.Release, Current: "spike/x"})
		require.ErrorIs(t, err, prerrors.ErrNoTargets)
	})
}
