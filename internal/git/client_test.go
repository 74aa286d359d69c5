package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/git"
	"prflow.dev/prflow/testhelpers"
)

// releaseScene builds a repository whose origin has develop and alpha, with a
// feature branch two commits ahead of develop.
func releaseScene(t *testing.T) *testhelpers.Scene {
	t.Helper()
	return testhelpers.NewScene(t, testhelpers.Setups(testhelpers.WithOrigin, func(s *testhelpers.Scene) error {
		for _, b := range []string{"develop", "alpha"} {
			if err := s.Repo.CreateBranch(b); err != nil {
				return err
			}
		}
		if err := s.Repo.Push("origin", "develop", "alpha"); err != nil {
			return err
		}
		if err := s.Repo.CreateAndCheckoutBranch("feature/PROJ-1-widget"); err != nil {
			return err
		}
		if err := s.Repo.CommitAs("Alice <alice@example.com>", "Add widget"); err != nil {
			return err
		}
		return s.Repo.CommitAs("Bob <bob@example.com>", "Fix typo")
	}))
}

func TestClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	scene := releaseScene(t)
	client := git.NewClient(scene.Dir)

	t.Run("is a repository", func(t *testing.T) {
		require.True(t, client.IsRepo(ctx))
	})

	t.Run("current branch", func(t *testing.T) {
		branch, err := client.CurrentBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "feature/PROJ-1-widget", branch)
	})

	t.Run("remote branches are short and sorted", func(t *testing.T) {
		branches, err := client.RemoteBranches(ctx, "origin")
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "develop", "main"}, branches)

		none, err := client.RemoteBranches(ctx, "upstream")
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("fetch", func(t *testing.T) {
		require.NoError(t, client.Fetch(ctx, "origin"))
		err := client.Fetch(ctx, "missing")
		var gitErr *prerrors.GitCommandError
		require.ErrorAs(t, err, &gitErr)
		require.NotZero(t, gitErr.ExitCode())
	})

	t.Run("commit subjects newest first", func(t *testing.T) {
		subjects, err := client.CommitSubjects(ctx, "origin", "develop", "feature/PROJ-1-widget")
		require.NoError(t, err)
		require.Equal(t, []string{"Fix typo", "Add widget"}, subjects)
	})

	t.Run("missing base yields no commits", func(t *testing.T) {
		subjects, err := client.CommitSubjects(ctx, "origin", "beta", "feature/PROJ-1-widget")
		require.NoError(t, err)
		require.Empty(t, subjects)
	})

	t.Run("commit subjects outside a repository fail", func(t *testing.T) {
		dir := t.TempDir()
		outside := git.NewClient(dir).WithEnv("GIT_CEILING_DIRECTORIES=" + filepath.Dir(dir))
		_, err := outside.CommitSubjects(ctx, "origin", "develop", "HEAD")
		var gitErr *prerrors.GitCommandError
		require.ErrorAs(t, err, &gitErr)
		require.Equal(t, 128, gitErr.ExitCode())
	})

	t.Run("authors", func(t *testing.T) {
		authors, err := client.Authors(ctx, 0)
		require.NoError(t, err)
		require.Len(t, authors, 3)
		require.ElementsMatch(t, []string{
			"Alice <alice@example.com>",
			"Bob <bob@example.com>",
			"Test User <test@example.com>",
		}, authors)

		limited, err := client.Authors(ctx, 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
	})

	t.Run("user email", func(t *testing.T) {
		email, err := client.UserEmail(ctx)
		require.NoError(t, err)
		require.Equal(t, "test@example.com", email)
	})
}

func TestUserEmailUnset(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t, nil)
	require.NoError(t, scene.Repo.RunGitCommand("config", "--unset", "user.email"))

	client := git.NewClient(scene.Dir).WithEnv("GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1")
	email, err := client.UserEmail(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", email)
}

func TestOpenRepositoryOutsideRepo(t *testing.T) {
	t.Parallel()

	_, err := git.OpenRepository(t.TempDir())
	require.ErrorIs(t, err, prerrors.ErrNotGitRepo)

	client := git.NewClient(t.TempDir())
	require.False(t, client.IsRepo(context.Background()))
}

func TestCommandRunner(t *testing.T) {
	t.Parallel()

	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	runner := git.NewCommandRunner(scene.Dir)

	lines, err := runner.RunLines(context.Background(), "log", "--pretty=format:%s")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, lines)

	_, err = runner.Run(context.Background(), "rev-parse", "--verify", "does-not-exist")
	var gitErr *prerrors.GitCommandError
	require.ErrorAs(t, err, &gitErr)
	require.Equal(t, "git", gitErr.Command)
	require.Contains(t, err.Error(), "rev-parse --verify does-not-exist")
}
