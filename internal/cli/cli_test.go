package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"prflow.dev/prflow/internal/cli"
	"prflow.dev/prflow/internal/config"
	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/github"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/tui"
	"prflow.dev/prflow/internal/wire"
	"prflow.dev/prflow/testhelpers"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fixture struct {
	ctx    *runtime.Context
	server *testhelpers.MockGitHubServerConfig
	stdout *bytes.Buffer
	log    *bytes.Buffer
}

func newFixture(t *testing.T, prompter tui.Prompter) *fixture {
	t.Helper()

	f := &fixture{
		server: testhelpers.NewMockGitHubServerConfig(),
		stdout: &bytes.Buffer{},
		log:    &bytes.Buffer{},
	}
	splog, err := tui.NewSplogWithConfig(f.log, "")
	require.NoError(t, err)

	client, owner, repo := testhelpers.NewMockGitHubClient(t, f.server)
	g := &testhelpers.FakeGit{
		Current: "feature/PROJ-7-export",
		Remote:  []string{"develop", "main"},
		Commits: map[string][]string{"develop": {"export csv"}},
	}
	cfg := &config.Config{ReviewerGroups: map[string][]string{"data": {"dana", "eli"}}}
	f.ctx = runtime.NewTestContext(splog, cfg, g, github.NewRESTClient(client, owner, repo), prompter, f.stdout)
	return f
}

func (f *fixture) execute(args ...string) error {
	cmd := cli.NewRootCmd("test", "abc123", "today")
	cmd.SetArgs(args)
	cmd.SetOut(f.stdout)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(runtime.WithContext(context.Background(), f.ctx))
}

func TestDataCommand(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"data", "--strategy", "release"},
		{"--get-data", "--strategy", "Release"},
	} {
		f := newFixture(t, nil)
		require.NoError(t, f.execute(args...), args)

		rec, err := wire.ReadGitData(f.stdout)
		require.NoError(t, err)
		require.Equal(t, "feature/PROJ-7-export", rec.CurrentBranch)
		require.Equal(t, []string{"PROJ-7"}, rec.SuggestedTickets)
		require.Equal(t, "Export", rec.SuggestedTitle)
		require.Equal(t, []string{"develop"}, rec.SuggestedTargets)
	}
}

func TestDescriptionCommand(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"description", "--target", "develop"},
		{"--get-description", "--source", "feature/PROJ-7-export", "--target", "develop"},
	} {
		f := newFixture(t, nil)
		require.NoError(t, f.execute(args...), args)

		rec, err := wire.ReadDescription(f.stdout)
		require.NoError(t, err)
		require.Equal(t, []string{"export csv"}, rec.Commits)
		require.Equal(t, "- export csv\n\n[PROJ-7](https://jira.example.com/browse/PROJ-7)", rec.Description)
	}

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil)

		err := f.execute("description")
		require.ErrorIs(t, err, prerrors.ErrNoTargets)

		rec, rerr := wire.ReadDescription(f.stdout)
		require.NoError(t, rerr)
		require.Equal(t, "no_targets", rec.ErrorKind)
	})
}

func TestPreviewCommand(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	require.NoError(t, f.execute("preview", "--target", "main", "--title", "CSV export", "--reviewer", "data", "--tickets", "PROJ-8"))
	rec, err := wire.ReadPreview(f.stdout)
	require.NoError(t, err)
	require.Equal(t, "main", rec.Target)
	require.Equal(t, "[PROJ-7][PROJ-8][feature/PROJ-7-export] -> [main] CSV export", rec.Title)
	require.Equal(t, []string{"dana", "eli"}, rec.Reviewers)
}

func TestCreateCommand(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"create", "--target", "develop", "--target", "main", "--reviewers", "dana"},
		{"--headless", "--target", "develop", "--target", "main", "--reviewer", "dana"},
	} {
		f := newFixture(t, nil)
		require.NoError(t, f.execute(args...), args)

		rec, err := wire.ReadCreateResult(f.stdout)
		require.NoError(t, err)
		require.True(t, rec.Success)
		require.Len(t, rec.Results, 2)
		require.Len(t, f.server.Created(), 2)
		require.Equal(t, []string{"dana"}, f.server.Reviewers(1))
		require.Equal(t, []string{"dana"}, f.server.Reviewers(2))
	}
}

func TestLegacyModesAreExclusive(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	err := f.execute("--get-data", "--headless")
	require.Error(t, err)
	require.Zero(t, f.stdout.Len())
}

func TestStrategiesCommand(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	require.NoError(t, f.execute("strategies"))
	out := f.stdout.String()
	require.Contains(t, out, "Release\n")
	require.Contains(t, out, "feature/*, feat/*")
	require.Contains(t, out, "-> develop")
	require.Contains(t, out, "hotfix/*/*")
	require.Contains(t, out, "Manual\n  targets are chosen by hand")
}

// cancelingPrompter behaves like a user pressing Ctrl-C at the first prompt
type cancelingPrompter struct {
	testhelpers.ScriptedPrompter
}

func (cancelingPrompter) Select(string, []string, string) (string, error) {
	return "", tui.ErrCanceled
}

func TestInteractiveCancel(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &cancelingPrompter{})

	require.NoError(t, f.execute("--no-fetch"))
	require.Contains(t, f.log.String(), "Canceled.")
	require.Empty(t, f.server.Created())
}
