package actions_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"prflow.dev/prflow/internal/config"
	"prflow.dev/prflow/internal/github"
	"prflow.dev/prflow/internal/runtime"
	"prflow.dev/prflow/internal/tui"
	"prflow.dev/prflow/internal/wire"
	"prflow.dev/prflow/testhelpers"
)

// harness bundles a runtime context with its fakes
type harness struct {
	ctx      *runtime.Context
	git      *testhelpers.FakeGit
	server   *testhelpers.MockGitHubServerConfig
	prompter *testhelpers.ScriptedPrompter
	stdout   *bytes.Buffer
	log      *bytes.Buffer
}

func newHarness(t *testing.T, g *testhelpers.FakeGit, cfg *config.Config, withGitHub bool) *harness {
	t.Helper()

	h := &harness{
		git:      g,
		server:   testhelpers.NewMockGitHubServerConfig(),
		prompter: &testhelpers.ScriptedPrompter{},
		stdout:   &bytes.Buffer{},
		log:      &bytes.Buffer{},
	}
	splog, err := tui.NewSplogWithConfig(h.log, "")
	require.NoError(t, err)

	var gh github.Client
	if withGitHub {
		client, owner, repo := testhelpers.NewMockGitHubClient(t, h.server)
		gh = github.NewRESTClient(client, owner, repo)
	}
	h.ctx = runtime.NewTestContext(splog, cfg, g, gh, h.prompter, h.stdout)
	return h
}

func ptr(s string) *string {
	return &s
}

func requireReported(t *testing.T, err error, target error) {
	t.Helper()
	require.ErrorIs(t, err, target)
	require.True(t, wire.IsReported(err))
}
