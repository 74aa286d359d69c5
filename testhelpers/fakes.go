package testhelpers

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/git"
	"prflow.dev/prflow/internal/tui"
)

// FakeGit is an in-memory git.Reader
type FakeGit struct {
	NotRepo    bool
	Current    string
	Remote     []string
	// Commits maps a base branch to the subjects of the source missing from it
	Commits    map[string][]string
	AuthorList []string
	Email      string
	// Fetched counts Fetch calls
	Fetched    int
}

var _ git.Reader = (*FakeGit)(nil)

func (f *FakeGit) IsRepo(context.Context) bool { return !f.NotRepo }

func (f *FakeGit) Fetch(context.Context, string) error {
	f.Fetched++
	return nil
}

func (f *FakeGit) CurrentBranch(context.Context) (string, error) {
	if f.NotRepo {
		return "", prerrors.ErrNotGitRepo
	}
	return f.Current, nil
}

func (f *FakeGit) RemoteBranches(context.Context, string) ([]string, error) {
	return append([]string{}, f.Remote...), nil
}

func (f *FakeGit) CommitSubjects(_ context.Context, _, base, _ string) ([]string, error) {
	return append([]string{}, f.Commits[base]...), nil
}

func (f *FakeGit) Authors(context.Context, int) ([]string, error) {
	return append([]string{}, f.AuthorList...), nil
}

func (f *FakeGit) UserEmail(context.Context) (string, error) {
	return f.Email, nil
}

// ScriptedPrompter answers prompts from fixed queues and fails on any prompt
// it has no answer for
type ScriptedPrompter struct {
	Selects     []string
	Inputs      []string
	LineAnswers [][]string
	Confirms    []bool
	Multi       [][]string

	// Asked records every prompt message in order
	Asked []string
}

var _ tui.Prompter = (*ScriptedPrompter)(nil)

func pop[T any](p *ScriptedPrompter, queue *[]T, message string) (T, error) {
	p.Asked = append(p.Asked, message)
	var zero T
	if len(*queue) == 0 {
		return zero, fmt.Errorf("unexpected prompt %q", message)
	}
	v := (*queue)[0]
	*queue = (*queue)[1:]
	return v, nil
}

func (p *ScriptedPrompter) Select(message string, options []string, _ string) (string, error) {
	v, err := pop(p, &p.Selects, message)
	if err != nil {
		return "", err
	}
	if !slices.Contains(options, v) {
		return "", fmt.Errorf("%q is not an option of %q", v, message)
	}
	return v, nil
}

func (p *ScriptedPrompter) Input(message, _ string) (string, error) {
	return pop(p, &p.Inputs, message)
}

func (p *ScriptedPrompter) Lines(message string) ([]string, error) {
	return pop(p, &p.LineAnswers, message)
}

func (p *ScriptedPrompter) Confirm(message string, _ bool) (bool, error) {
	return pop(p, &p.Confirms, message)
}

func (p *ScriptedPrompter) MultiSelect(message string, _ []string, _ []string) ([]string, error) {
	return pop(p, &p.Multi, message)
}

// Done asserts every scripted answer was used
func (p *ScriptedPrompter) Done(t *testing.T) {
	t.Helper()
	require.Empty(t, p.Selects, "unused select answers")
	require.Empty(t, p.Inputs, "unused input answers")
	require.Empty(t, p.LineAnswers, "unused lines answers")
	require.Empty(t, p.Confirms, "unused confirm answers")
	require.Empty(t, p.Multi, "unused multi-select answers")
}
