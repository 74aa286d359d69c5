package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	prerrors "prflow.dev/prflow/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	binary     string
	workingDir string
	env        []string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{binary: "git", workingDir: workingDir}
}

// NewGHRunner creates a runner for the GitHub CLI
func NewGHRunner(workingDir string) *CommandRunner {
	return &CommandRunner{binary: "gh", workingDir: workingDir}
}

// WithEnv returns a runner that adds env to the environment of every command
func (r *CommandRunner) WithEnv(env ...string) *CommandRunner {
	return &CommandRunner{
		binary:     r.binary,
		workingDir: r.workingDir,
		env:        append(append([]string{}, r.env...), env...),
	}
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, args...)
}

// RunLines executes a git command and returns the non-empty output lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	lines := []string{}
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// runInternal is the internal implementation that handles timeouts and output capture
func (r *CommandRunner) runInternal(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	binary := r.binary
	if binary == "" {
		binary = "git"
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", prerrors.NewGitCommandError(binary, args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", prerrors.NewGitCommandError(binary, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
