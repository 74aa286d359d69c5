// Package errors provides sentinel errors and custom error types for prflow.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotGitRepo indicates that the working directory is not inside a git repository
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrInvalidStrategy indicates a strategy tag outside Release, Hotfix and Manual
	ErrInvalidStrategy = errors.New("invalid strategy")

	// ErrNoTargets indicates that no target branch could be determined
	ErrNoTargets = errors.New("no target branches specified")

	// ErrGHUnavailable indicates that GitHub access is not configured
	ErrGHUnavailable = errors.New("github access unavailable")
)

// InvalidStrategyError carries the strategy value that was rejected
type InvalidStrategyError struct {
	Value string
}

func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("invalid strategy %q: must be one of Release, Hotfix, Manual", e.Value)
}

// Is returns true if the target error is ErrInvalidStrategy
func (e *InvalidStrategyError) Is(target error) bool {
	return target == ErrInvalidStrategy
}

// NewInvalidStrategyError creates a new InvalidStrategyError
func NewInvalidStrategyError(value string) *InvalidStrategyError {
	return &InvalidStrategyError{Value: value}
}

// GitCommandError represents a failed invocation of git or gh.
// The tool's output is kept so it can be shown to the user unchanged.
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed: %s", e.Command, strings.Join(e.Args, " "))
	if code := e.ExitCode(); code >= 0 {
		msg += fmt.Sprintf(" (exit status %d)", code)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	if e.Err != nil && e.ExitCode() < 0 {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status, or -1 when the process did not exit normally
func (e *GitCommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// Kind returns a short machine-readable classification used in JSON error payloads
func Kind(err error) string {
	var gitErr *GitCommandError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotGitRepo):
		return "not_git_repo"
	case errors.Is(err, ErrInvalidStrategy):
		return "invalid_strategy"
	case errors.Is(err, ErrNoTargets):
		return "no_targets"
	case errors.Is(err, ErrGHUnavailable):
		return "github_unavailable"
	case errors.As(err, &gitErr):
		return "command_failed"
	default:
		return "internal"
	}
}
