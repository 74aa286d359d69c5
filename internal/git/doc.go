// Package git provides the Git operations prflow needs.
//
// It wraps git command execution and go-git and provides:
//   - Repository discovery and the current branch
//   - Remote branch listing without the remote prefix
//   - Commit subjects between a target and a source branch
//   - Commit authors used to rank reviewers
//
// This package should be the only place where direct git commands are executed.
package git
