// Package engine composes pull request plans from git state.
//
// It is the core of prflow, responsible for:
//   - Resolving the target branches for the chosen branching strategy
//   - Falling back to the configured default target when no stage matches
//   - Extracting tickets from the branch name and the user's ticket input
//   - Building the title, body and reviewer list of every pull request
//
// The engine performs no I/O. Callers gather branches, commits and authors
// through the git and github packages and pass them in.
package engine
