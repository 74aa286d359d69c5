// Package actions provides the flows behind the prflow commands.
//
// Each action corresponds to a prflow mode (interactive, data, description,
// preview, create) and orchestrates the pure engine with the git, github and
// tui packages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Splog, Config and the collaborators
//   - The JSON modes always write a record, even when they fail
//   - Actions handle user interaction through the tui.Prompter interface
package actions
