// Package tui provides the terminal user interface for prflow.
//
// It handles:
//   - Interactive prompts and selections (using survey)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and the summary header (using lipgloss)
//   - Pull request creation progress (using bubbletea)
package tui
