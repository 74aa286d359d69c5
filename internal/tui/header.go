package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// headerTitle is the first line of the summary box
const headerTitle = "Pull Request Creator"

// maxSummaryWidth bounds the description and reviewer lines of the header
const maxSummaryWidth = 50

// Summary is what the interactive flow has collected so far. Empty fields are
// left out of the header.
type Summary struct {
	Source      string
	Targets     []string
	Strategy    string
	Tickets     []string
	Title       *string
	Description string
	Reviewers   []string
}

var (
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)
	headerTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	headerLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RenderHeader renders the summary box shown above every interactive step
func RenderHeader(s Summary) string {
	var rows []string
	add := func(label, value string) {
		rows = append(rows, headerLabelStyle.Render(fmt.Sprintf("%-9s:", label))+" "+value)
	}

	if s.Source != "" {
		add("Source", s.Source)
	}
	if len(s.Targets) > 0 {
		add("Targets", strings.Join(s.Targets, ", "))
	}
	if s.Strategy != "" {
		add("Strategy", s.Strategy)
	}
	if len(s.Tickets) > 0 {
		add("Tickets", strings.Join(s.Tickets, ", "))
	}
	if s.Title != nil {
		add("Title", *s.Title)
	}
	if d := strings.TrimSpace(s.Description); d != "" {
		add("Desc", summarizeDescription(d))
	}
	if len(s.Reviewers) > 0 {
		reviewers := strings.Join(s.Reviewers, ", ")
		if len(reviewers) > maxSummaryWidth {
			reviewers = fmt.Sprintf("%d selected", len(s.Reviewers))
		}
		add("Reviewers", reviewers)
	}

	body := headerTitleStyle.Render(headerTitle)
	if len(rows) > 0 {
		body += "\n\n" + strings.Join(rows, "\n")
	}
	return headerBoxStyle.Render(body)
}

// summarizeDescription keeps the first line, cut to the summary width, and
// marks anything left out with an ellipsis
func summarizeDescription(d string) string {
	first, rest, multi := strings.Cut(d, "\n")
	runes := []rune(first)
	if len(runes) > maxSummaryWidth {
		return string(runes[:maxSummaryWidth]) + "..."
	}
	if multi && strings.TrimSpace(rest) != "" {
		return first + "..."
	}
	return first
}
