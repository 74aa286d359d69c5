package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Create item statuses
const (
	StatusPending  = "pending"
	StatusCreating = "creating"
	StatusDone     = "done"
	StatusSkipped  = "skipped"
	StatusError    = "error"
)

// CreateItem is one pull request being created, keyed by its target branch
type CreateItem struct {
	Target     string
	Status     string
	SkipReason string
	URL        string
	Error      error
}

// CreateFunc creates the pull request for items[idx]. A non-empty skip reason
// means nothing was created.
type CreateFunc func(idx int) (url, skipReason string, err error)

// createProgressModel is the bubbletea model for create progress
type createProgressModel struct {
	items      []CreateItem
	currentIdx int
	spinner    spinner.Model
	done       bool
	quitting   bool
	create     CreateFunc
	styles     progressStyles
}

type progressStyles struct {
	spinnerStyle lipgloss.Style
	doneStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	branchStyle  lipgloss.Style
	urlStyle     lipgloss.Style
	dimStyle     lipgloss.Style
}

// createResultMsg is sent when a single create completes
type createResultMsg struct {
	idx        int
	url        string
	skipReason string
	err        error
}

func newCreateProgressModel(items []CreateItem, create CreateFunc) createProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	for i := range items {
		items[i].Status = StatusPending
	}

	return createProgressModel{
		items:   items,
		spinner: s,
		create:  create,
		styles: progressStyles{
			spinnerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			doneStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			branchStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			urlStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			dimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

func (m createProgressModel) createCmd(idx int) tea.Cmd {
	return func() tea.Msg {
		url, reason, err := m.create(idx)
		return createResultMsg{idx: idx, url: url, skipReason: reason, err: err}
	}
}

func (m createProgressModel) Init() tea.Cmd {
	if len(m.items) == 0 {
		return tea.Quit
	}
	m.items[0].Status = StatusCreating
	return tea.Batch(m.spinner.Tick, m.createCmd(0))
}

func (m createProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case createResultMsg:
		if msg.idx < len(m.items) {
			m.items[msg.idx] = applyResult(m.items[msg.idx], msg.url, msg.skipReason, msg.err)
		}

		m.currentIdx++
		if m.currentIdx < len(m.items) {
			m.items[m.currentIdx].Status = StatusCreating
			return m, tea.Batch(m.spinner.Tick, m.createCmd(m.currentIdx))
		}

		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func applyResult(item CreateItem, url, skipReason string, err error) CreateItem {
	switch {
	case err != nil:
		item.Status = StatusError
		item.Error = err
		item.URL = url
	case skipReason != "":
		item.Status = StatusSkipped
		item.SkipReason = skipReason
		item.URL = url
	default:
		item.Status = StatusDone
		item.URL = url
	}
	return item
}

func (m createProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, item := range m.items {
		var icon, status string

		switch item.Status {
		case StatusPending:
			icon = m.styles.dimStyle.Render("○")
			status = m.styles.dimStyle.Render("pending")
		case StatusCreating:
			icon = m.spinner.View()
			status = m.styles.spinnerStyle.Render("Creating...")
		case StatusDone:
			icon = m.styles.doneStyle.Render("✓")
			status = m.styles.doneStyle.Render("created")
		case StatusSkipped:
			icon = m.styles.dimStyle.Render("-")
			status = m.styles.dimStyle.Render("skipped: " + item.SkipReason)
		case StatusError:
			icon = m.styles.errorStyle.Render("✗")
			status = m.styles.errorStyle.Render("failed")
		}

		line := fmt.Sprintf("  %s %s %s", icon, m.styles.branchStyle.Render(item.Target), status)
		if item.URL != "" && item.Status != StatusPending {
			line += " " + m.styles.urlStyle.Render("→ "+item.URL)
		}
		if item.Status == StatusError && item.Error != nil {
			line += " " + m.styles.errorStyle.Render(item.Error.Error())
		}

		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")

	if m.done {
		completed, failed := countResults(m.items)
		b.WriteString("\n")
		if failed > 0 {
			b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("Completed: %d, Failed: %d", completed, failed)))
		} else {
			b.WriteString(m.styles.doneStyle.Render(fmt.Sprintf("✓ %d PRs created", completed)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func countResults(items []CreateItem) (completed, failed int) {
	for _, item := range items {
		switch item.Status {
		case StatusDone:
			completed++
		case StatusError:
			failed++
		}
	}
	return completed, failed
}

// IsTTY returns true if we can use a TTY for interactive TUI
func IsTTY() bool {
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// RunCreateProgress creates every item in order, showing a spinner list when
// the log goes to a TTY and plain log lines otherwise. It returns the items
// with their outcome.
func RunCreateProgress(items []CreateItem, create CreateFunc, splog *Splog) ([]CreateItem, error) {
	out, ok := splog.Writer().(*os.File)
	if !ok || !IsTTY() || !isatty.IsTerminal(out.Fd()) {
		return RunCreateProgressSimple(items, create, splog), nil
	}

	splog.SetQuiet(true)
	defer splog.SetQuiet(false)

	m := newCreateProgressModel(items, create)
	final, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(out)).Run()
	if err != nil {
		return items, err
	}
	if fm, ok := final.(createProgressModel); ok {
		if fm.quitting {
			return fm.items, ErrCanceled
		}
		return fm.items, nil
	}
	return items, nil
}

// RunCreateProgressSimple is the non-TTY rendition of RunCreateProgress
func RunCreateProgressSimple(items []CreateItem, create CreateFunc, splog *Splog) []CreateItem {
	for i := range items {
		splog.Info("  ⋯ %s creating...", items[i].Target)
		url, reason, err := create(i)
		items[i] = applyResult(items[i], url, reason, err)

		switch items[i].Status {
		case StatusError:
			splog.Info("  ✗ %s failed: %v", items[i].Target, err)
		case StatusSkipped:
			splog.Info("  - %s skipped: %s", items[i].Target, reason)
		default:
			splog.Info("  ✓ %s created → %s", items[i].Target, url)
		}
	}
	return items
}
