// Package metadata synthesizes pull request titles and descriptions from
// ticket ids, branch names and commit messages. Every function is pure.
package metadata

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"prflow.dev/prflow/internal/tickets"
)

// PR is the generated metadata of one pull request
type PR struct {
	Title       string
	Description string
	Tickets     tickets.Result
}

// BuildTitle renders the canonical title: [T1][T2][source] -> [target] suffix.
// The ticket brackets are omitted when there are no tickets, the suffix when it is blank.
func BuildTitle(ids tickets.Result, source, target, suffix string) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString("[" + string(id) + "]")
	}
	b.WriteString("[" + source + "] -> [" + target + "]")
	if s := strings.TrimSpace(suffix); s != "" {
		b.WriteString(" " + s)
	}
	return b.String()
}

// BuildDescription renders the commits as bullets followed by a block of ticket links.
// No commits means an empty description, whatever the tickets.
func BuildDescription(commits []string, linkBase string, ids tickets.Result) string {
	bullets := Bullets(commits)
	if bullets == "" {
		return ""
	}
	links := tickets.Links(ids, linkBase)
	if len(links) == 0 {
		return bullets
	}
	return bullets + "\n\n" + strings.Join(links, "\n")
}

// Bullets renders each non-blank line as a markdown bullet
func Bullets(lines []string) string {
	var out []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, "- "+l)
	}
	return strings.Join(out, "\n")
}

// SuggestTitle derives a readable title from a branch name:
// feature/PROJ-123-some-fix becomes "Some Fix".
func SuggestTitle(branch string) string {
	if _, rest, ok := strings.Cut(branch, "/"); ok {
		branch = rest
	}
	words := strings.FieldsFunc(tickets.Strip(branch), func(r rune) bool {
		return r == '-' || r == '_' || r == '/' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// ReleaseSection renders the ticket block for a tracker release
func ReleaseSection(title, url string) string {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	switch {
	case title == "" && url == "":
		return "None"
	case url == "":
		return title
	case title == "":
		return url
	}
	return "[" + title + "](" + url + ")"
}

// BodyInput holds the rendered blocks of a pull request body
type BodyInput struct {
	// Tickets is the rendered ticket or release block
	Tickets     string
	Description string
	// ChecklistURL adds the review checklist block when set
	ChecklistURL string
}

// RenderBody renders the pull request body markdown
func RenderBody(in BodyInput) string {
	ticketBlock := strings.TrimSpace(in.Tickets)
	if ticketBlock == "" {
		ticketBlock = "None"
	}

	var b strings.Builder
	b.WriteString("**JIRA Ticket/Release:**\n")
	b.WriteString(ticketBlock)
	b.WriteString("\n\n<br>**Description:**\n")
	b.WriteString(strings.TrimSpace(in.Description))
	if url := strings.TrimSpace(in.ChecklistURL); url != "" {
		b.WriteString("\n\n<br>**Checklist:**\n\n")
		b.WriteString("Refer to the checklist [here](" + url + ")\n\n")
		b.WriteString("- [ ] Checklist covered")
	}
	return b.String()
}
