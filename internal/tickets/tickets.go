// Package tickets extracts issue-tracker ticket identifiers (PROJ-123) from
// branch names, free text and tracker URLs, and renders them as markdown links.
package tickets

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ID is a normalized, uppercase ticket identifier such as PROJ-123
type ID string

// Result is an ordered, duplicate-free list of ticket ids
type Result []ID

// ticketPattern matches a project key of two or more letters, a hyphen and digits.
var ticketPattern = regexp.MustCompile(`(?i)[a-z]{2,}-[0-9]+`)

// Strings returns the ids as plain strings
func (r Result) Strings() []string {
	out := make([]string, len(r))
	for i, id := range r {
		out[i] = string(id)
	}
	return out
}

// Contains reports whether id is present
func (r Result) Contains(id ID) bool {
	for _, existing := range r {
		if existing == id {
			return true
		}
	}
	return false
}

// Key returns the project key part of the id
func (id ID) Key() string {
	key, _, _ := strings.Cut(string(id), "-")
	return key
}

// Extractor finds ticket ids, optionally restricted to a set of project keys
type Extractor struct {
	keys map[string]bool
}

// NewExtractor creates an extractor. With no keys every project key is accepted.
func NewExtractor(keys ...string) *Extractor {
	e := &Extractor{}
	for _, k := range keys {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if e.keys == nil {
			e.keys = make(map[string]bool)
		}
		e.keys[k] = true
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract returns every ticket id found in text using the unrestricted extractor
func Extract(text string) Result {
	return defaultExtractor.Extract(text)
}

// ExtractAll merges the ids of several inputs, keeping first-seen order
func ExtractAll(inputs ...string) Result {
	return defaultExtractor.ExtractAll(inputs...)
}

// Extract returns the ticket ids in text, uppercased, left to right, without duplicates.
// A tracker URL is reduced to its trailing path segment first. No match yields an empty result.
func (e *Extractor) Extract(text string) Result {
	return e.appendFrom(Result{}, text)
}

// ExtractAll merges the ids of several inputs, keeping first-seen order
func (e *Extractor) ExtractAll(inputs ...string) Result {
	out := Result{}
	for _, in := range inputs {
		out = e.appendFrom(out, in)
	}
	return out
}

func (e *Extractor) appendFrom(out Result, text string) Result {
	text = strings.TrimSpace(text)
	if IsURL(text) {
		text = lastSegment(text)
	}
	for _, m := range ticketPattern.FindAllString(text, -1) {
		id := ID(strings.ToUpper(m))
		if e.keys != nil && !e.keys[id.Key()] {
			continue
		}
		if !out.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// IsURL reports whether s looks like an http(s) URL
func IsURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// lastSegment returns the trailing path segment of a URL, ignoring query and fragment
func lastSegment(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// Link renders id as a markdown link below base
func Link(id ID, base string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return "[" + string(id) + "](" + base + string(id) + ")"
}

// Links renders every id with Link
func Links(ids Result, base string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, Link(id, base))
	}
	return out
}

// Section renders the ticket block of a PR body from raw user input using
// the unrestricted extractor
func Section(inputs []string, base string) string {
	return defaultExtractor.Section(inputs, base)
}

// Section renders the ticket block of a PR body from raw user input.
// URLs are kept as typed and ids become links. Ids outside the extractor's
// project keys are dropped; other text is linked verbatim. Empty input renders "None".
func (e *Extractor) Section(inputs []string, base string) string {
	var lines []string
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		switch {
		case in == "":
			continue
		case IsURL(in):
			lines = append(lines, in)
		default:
			ids := e.Extract(in)
			if len(ids) > 0 {
				lines = append(lines, Links(ids, base)...)
				continue
			}
			if len(defaultExtractor.Extract(in)) == 0 {
				lines = append(lines, Link(ID(in), base))
			}
		}
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

// Strip removes every ticket id from text
func Strip(text string) string {
	return ticketPattern.ReplaceAllString(text, "")
}
