// Package reviewers ranks and filters candidate reviewers taken from commit history.
package reviewers

import (
	"slices"
	"strings"
)

// Candidate is a potential reviewer and how often they appear in the history
type Candidate struct {
	Name  string
	Count int
}

// Rank counts each distinct author, skipping excludeSelf, and orders them by
// descending count. Ties keep the order in which authors were first seen.
func Rank(authors []string, excludeSelf string) []Candidate {
	index := make(map[string]int)
	out := []Candidate{}
	for _, a := range authors {
		if a == "" || (excludeSelf != "" && a == excludeSelf) {
			continue
		}
		if i, ok := index[a]; ok {
			out[i].Count++
			continue
		}
		index[a] = len(out)
		out = append(out, Candidate{Name: a, Count: 1})
	}
	slices.SortStableFunc(out, func(x, y Candidate) int {
		return y.Count - x.Count
	})
	return out
}

// Names returns the candidate names in order
func Names(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Name)
	}
	return out
}

// Exclusions describes authors that must not be offered as reviewers
type Exclusions struct {
	// Email of the current user; any author containing it is dropped
	Email string
	// Handle of the current user, compared case-insensitively
	Handle string
	// Ignored substrings, typically bots
	Ignored []string
}

// Filter drops the current user and ignored authors, keeping order
func Filter(authors []string, ex Exclusions) []string {
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		if ex.excludes(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (ex Exclusions) excludes(author string) bool {
	if ex.Email != "" && strings.Contains(author, ex.Email) {
		return true
	}
	if ex.Handle != "" && strings.EqualFold(author, ex.Handle) {
		return true
	}
	for _, ig := range ex.Ignored {
		if ig != "" && strings.Contains(author, ig) {
			return true
		}
	}
	return false
}

// Email returns the address of an identity such as "Jane Doe <jane@example.com>".
// A bare address is returned as is; anything else yields "".
func Email(identity string) string {
	identity = strings.TrimSpace(identity)
	if start := strings.LastIndex(identity, "<"); start >= 0 {
		if end := strings.Index(identity[start:], ">"); end > 1 {
			return strings.TrimSpace(identity[start+1 : start+end])
		}
		return ""
	}
	if strings.Contains(identity, "@") && !strings.ContainsAny(identity, " \t") {
		return identity
	}
	return ""
}

// ExpandGroups replaces every entry naming a reviewer group with the group's
// members. The result has no duplicates and keeps first-seen order.
func ExpandGroups(selected []string, groups map[string][]string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range selected {
		if members, ok := groups[strings.TrimSpace(s)]; ok {
			for _, m := range members {
				add(m)
			}
			continue
		}
		add(s)
	}
	return out
}
