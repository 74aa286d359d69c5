// Package strategy describes the supported branching strategies as data and
// resolves the next legal target branch for a given branch.
package strategy

import (
	"strings"

	prerrors "prflow.dev/prflow/internal/errors"
)

// Strategy is a named branching-flow policy
type Strategy string

// Supported strategies
const (
	Release Strategy = "Release"
	Hotfix  Strategy = "Hotfix"
	Manual  Strategy = "Manual"
)

// All lists the strategies in prompt order
var All = []Strategy{Release, Hotfix, Manual}

// Parse converts a user-supplied tag into a Strategy, ignoring case.
// Any other value yields an *errors.InvalidStrategyError.
func Parse(s string) (Strategy, error) {
	for _, st := range All {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", prerrors.NewInvalidStrategyError(s)
}

// Valid reports whether s is one of the supported strategies
func (s Strategy) Valid() bool {
	for _, st := range All {
		if s == st {
			return true
		}
	}
	return false
}

func (s Strategy) String() string {
	return string(s)
}

// Naming controls how the branch name of a successor stage is produced
type Naming int

const (
	// NamingNone is used by stages that are never a successor
	NamingNone Naming = iota
	// NamingFixed targets the first existing name of the stage, else its first name
	NamingFixed
	// NamingParent drops the last path segment of the current branch
	NamingParent
	// NamingEnvironments fans out to every Release environment branch
	NamingEnvironments
)

// Pattern recognises the branches belonging to a stage. Matching is case-sensitive.
type Pattern struct {
	// Names are exact branch names
	Names []string
	// Prefixes are branch name prefixes such as "release/"
	Prefixes []string
	// Segments, when non-zero, is the exact number of "/"-separated segments a prefixed branch must have
	Segments int
}

// Matches reports whether branch belongs to the pattern
func (p Pattern) Matches(branch string) bool {
	if branch == "" {
		return false
	}
	for _, n := range p.Names {
		if branch == n {
			return true
		}
	}
	for _, prefix := range p.Prefixes {
		if !strings.HasPrefix(branch, prefix) || len(branch) == len(prefix) {
			continue
		}
		if p.Segments > 0 && len(strings.Split(branch, "/")) != p.Segments {
			continue
		}
		return true
	}
	return false
}

// Globs describes the pattern as shell-style globs, exact names first
func (p Pattern) Globs() []string {
	out := append([]string{}, p.Names...)
	for _, prefix := range p.Prefixes {
		n := 1
		if p.Segments > 0 {
			n = max(p.Segments-strings.Count(prefix, "/"), 1)
		}
		out = append(out, prefix+strings.TrimSuffix(strings.Repeat("*/", n), "/"))
	}
	return out
}

// Stage is one step of a strategy's branch progression
type Stage struct {
	Name    string
	Pattern Pattern
	Naming  Naming
	// Next is the name of the successor stage; empty for the last stage
	Next string
}

// HasNext reports whether the stage has a successor
func (s Stage) HasNext() bool {
	return s.Next != ""
}

// environments are the Release deployment branches, one group per environment.
// The first name of a group is its canonical name.
var environments = [][]string{
	{"develop", "staging"},
	{"alpha"},
	{"beta"},
	{"live", "main", "master"},
}

func flatten(groups [][]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var catalog = map[Strategy][]Stage{
	Release: {
		{Name: "feature", Pattern: Pattern{Prefixes: []string{"feature/", "feat/", "bugfix/", "fix/", "chore/"}}, Next: "develop"},
		{Name: "develop", Pattern: Pattern{Names: environments[0], Prefixes: []string{"develop/", "staging/"}}, Naming: NamingFixed, Next: "alpha"},
		{Name: "alpha", Pattern: Pattern{Names: environments[1], Prefixes: []string{"alpha/"}}, Naming: NamingFixed, Next: "beta"},
		{Name: "beta", Pattern: Pattern{Names: environments[2], Prefixes: []string{"beta/"}}, Naming: NamingFixed, Next: "live"},
		{Name: "live", Pattern: Pattern{Names: environments[3], Prefixes: []string{"release/", "live/"}}, Naming: NamingFixed},
	},
	Hotfix: {
		{Name: "child-hotfix", Pattern: Pattern{Prefixes: []string{"hotfix/"}, Segments: 3}, Next: "parent-hotfix"},
		{Name: "parent-hotfix", Pattern: Pattern{Prefixes: []string{"hotfix/"}, Segments: 2}, Naming: NamingParent, Next: "all-environments"},
		{Name: "all-environments", Pattern: Pattern{Names: flatten(environments)}, Naming: NamingEnvironments},
	},
}

// StagesFor returns the ordered stages of a strategy. Manual has none.
// The returned slice is a copy; the catalog itself is never modified.
func StagesFor(s Strategy) []Stage {
	stages := catalog[s]
	if len(stages) == 0 {
		return nil
	}
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// StageByName looks up a stage of a strategy by name
func StageByName(s Strategy, name string) (Stage, bool) {
	for _, st := range catalog[s] {
		if st.Name == name {
			return st, true
		}
	}
	return Stage{}, false
}

// Match returns the first stage, in catalog order, whose pattern matches branch
func Match(s Strategy, branch string) (Stage, bool) {
	return firstMatch(catalog[s], branch)
}
