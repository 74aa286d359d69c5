package strategy

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	prerrors "prflow.dev/prflow/internal/errors"
)

// Target is the outcome of resolving a branch against a strategy
type Target struct {
	// Branch is the primary suggested target, Branches[0]
	Branch string
	// Branches lists every suggested target. Only the all-environments stage yields more than one.
	Branches []string
	// Stage is the stage the current branch was classified into; nil for Manual or no match
	Stage *Stage
	// IsSuggestion is true when the target was computed rather than chosen
	IsSuggestion bool
	// Exists is true when every suggested branch is present in the available set
	Exists bool
	// Derived marks a sibling proposed for a branch on the last stage
	Derived bool
}

// Matched reports whether the current branch fit a stage
func (t Target) Matched() bool {
	return t.Stage != nil
}

// HasBranch reports whether a target branch was computed
func (t Target) HasBranch() bool {
	return len(t.Branches) > 0
}

// Resolve classifies current against the stages of s and computes the next legal target.
// A branch that fits no stage, and the Manual strategy, yield a zero Target with no error.
func Resolve(s Strategy, current string, available []string) (Target, error) {
	if !s.Valid() {
		return Target{}, prerrors.NewInvalidStrategyError(string(s))
	}
	if s == Manual {
		return Target{}, nil
	}

	stage, ok := firstMatch(catalog[s], current)
	if !ok {
		return Target{}, nil
	}
	result := Target{Stage: &stage}

	var branches []string
	if stage.HasNext() {
		next, ok := StageByName(s, stage.Next)
		if !ok {
			return result, nil
		}
		branches = nameFor(next, current, available)
	} else if sibling, ok := NextSibling(current); ok {
		branches = []string{sibling}
		result.Derived = true
	}
	if len(branches) == 0 {
		return result, nil
	}

	result.Branch = branches[0]
	result.Branches = branches
	result.IsSuggestion = true
	result.Exists = containsAll(available, branches)
	return result, nil
}

// firstMatch returns the earliest stage whose pattern matches branch
func firstMatch(stages []Stage, branch string) (Stage, bool) {
	for _, st := range stages {
		if st.Pattern.Matches(branch) {
			return st, true
		}
	}
	return Stage{}, false
}

// nameFor applies the naming convention of the successor stage
func nameFor(next Stage, current string, available []string) []string {
	switch next.Naming {
	case NamingFixed:
		if len(next.Pattern.Names) == 0 {
			return nil
		}
		if name, ok := firstExisting(next.Pattern.Names, available); ok {
			return []string{name}
		}
		return []string{next.Pattern.Names[0]}
	case NamingParent:
		i := strings.LastIndex(current, "/")
		if i <= 0 {
			return nil
		}
		return []string{current[:i]}
	case NamingEnvironments:
		return environmentTargets(available)
	default:
		return nil
	}
}

// environmentTargets picks the first existing name of every environment group.
// When none of the environments exist, the canonical names are proposed.
func environmentTargets(available []string) []string {
	var out []string
	for _, group := range environments {
		if name, ok := firstExisting(group, available); ok {
			out = append(out, name)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, group := range environments {
		out = append(out, group[0])
	}
	return out
}

func firstExisting(names, available []string) (string, bool) {
	for _, n := range names {
		for _, a := range available {
			if a == n {
				return n, true
			}
		}
	}
	return "", false
}

func containsAll(available, names []string) bool {
	set := make(map[string]bool, len(available))
	for _, a := range available {
		set[a] = true
	}
	for _, n := range names {
		if !set[n] {
			return false
		}
	}
	return true
}

var (
	letterSuffix  = regexp.MustCompile(`^(.*[0-9]-)([A-Za-z]+)$`)
	numericSuffix = regexp.MustCompile(`^(.*?)([0-9]+)$`)
)

// NextSibling derives the parallel continuation of a versioned branch.
// A trailing letter suffix after a version advances like a spreadsheet column
// (release/1.2.3-a -> release/1.2.3-b, -z -> -aa); otherwise a trailing number is
// incremented keeping its width (release/1.2.3 -> release/1.2.4). Branches without
// either suffix have no sibling.
func NextSibling(branch string) (string, bool) {
	if m := letterSuffix.FindStringSubmatch(branch); m != nil {
		return m[1] + nextLetters(m[2]), true
	}
	if m := numericSuffix.FindStringSubmatch(branch); m != nil {
		n, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil || n == math.MaxUint64 {
			return "", false
		}
		next := strconv.FormatUint(n+1, 10)
		if pad := len(m[2]) - len(next); pad > 0 {
			next = strings.Repeat("0", pad) + next
		}
		return m[1] + next, true
	}
	return "", false
}

// nextLetters increments s as a base-26 column label, keeping the case of each letter
func nextLetters(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch b[i] {
		case 'z':
			b[i] = 'a'
		case 'Z':
			b[i] = 'A'
		default:
			b[i]++
			return string(b)
		}
	}
	first := byte('a')
	if len(b) > 0 && b[0] == 'A' {
		first = 'A'
	}
	return string(first) + string(b)
}
