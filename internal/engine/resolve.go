package engine

import (
	"fmt"
	"strings"

	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/strategy"
)

// ResolveTargets determines the target branches for a request.
// Chosen targets win, then the strategy's suggestion, then the default target.
// A target equal to the source branch is dropped; when nothing is left the
// result is errors.ErrNoTargets.
func ResolveTargets(req TargetRequest) (Resolution, error) {
	resolved, err := strategy.Resolve(req.Strategy, req.Current, req.Available)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{Resolved: resolved}
	switch {
	case len(req.Chosen) > 0:
		res.Targets = dedupe(req.Chosen, req.Current)
	case resolved.HasBranch():
		res.Targets = dedupe(resolved.Branches, req.Current)
	default:
		res.Targets = dedupe([]string{req.DefaultTarget}, req.Current)
		res.Fallback = true
	}
	if len(res.Targets) == 0 {
		return res, fmt.Errorf("resolving targets for %q: %w", req.Current, prerrors.ErrNoTargets)
	}
	return res, nil
}

func dedupe(names []string, current string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || n == current || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
