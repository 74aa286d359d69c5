package actions

import (
	"strings"

	"prflow.dev/prflow/internal/config"
	"prflow.dev/prflow/internal/github"
	"prflow.dev/prflow/internal/reviewers"
	"prflow.dev/prflow/internal/runtime"
)

// resolveReviewers turns the chosen reviewers into GitHub logins and team
// slugs. An entry may list several reviewers separated by commas. With
// interactive set, identities that cannot be resolved are asked for and
// remembered in the home config file; otherwise they are skipped.
func resolveReviewers(ctx *runtime.Context, gh github.Client, chosen []string, interactive bool) (users, teams []string) {
	seen := make(map[string]bool)
	add := func(list *[]string, v string) {
		if v == "" || seen[strings.ToLower(v)] {
			return
		}
		seen[strings.ToLower(v)] = true
		*list = append(*list, v)
	}

	for _, entry := range chosen {
		for _, identity := range strings.Split(entry, ",") {
			identity = strings.TrimSpace(identity)
			if identity == "" {
				continue
			}
			if reviewers.Email(identity) == "" {
				u, t := github.ParseReviewers(identity)
				for _, v := range u {
					add(&users, v)
				}
				for _, v := range t {
					add(&teams, v)
				}
				continue
			}

			handle, err := gh.ResolveHandle(ctx.Context, identity, ctx.Config.GitHubUserMap)
			if err != nil {
				ctx.Splog.Debug("failed to resolve %s: %v", identity, err)
			}
			if handle == "" && interactive {
				handle = askHandle(ctx, identity)
			}
			if handle == "" {
				ctx.Splog.Warn("Could not resolve GitHub handle for '%s'. Skipping.", identity)
				continue
			}
			add(&users, handle)
		}
	}
	return users, teams
}

// askHandle prompts for the handle of identity and saves the answer
func askHandle(ctx *runtime.Context, identity string) string {
	email := reviewers.Email(identity)
	handle, err := ctx.Prompter.Input("GitHub username for "+email+" (leave empty to skip)", "")
	if err != nil || handle == "" {
		return ""
	}
	handle = strings.TrimPrefix(handle, "@")

	if ctx.Config.GitHubUserMap == nil {
		ctx.Config.GitHubUserMap = make(map[string]string)
	}
	ctx.Config.GitHubUserMap[strings.ToLower(email)] = handle

	if ctx.HomeConfigPath != "" {
		if err := config.AddToUserMap(ctx.HomeConfigPath, email, handle); err != nil {
			ctx.Splog.Warn("Failed to save GitHub handle for %s: %v", email, err)
		} else {
			ctx.Splog.Debug("saved %s as %s in %s", email, handle, ctx.HomeConfigPath)
		}
	}
	return handle
}
