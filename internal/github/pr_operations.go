package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v62/github"

	"prflow.dev/prflow/internal/reviewers"
)

// ErrReviewersNotRequested is returned alongside a created pull request when
// the reviewer request failed
var ErrReviewersNotRequested = errors.New("reviewers not requested")

// CreatePROptions contains options for creating a pull request
type CreatePROptions struct {
	Title         string
	Body          string
	Head          string
	Base          string
	Draft         bool
	Reviewers     []string
	TeamReviewers []string
}

// CreatePullRequest creates a new pull request
func CreatePullRequest(ctx context.Context, client *github.Client, owner, repo string, opts CreatePROptions) (*github.PullRequest, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}

	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	createdPR, _, err := client.PullRequests.Create(ctx, owner, repo, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	if len(opts.Reviewers) > 0 || len(opts.TeamReviewers) > 0 {
		_, _, err := client.PullRequests.RequestReviewers(ctx, owner, repo, createdPR.GetNumber(), github.ReviewersRequest{
			Reviewers:     opts.Reviewers,
			TeamReviewers: opts.TeamReviewers,
		})
		if err != nil {
			return createdPR, fmt.Errorf("%w on #%d: %w", ErrReviewersNotRequested, createdPR.GetNumber(), err)
		}
	}

	return createdPR, nil
}

// FindOpenPullRequests lists open pull requests whose head is branch head of
// owner's repository and whose base is base. An empty base matches any base.
func FindOpenPullRequests(ctx context.Context, client *github.Client, owner, repo, head, base string) ([]*github.PullRequest, error) {
	prs, _, err := client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", owner, head),
		Base:  base,
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}
	return prs, nil
}

// ListContributors returns the logins of every contributor, most active first
func ListContributors(ctx context.Context, client *github.Client, owner, repo string) ([]string, error) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	logins := []string{}
	for {
		contributors, resp, err := client.Repositories.ListContributors(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list contributors: %w", err)
		}
		for _, c := range contributors {
			if login := c.GetLogin(); login != "" {
				logins = append(logins, login)
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return logins, nil
}

// GetCurrentUser returns the login of the authenticated user
func GetCurrentUser(ctx context.Context, client *github.Client) (string, error) {
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return user.GetLogin(), nil
}

// ResolveHandle maps a git identity such as "Jane Doe <jane@example.com>" to a
// GitHub login. Identities without an email are taken to be logins already.
// The user map is consulted before searching GitHub by email; "" means the
// identity could not be resolved.
func ResolveHandle(ctx context.Context, client *github.Client, identity string, userMap map[string]string) (string, error) {
	email := reviewers.Email(identity)
	if email == "" {
		return strings.TrimSpace(identity), nil
	}

	if handle, ok := userMap[strings.ToLower(email)]; ok && handle != "" {
		return handle, nil
	}
	if handle, ok := userMap[email]; ok && handle != "" {
		return handle, nil
	}

	result, _, err := client.Search.Users(ctx, email+" in:email", &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to search users for %s: %w", email, err)
	}
	if len(result.Users) == 0 {
		return "", nil
	}

	return result.Users[0].GetLogin(), nil
}

// ParseReviewers parses a comma-separated string of reviewers
// Returns individual reviewers and team reviewers
// Team reviewers are specified as "org/team" and returned as the team slug
func ParseReviewers(reviewersStr string) ([]string, []string) {
	if reviewersStr == "" {
		return nil, nil
	}

	var users []string
	var teams []string

	for _, part := range strings.Split(reviewersStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			teams = append(teams, part[strings.LastIndex(part, "/")+1:])
		} else {
			users = append(users, strings.TrimPrefix(part, "@"))
		}
	}

	return users, teams
}
