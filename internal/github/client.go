// Package github provides a client for interacting with the GitHub API.
package github

import (
	"context"

	"github.com/google/go-github/v62/github"
)

// PullRequestInfo contains information about a pull request
// This is a simplified struct to avoid coupling to go-github library
type PullRequestInfo struct {
	Number  int
	HTMLURL string
	Title   string
	Body    string
	State   string
	Draft   bool
	Base    string
	Head    string
}

// Client is an interface for GitHub API interactions
type Client interface {
	// FindOpenPullRequests lists the open pull requests from head into base
	FindOpenPullRequests(ctx context.Context, head, base string) ([]PullRequestInfo, error)

	// CreatePullRequest creates a new pull request and requests its reviewers
	CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequestInfo, error)

	// Contributors returns the logins of the repository contributors
	Contributors(ctx context.Context) ([]string, error)

	// CurrentUser returns the login of the authenticated user
	CurrentUser(ctx context.Context) (string, error)

	// ResolveHandle maps a git identity to a GitHub login
	ResolveHandle(ctx context.Context, identity string, userMap map[string]string) (string, error)

	// OwnerRepo returns the repository owner and name
	OwnerRepo() (owner, repo string)
}

// RESTClient implements Client on top of go-github
type RESTClient struct {
	client *github.Client
	owner  string
	repo   string
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient wraps an authenticated go-github client for owner/repo
func NewRESTClient(client *github.Client, owner, repo string) *RESTClient {
	return &RESTClient{client: client, owner: owner, repo: repo}
}

// OwnerRepo returns the repository owner and name
func (c *RESTClient) OwnerRepo() (string, string) {
	return c.owner, c.repo
}

// FindOpenPullRequests lists the open pull requests from head into base
func (c *RESTClient) FindOpenPullRequests(ctx context.Context, head, base string) ([]PullRequestInfo, error) {
	prs, err := FindOpenPullRequests(ctx, c.client, c.owner, c.repo, head, base)
	if err != nil {
		return nil, err
	}
	out := make([]PullRequestInfo, 0, len(prs))
	for _, pr := range prs {
		out = append(out, toInfo(pr))
	}
	return out, nil
}

// CreatePullRequest creates a new pull request and requests its reviewers.
// When only the reviewer request fails the created pull request is returned
// together with an error wrapping ErrReviewersNotRequested.
func (c *RESTClient) CreatePullRequest(ctx context.Context, opts CreatePROptions) (*PullRequestInfo, error) {
	pr, err := CreatePullRequest(ctx, c.client, c.owner, c.repo, opts)
	if pr == nil {
		return nil, err
	}
	info := toInfo(pr)
	return &info, err
}

// Contributors returns the logins of the repository contributors
func (c *RESTClient) Contributors(ctx context.Context) ([]string, error) {
	return ListContributors(ctx, c.client, c.owner, c.repo)
}

// CurrentUser returns the login of the authenticated user
func (c *RESTClient) CurrentUser(ctx context.Context) (string, error) {
	return GetCurrentUser(ctx, c.client)
}

// ResolveHandle maps a git identity to a GitHub login
func (c *RESTClient) ResolveHandle(ctx context.Context, identity string, userMap map[string]string) (string, error) {
	return ResolveHandle(ctx, c.client, identity, userMap)
}

func toInfo(pr *github.PullRequest) PullRequestInfo {
	info := PullRequestInfo{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		State:   pr.GetState(),
		Draft:   pr.GetDraft(),
	}
	if pr.Base != nil {
		info.Base = pr.Base.GetRef()
	}
	if pr.Head != nil {
		info.Head = pr.Head.GetRef()
	}
	return info
}
