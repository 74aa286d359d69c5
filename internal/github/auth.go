package github

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	prerrors "prflow.dev/prflow/internal/errors"
	"prflow.dev/prflow/internal/git"
)

// EnvToken is the environment variable checked before asking the gh CLI
const EnvToken = "GITHUB_TOKEN"

// NewClientFromRemote authenticates and creates a client for the repository
// behind remote. Failures wrap ErrGHUnavailable.
func NewClientFromRemote(ctx context.Context, runner *git.CommandRunner, remote string) (*RESTClient, error) {
	token, err := Token(ctx, runner.WorkingDir())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", prerrors.ErrGHUnavailable, err)
	}

	remoteURL, err := runner.Run(ctx, "config", "--get", "remote."+remote+".url")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get remote URL: %w", prerrors.ErrGHUnavailable, err)
	}

	repoInfo, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", prerrors.ErrGHUnavailable, err)
	}

	client, err := createGitHubClient(ctx, repoInfo.Hostname, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", prerrors.ErrGHUnavailable, err)
	}

	return NewRESTClient(client, repoInfo.Owner, repoInfo.Repo), nil
}

// createGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname == "" || hostname == "github.com" {
		return client, nil
	}

	// GitHub Enterprise serves REST under /api/v3/ and uploads under /api/uploads/
	baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
	}
	uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
	}
	client.BaseURL = baseURL
	client.UploadURL = uploadURL

	return client, nil
}

// Token gets a GitHub token from the environment or the gh CLI
func Token(ctx context.Context, dir string) (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, nil
	}

	output, err := git.NewGHRunner(dir).Run(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("failed to get GitHub token: %w", err)
	}

	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("empty GitHub token")
	}

	return token, nil
}

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// ParseRemoteURL parses a git remote URL and extracts hostname, owner, and repo
// Supports both github.com and GitHub Enterprise URLs
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.company.com/owner/repo.git
func ParseRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, "/")
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	var hostname, path string

	switch {
	case strings.Contains(remoteURL, "://"):
		u, err := url.Parse(remoteURL)
		if err != nil {
			return nil, fmt.Errorf("invalid remote URL %q: %w", remoteURL, err)
		}
		hostname = u.Hostname()
		path = strings.TrimPrefix(u.Path, "/")
	case strings.Contains(remoteURL, "@"):
		// scp-like syntax: git@hostname:owner/repo
		hostAndPath := remoteURL[strings.Index(remoteURL, "@")+1:]
		var ok bool
		hostname, path, ok = strings.Cut(hostAndPath, ":")
		if !ok {
			return nil, fmt.Errorf("invalid SSH remote URL %q: missing path", remoteURL)
		}
	default:
		return nil, fmt.Errorf("unsupported remote URL %q", remoteURL)
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid remote URL %q: path must be owner/repo", remoteURL)
	}
	owner := parts[len(parts)-2]
	repo := parts[len(parts)-1]

	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL %q", remoteURL)
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    owner,
		Repo:     repo,
	}, nil
}
