package git

import (
	"context"
	"errors"
	"sync"

	prerrors "prflow.dev/prflow/internal/errors"
)

// Reader is the read side of git used by the flows
type Reader interface {
	IsRepo(ctx context.Context) bool
	Fetch(ctx context.Context, remote string) error
	CurrentBranch(ctx context.Context) (string, error)
	RemoteBranches(ctx context.Context, remote string) ([]string, error)
	CommitSubjects(ctx context.Context, remote, base, head string) ([]string, error)
	Authors(ctx context.Context, limit int) ([]string, error)
	UserEmail(ctx context.Context) (string, error)
}

// Client implements Reader with the git binary and go-git
type Client struct {
	runner *CommandRunner

	mu   sync.Mutex
	repo *Repository
}

var _ Reader = (*Client)(nil)

// NewClient creates a client for the repository containing dir
func NewClient(dir string) *Client {
	return &Client{runner: NewCommandRunner(dir)}
}

// WithEnv returns a client whose git commands run with env added
func (c *Client) WithEnv(env ...string) *Client {
	return &Client{runner: c.runner.WithEnv(env...)}
}

// Runner returns the command runner used by the client
func (c *Client) Runner() *CommandRunner {
	return c.runner
}

func (c *Client) repository() (*Repository, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.repo != nil {
		return c.repo, nil
	}
	dir := c.runner.WorkingDir()
	if dir == "" {
		dir = "."
	}
	repo, err := OpenRepository(dir)
	if err != nil {
		return nil, err
	}
	c.repo = repo
	return repo, nil
}

// IsRepo reports whether the working directory is inside a work tree
func (c *Client) IsRepo(ctx context.Context) bool {
	out, err := c.runner.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Fetch updates the remote-tracking branches of remote
func (c *Client) Fetch(ctx context.Context, remote string) error {
	_, err := c.runner.Run(ctx, "fetch", remote, "--prune")
	return err
}

// CurrentBranch returns the checked out branch
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	if repo, err := c.repository(); err == nil {
		if branch, err := repo.CurrentBranch(); err == nil {
			return branch, nil
		}
	} else if errors.Is(err, prerrors.ErrNotGitRepo) {
		return "", err
	}
	branch, err := c.runner.Run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	if branch == "" {
		return "", errors.New("HEAD is not on a branch")
	}
	return branch, nil
}

// RemoteBranches lists the branches of remote without the remote prefix
func (c *Client) RemoteBranches(_ context.Context, remote string) ([]string, error) {
	repo, err := c.repository()
	if err != nil {
		return nil, err
	}
	return repo.RemoteBranches(remote)
}

// CommitSubjects returns the subjects of the non-merge commits on head that are
// not on remote/base, newest first. A base that does not exist yields no commits.
func (c *Client) CommitSubjects(ctx context.Context, remote, base, head string) ([]string, error) {
	baseRef := base
	if remote != "" {
		baseRef = remote + "/" + base
	}
	if _, err := c.runner.Run(ctx, "rev-parse", "--verify", "--quiet", baseRef); err != nil {
		var gitErr *prerrors.GitCommandError
		if errors.As(err, &gitErr) && gitErr.ExitCode() == 1 {
			return []string{}, nil
		}
		return nil, err
	}
	return c.runner.RunLines(ctx, "log", baseRef+".."+head, "--no-merges", "--pretty=format:%s")
}

// Authors returns the author of each commit in the repository, newest first
func (c *Client) Authors(_ context.Context, limit int) ([]string, error) {
	repo, err := c.repository()
	if err != nil {
		return nil, err
	}
	return repo.Authors(limit)
}

// UserEmail returns the configured user.email, or "" when it is not set
func (c *Client) UserEmail(ctx context.Context) (string, error) {
	email, err := c.runner.Run(ctx, "config", "user.email")
	var gitErr *prerrors.GitCommandError
	if errors.As(err, &gitErr) && gitErr.ExitCode() == 1 {
		return "", nil
	}
	return email, err
}
