package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	prerrors "prflow.dev/prflow/internal/errors"
)

// Repository wraps a go-git repository
type Repository struct {
	repo *gogit.Repository
	// go-git object access is not safe for concurrent packfile reads
	mu sync.Mutex
}

// OpenRepository opens the git repository containing path
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%s: %w", absPath, prerrors.ErrNotGitRepo)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return &Repository{repo: repo}, nil
}

// CurrentBranch returns the current branch name
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return head.Name().Short(), nil
}

// RemoteBranches returns the branches of remote without the remote prefix, sorted.
// The symbolic HEAD reference is skipped.
func (r *Repository) RemoteBranches(remote string) ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	prefix := "refs/remotes/" + remote + "/"
	names := []string{}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if !name.IsRemote() || !strings.HasPrefix(name.String(), prefix) {
			return nil
		}
		short := strings.TrimPrefix(name.String(), prefix)
		if short == "HEAD" || short == "" {
			return nil
		}
		names = append(names, short)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate references: %w", err)
	}

	sort.Strings(names)
	return names, nil
}

// Authors returns "Name <email>" for each commit reachable from any reference,
// newest first. A positive limit caps the number of commits read.
func (r *Repository) Authors(limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	iter, err := r.repo.Log(&gogit.LogOptions{All: true, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	authors := []string{}
	err = iter.ForEach(func(c *object.Commit) error {
		authors = append(authors, fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email))
		if limit > 0 && len(authors) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate commits: %w", err)
	}
	return authors, nil
}
