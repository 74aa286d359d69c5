package testhelpers

import (
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
// Scenes never change the process working directory, so they are safe in
// parallel tests.
type Scene struct {
	Dir  string
	Repo *GitRepo
	// Origin is the bare remote registered as "origin", set by WithOrigin
	Origin *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// Cleanup is handled by t.TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "repo")
	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{Dir: dir, Repo: repo}
	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// WithOrigin makes an initial commit, creates a bare "origin" remote next to
// the repository and pushes main to it.
func WithOrigin(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	origin, err := NewBareRepo(filepath.Join(filepath.Dir(scene.Dir), "origin.git"))
	if err != nil {
		return err
	}
	scene.Origin = origin
	if err := scene.Repo.AddRemote("origin", origin.Dir); err != nil {
		return err
	}
	return scene.Repo.Push("origin", "main")
}

// Setups combines several setup functions, run in order.
func Setups(setups ...SceneSetup) SceneSetup {
	return func(scene *Scene) error {
		for _, s := range setups {
			if err := s(scene); err != nil {
				return err
			}
		}
		return nil
	}
}
