package runtime

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"prflow.dev/prflow/internal/config"
	"prflow.dev/prflow/internal/git"
	"prflow.dev/prflow/internal/github"
	"prflow.dev/prflow/internal/tui"
)

// GitHubFactory creates the GitHub client on first use
type GitHubFactory func(ctx context.Context) (github.Client, error)

// Context provides access to configuration, collaborators and output for commands
type Context struct {
	Context  context.Context
	Splog    *tui.Splog
	Config   *config.Config
	Git      git.Reader
	Prompter tui.Prompter
	// Stdout receives command output such as JSON records
	Stdout io.Writer
	// WorkDir is the directory prflow runs in
	WorkDir string
	// HomeConfigPath is where learned GitHub handles are saved
	HomeConfigPath string

	githubFactory GitHubFactory
	githubOnce    sync.Once
	github        github.Client
	githubErr     error
}

// Options configures NewContext
type Options struct {
	WorkDir string
	// JSON sends log output to stderr so stdout only carries records
	JSON bool
}

// NewContext loads the configuration and wires the real collaborators
func NewContext(ctx context.Context, opts Options) (*Context, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		workDir = wd
	}

	console := io.Writer(os.Stdout)
	if opts.JSON {
		console = os.Stderr
	}
	splog, err := tui.NewSplogWithConfig(console, tui.GetLogFilePath())
	if err != nil {
		splog, _ = tui.NewSplogWithConfig(console, "")
		splog.Debug("file logging disabled: %v", err)
	}

	homeDir, _ := os.UserHomeDir()
	cfg, warnings := config.Load(config.SearchPaths(workDir, homeDir))
	for _, w := range warnings {
		splog.Warn("%v", w)
	}
	if src := cfg.Source(); src != "" {
		splog.Debug("config loaded from %s", src)
	} else {
		splog.Debug("no config file found, using defaults")
	}

	homeConfig := ""
	if homeDir != "" {
		homeConfig = filepath.Join(homeDir, config.FileName)
	}

	gitClient := git.NewClient(workDir)
	remote := cfg.RemoteName()

	return &Context{
		Context:        ctx,
		Splog:          splog,
		Config:         cfg,
		Git:            gitClient,
		Prompter:       tui.NewSurveyPrompter(),
		Stdout:         os.Stdout,
		WorkDir:        workDir,
		HomeConfigPath: homeConfig,
		githubFactory: func(ctx context.Context) (github.Client, error) {
			client, err := github.NewClientFromRemote(ctx, gitClient.Runner(), remote)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}, nil
}

type contextKey struct{}

// WithContext returns a copy of parent carrying c for GetContext
func WithContext(parent context.Context, c *Context) context.Context {
	return context.WithValue(parent, contextKey{}, c)
}

// GetContext returns the Context stored in ctx by WithContext, or creates a real one
func GetContext(ctx context.Context, opts Options) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c, ok := ctx.Value(contextKey{}).(*Context); ok && c != nil {
		return c, nil
	}
	return NewContext(ctx, opts)
}

// NewTestContext creates a context from explicit collaborators
func NewTestContext(splog *tui.Splog, cfg *config.Config, reader git.Reader, gh github.Client, prompter tui.Prompter, stdout io.Writer) *Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Context{
		Context:  context.Background(),
		Splog:    splog,
		Config:   cfg,
		Git:      reader,
		Prompter: prompter,
		Stdout:   stdout,
		githubFactory: func(context.Context) (github.Client, error) {
			if gh == nil {
				return nil, errGitHubNotConfigured
			}
			return gh, nil
		},
	}
}

// GitHub returns the GitHub client, creating it on first use
func (c *Context) GitHub() (github.Client, error) {
	c.githubOnce.Do(func() {
		if c.githubFactory == nil {
			c.githubErr = errGitHubNotConfigured
			return
		}
		c.github, c.githubErr = c.githubFactory(c.Context)
		if c.githubErr != nil {
			c.github = nil
			c.Splog.Debug("github client unavailable: %v", c.githubErr)
		}
	})
	return c.github, c.githubErr
}

// Close releases the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}
