package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the name of the configuration file
const FileName = ".pr_creator_config.json"

// EnvConfigPath overrides the configuration search with an explicit file
const EnvConfigPath = "PRFLOW_CONFIG"

// Defaults
const (
	DefaultTargetBranch = "main"
	DefaultJiraBaseURL  = "https://jira.example.com/browse/"
	DefaultRemote       = "origin"
)

// Config represents the prflow configuration file
type Config struct {
	DefaultTargetBranch *string             `json:"default_target_branch,omitempty"`
	JiraBaseURL         *string             `json:"jira_base_url,omitempty"`
	JiraProjectKeys     []string            `json:"jira_project_keys,omitempty"`
	ReviewerGroups      map[string][]string `json:"reviewer_groups,omitempty"`
	IgnoredAuthors      []string            `json:"ignored_authors,omitempty"`
	GitHubUserMap       map[string]string   `json:"github_user_map,omitempty"`
	ChecklistURL        *string             `json:"checklist_url,omitempty"`
	Remote              *string             `json:"remote,omitempty"`

	// path of the file the config was read from, empty for defaults
	path string
}

// Source returns the path the configuration was loaded from, or "" for defaults
func (c *Config) Source() string {
	return c.path
}

// DefaultTarget returns the fallback target branch, or "main" as default
func (c *Config) DefaultTarget() string {
	return valueOr(c.DefaultTargetBranch, DefaultTargetBranch)
}

// TicketBaseURL returns the tracker browse URL used for ticket links
func (c *Config) TicketBaseURL() string {
	return valueOr(c.JiraBaseURL, DefaultJiraBaseURL)
}

// RemoteName returns the git remote holding the shared branches, or "origin" as default
func (c *Config) RemoteName() string {
	return valueOr(c.Remote, DefaultRemote)
}

// Checklist returns the review checklist URL, or "" when none is configured
func (c *Config) Checklist() string {
	return valueOr(c.ChecklistURL, "")
}

// Handle returns the GitHub handle remembered for email
func (c *Config) Handle(email string) (string, bool) {
	h, ok := c.GitHubUserMap[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		h, ok = c.GitHubUserMap[strings.TrimSpace(email)]
	}
	return h, ok && h != ""
}

func valueOr(p *string, def string) string {
	if p != nil && strings.TrimSpace(*p) != "" {
		return *p
	}
	return def
}

// SearchPaths returns the files Load looks at, in order.
// PRFLOW_CONFIG replaces the search entirely.
func SearchPaths(workDir, homeDir string) []string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return []string{p}
	}
	var paths []string
	if workDir != "" {
		paths = append(paths, filepath.Join(workDir, FileName))
	}
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, FileName))
	}
	return paths
}

// Load reads the first file in paths that parses. A missing file is skipped
// silently; a file that fails to parse is skipped and reported in the returned
// warnings. With no usable file the defaults are returned.
func Load(paths []string) (*Config, []error) {
	var warnings []error
	for _, p := range paths {
		cfg, err := readFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		return cfg, warnings
	}
	return &Config{}, warnings
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.path = path
	return &cfg, nil
}

// AddToUserMap remembers the GitHub handle for email in the config file at
// path, keeping every other key of the file as it is.
func AddToUserMap(path, email, handle string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	handle = strings.TrimSpace(handle)
	if email == "" || handle == "" {
		return fmt.Errorf("email and handle are required")
	}

	raw := map[string]json.RawMessage{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read config: %w", err)
	}

	userMap := map[string]string{}
	if existing, ok := raw["github_user_map"]; ok {
		if err := json.Unmarshal(existing, &userMap); err != nil {
			return fmt.Errorf("failed to parse github_user_map: %w", err)
		}
	}
	userMap[email] = handle

	encoded, err := json.Marshal(userMap)
	if err != nil {
		return fmt.Errorf("failed to marshal user map: %w", err)
	}
	raw["github_user_map"] = encoded

	configJSON, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, configJSON, 0600)
}
