package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	mu sync.Mutex

	// Owner and Repo for the mock server
	Owner string
	Repo  string
	// OpenPRs are returned by the list endpoint, filtered by head and base
	OpenPRs []*github.PullRequest
	// CreatedPRs stores PRs that were created (for testing)
	CreatedPRs []*github.PullRequest
	// RequestedReviewers maps PR numbers to the reviewers requested on them
	RequestedReviewers map[int][]string
	// Contributors are the logins returned by the contributors endpoint
	Contributors []string
	// CurrentUser is the login of the authenticated user
	CurrentUser string
	// UsersByEmail maps email addresses to logins for user search
	UsersByEmail map[string]string
	// Searches records every user search query
	Searches []string
	// ErrorResponses maps "METHOD endpoint" to an HTTP status to fail with,
	// where endpoint is one of pulls, reviewers, contributors, user, search
	ErrorResponses map[string]int
	// PageSize splits the contributors list into pages when positive
	PageSize int
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Owner:              "owner",
		Repo:               "repo",
		RequestedReviewers: make(map[int][]string),
		UsersByEmail:       make(map[string]string),
		ErrorResponses:     make(map[string]int),
		CurrentUser:        "octocat",
	}
}

// AddOpenPR registers an open pull request from head into base and returns it
func (c *MockGitHubServerConfig) AddOpenPR(head, base string) *github.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	pr := c.newPR(head, base, "PR "+head)
	c.OpenPRs = append(c.OpenPRs, pr)
	return pr
}

// Created returns a snapshot of the PRs created so far
func (c *MockGitHubServerConfig) Created() []*github.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*github.PullRequest(nil), c.CreatedPRs...)
}

// Reviewers returns the reviewers requested on PR number
func (c *MockGitHubServerConfig) Reviewers(number int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.RequestedReviewers[number]...)
}

// newPR builds a PR numbered after every PR known to the server. Callers hold mu.
func (c *MockGitHubServerConfig) newPR(head, base, title string) *github.PullRequest {
	number := len(c.OpenPRs) + len(c.CreatedPRs) + 1
	return &github.PullRequest{
		Number:  github.Int(number),
		Title:   github.String(title),
		State:   github.String("open"),
		Head:    &github.PullRequestBranch{Ref: github.String(head)},
		Base:    &github.PullRequestBranch{Ref: github.String(base)},
		HTMLURL: github.String(fmt.Sprintf("https://github.com/%s/%s/pull/%d", c.Owner, c.Repo, number)),
	}
}

func (c *MockGitHubServerConfig) failure(method, endpoint string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ErrorResponses[method+" "+endpoint]
}

// NewMockGitHubServer creates an httptest server that mocks GitHub API endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()
	repoPath := "/repos/" + config.Owner + "/" + config.Repo

	guard := func(endpoint string, h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if status := config.failure(r.Method, endpoint); status != 0 {
				writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("GET "+repoPath+"/pulls", guard("pulls", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		head := strings.TrimPrefix(query.Get("head"), config.Owner+":")
		base := query.Get("base")
		state := query.Get("state")

		config.mu.Lock()
		defer config.mu.Unlock()
		prs := []*github.PullRequest{}
		for _, pr := range append(append([]*github.PullRequest{}, config.OpenPRs...), config.CreatedPRs...) {
			if head != "" && pr.GetHead().GetRef() != head {
				continue
			}
			if base != "" && pr.GetBase().GetRef() != base {
				continue
			}
			if state != "" && state != "all" && pr.GetState() != state {
				continue
			}
			prs = append(prs, pr)
		}
		writeJSON(w, http.StatusOK, prs)
	}))

	mux.HandleFunc("POST "+repoPath+"/pulls", guard("pulls", func(w http.ResponseWriter, r *http.Request) {
		var newPR github.NewPullRequest
		if err := json.NewDecoder(r.Body).Decode(&newPR); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		config.mu.Lock()
		defer config.mu.Unlock()
		pr := config.newPR(newPR.GetHead(), newPR.GetBase(), newPR.GetTitle())
		pr.Body = newPR.Body
		pr.Draft = github.Bool(newPR.GetDraft())
		config.CreatedPRs = append(config.CreatedPRs, pr)
		writeJSON(w, http.StatusCreated, pr)
	}))

	mux.HandleFunc("POST "+repoPath+"/pulls/{number}/requested_reviewers", guard("reviewers", func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(r.PathValue("number"))
		if err != nil {
			http.Error(w, "Invalid PR number", http.StatusBadRequest)
			return
		}
		var req github.ReviewersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		config.mu.Lock()
		defer config.mu.Unlock()
		config.RequestedReviewers[number] = append(config.RequestedReviewers[number], req.Reviewers...)
		for _, team := range req.TeamReviewers {
			config.RequestedReviewers[number] = append(config.RequestedReviewers[number], "team:"+team)
		}
		writeJSON(w, http.StatusCreated, &github.PullRequest{Number: github.Int(number)})
	}))

	mux.HandleFunc("GET "+repoPath+"/contributors", guard("contributors", func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		logins := append([]string(nil), config.Contributors...)
		pageSize := config.PageSize
		config.mu.Unlock()

		if pageSize > 0 {
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			if page < 1 {
				page = 1
			}
			start := min((page-1)*pageSize, len(logins))
			end := min(start+pageSize, len(logins))
			if end < len(logins) {
				next := *r.URL
				q := next.Query()
				q.Set("page", strconv.Itoa(page+1))
				next.RawQuery = q.Encode()
				w.Header().Set("Link", fmt.Sprintf(`<http://%s%s>; rel="next"`, r.Host, next.RequestURI()))
			}
			logins = logins[start:end]
		}

		contributors := make([]*github.Contributor, 0, len(logins))
		for _, login := range logins {
			contributors = append(contributors, &github.Contributor{Login: github.String(login)})
		}
		writeJSON(w, http.StatusOK, contributors)
	}))

	mux.HandleFunc("GET /user", guard("user", func(w http.ResponseWriter, r *http.Request) {
		config.mu.Lock()
		defer config.mu.Unlock()
		writeJSON(w, http.StatusOK, &github.User{Login: github.String(config.CurrentUser)})
	}))

	mux.HandleFunc("GET /search/users", guard("search", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		email := strings.TrimSpace(strings.TrimSuffix(query, "in:email"))

		config.mu.Lock()
		defer config.mu.Unlock()
		config.Searches = append(config.Searches, query)
		result := &github.UsersSearchResult{Total: github.Int(0), Users: []*github.User{}}
		if login, ok := config.UsersByEmail[strings.ToLower(email)]; ok {
			result.Total = github.Int(1)
			result.Users = append(result.Users, &github.User{Login: github.String(login)})
		}
		writeJSON(w, http.StatusOK, result)
	}))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, fmt.Sprintf("Unhandled path: %s (method: %s)", r.URL.Path, r.Method), http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

// NewMockGitHubClient creates a GitHub client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
