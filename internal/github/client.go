package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v4"
)

// NewClient creates a GitHub client authenticated with the given token.
func NewClient(token string) *Client {
	return &Client{
		Token:   token,
		BaseURL: DefaultAPIEndpoint,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithBaseURL returns a copy of the client pointed at a custom base URL
// (for tests or GitHub Enterprise).
func (c *Client) WithBaseURL(baseURL string) *Client {
	return &Client{
		Token:      c.Token,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: c.HTTPClient,
	}
}

// WithHTTPClient returns a copy of the client using a custom HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		Token:      c.Token,
		BaseURL:    c.BaseURL,
		HTTPClient: httpClient,
	}
}

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: HTTP %d: %s", e.StatusCode, e.Message)
}

// CreateIssue creates an issue in owner/repo.
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, issue NewIssue) (*Issue, error) {
	var created Issue
	path := fmt.Sprintf("/repos/%s/%s/issues", owner, repo)
	if err := c.do(ctx, http.MethodPost, path, issue, &created); err != nil {
		return nil, fmt.Errorf("creating issue in %s/%s: %w", owner, repo, err)
	}
	return &created, nil
}

// GetIssue fetches a single issue by number.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error) {
	var issue Issue
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number)
	if err := c.do(ctx, http.MethodGet, path, nil, &issue); err != nil {
		return nil, fmt.Errorf("fetching issue %s/%s#%d: %w", owner, repo, number, err)
	}
	return &issue, nil
}

// ListIssues lists issues in owner/repo, filtered by opts.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts ListOptions) ([]Issue, error) {
	state := opts.State
	if state == "" {
		state = "open"
	}
	params := url.Values{}
	params.Set("state", state)
	if len(opts.Labels) > 0 {
		params.Set("labels", strings.Join(opts.Labels, ","))
	}

	var issues []Issue
	path := fmt.Sprintf("/repos/%s/%s/issues?%s", owner, repo, params.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &issues); err != nil {
		return nil, fmt.Errorf("listing issues in %s/%s: %w", owner, repo, err)
	}
	return issues, nil
}

// GetRepository fetches repository metadata (used for the default branch).
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var r Repository
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := c.do(ctx, http.MethodGet, path, nil, &r); err != nil {
		return nil, fmt.Errorf("fetching repository %s/%s: %w", owner, repo, err)
	}
	return &r, nil
}

// CreateBranch creates a branch from fromBranch. When fromBranch is
// empty the repository's default branch is used.
func (c *Client) CreateBranch(ctx context.Context, owner, repo, branch, fromBranch string) (*Ref, error) {
	if fromBranch == "" {
		repository, err := c.GetRepository(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		fromBranch = repository.DefaultBranch
	}

	var base Ref
	path := fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", owner, repo, fromBranch)
	if err := c.do(ctx, http.MethodGet, path, nil, &base); err != nil {
		return nil, fmt.Errorf("resolving base branch %q: %w", fromBranch, err)
	}

	payload := map[string]string{
		"ref": "refs/heads/" + branch,
		"sha": base.Object.SHA,
	}
	var created Ref
	path = fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo)
	if err := c.do(ctx, http.MethodPost, path, payload, &created); err != nil {
		return nil, fmt.Errorf("creating branch %q: %w", branch, err)
	}
	return &created, nil
}

// CreatePull opens a pull request.
func (c *Client) CreatePull(ctx context.Context, owner, repo string, pull NewPull) (*PullRequest, error) {
	var created PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls", owner, repo)
	if err := c.do(ctx, http.MethodPost, path, pull, &created); err != nil {
		return nil, fmt.Errorf("creating pull request in %s/%s: %w", owner, repo, err)
	}
	return &created, nil
}

// UpdatePull patches an existing pull request. Nil fields in update
// are left unchanged.
func (c *Client) UpdatePull(ctx context.Context, owner, repo string, number int, update PullUpdate) (*PullRequest, error) {
	var updated PullRequest
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, number)
	if err := c.do(ctx, http.MethodPatch, path, update, &updated); err != nil {
		return nil, fmt.Errorf("updating pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	return &updated, nil
}

// ListPullFiles lists the files changed by a pull request.
func (c *Client) ListPullFiles(ctx context.Context, owner, repo string, number int) ([]PullFile, error) {
	var files []PullFile
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d/files", owner, repo, number)
	if err := c.do(ctx, http.MethodGet, path, nil, &files); err != nil {
		return nil, fmt.Errorf("listing files for pull %s/%s#%d: %w", owner, repo, number, err)
	}
	return files, nil
}

// do performs one API call, retrying transient failures (network
// errors, 429, 5xx) with exponential backoff. 4xx responses other than
// 429 are permanent.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
	}

	attempt := func() error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.Token)
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
			}
			return nil
		}

		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(data)}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return apiErr // retryable
		}
		return backoff.Permanent(apiErr)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries),
		ctx,
	)
	return backoff.Retry(attempt, policy)
}

// extractMessage pulls the "message" field out of a GitHub error
// response, falling back to the raw body.
func extractMessage(data []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(data))
}
