// Package linear provides a client for the Linear GraphQL API.
//
// Only the surface the bridge needs is implemented: issue creation,
// issue lookup, and team validation. Authentication is the workspace
// API key sent in the Authorization header.
package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAPIEndpoint is the Linear GraphQL endpoint.
	DefaultAPIEndpoint = "https://api.linear.app/graphql"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Client provides methods to interact with the Linear GraphQL API.
type Client struct {
	APIKey     string
	TeamID     string // Default team for issue creation
	Endpoint   string
	HTTPClient *http.Client
}

// Issue represents a Linear issue.
type Issue struct {
	ID          string     `json:"id"`
	Identifier  string     `json:"identifier"` // e.g. "OPS-42"
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Priority    int        `json:"priority"` // 0 none, 1 urgent .. 4 low
	State       IssueState `json:"state"`
	CreatedAt   *time.Time `json:"createdAt"`
}

// IssueState is the workflow state of a Linear issue.
type IssueState struct {
	Name string `json:"name"`
}

// Team identifies a Linear team.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// NewIssue is the payload for creating a Linear issue. TeamID falls
// back to the client's default team when empty.
type NewIssue struct {
	Title       string
	Description string
	TeamID      string
	Priority    int
}

// NewClient creates a Linear client for the given API key and default team.
func NewClient(apiKey, teamID string) *Client {
	return &Client{
		APIKey:   apiKey,
		TeamID:   teamID,
		Endpoint: DefaultAPIEndpoint,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithEndpoint returns a copy of the client pointed at a custom endpoint.
func (c *Client) WithEndpoint(endpoint string) *Client {
	return &Client{
		APIKey:     c.APIKey,
		TeamID:     c.TeamID,
		Endpoint:   endpoint,
		HTTPClient: c.HTTPClient,
	}
}

// WithHTTPClient returns a copy of the client using a custom HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		APIKey:     c.APIKey,
		TeamID:     c.TeamID,
		Endpoint:   c.Endpoint,
		HTTPClient: httpClient,
	}
}

// ParsePriority maps a human-readable priority to Linear's numeric
// scale. Unknown values map to 0 (no priority).
func ParsePriority(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent":
		return 1
	case "high":
		return 2
	case "medium", "normal":
		return 3
	case "low":
		return 4
	default:
		return 0
	}
}

const issueCreateMutation = `
mutation IssueCreate($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue {
      id
      identifier
      title
      description
      url
      priority
      state { name }
      createdAt
    }
  }
}`

// CreateIssue creates an issue in the given team.
func (c *Client) CreateIssue(ctx context.Context, issue NewIssue) (*Issue, error) {
	teamID := issue.TeamID
	if teamID == "" {
		teamID = c.TeamID
	}
	if teamID == "" {
		return nil, fmt.Errorf("linear: no team ID provided and no default configured")
	}

	input := map[string]interface{}{
		"title":  issue.Title,
		"teamId": teamID,
	}
	if issue.Description != "" {
		input["description"] = issue.Description
	}
	if issue.Priority != 0 {
		input["priority"] = issue.Priority
	}

	var resp struct {
		IssueCreate struct {
			Success bool  `json:"success"`
			Issue   Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.query(ctx, issueCreateMutation, map[string]interface{}{"input": input}, &resp); err != nil {
		return nil, fmt.Errorf("creating linear issue: %w", err)
	}
	if !resp.IssueCreate.Success {
		return nil, fmt.Errorf("creating linear issue: API reported failure")
	}
	return &resp.IssueCreate.Issue, nil
}

const issueQuery = `
query Issue($id: String!) {
  issue(id: $id) {
    id
    identifier
    title
    description
    url
    priority
    state { name }
    createdAt
  }
}`

// GetIssue fetches an issue by ID or identifier (e.g. "OPS-42").
func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	var resp struct {
		Issue *Issue `json:"issue"`
	}
	if err := c.query(ctx, issueQuery, map[string]interface{}{"id": id}, &resp); err != nil {
		return nil, fmt.Errorf("fetching linear issue %s: %w", id, err)
	}
	if resp.Issue == nil {
		return nil, fmt.Errorf("linear issue %s not found", id)
	}
	return resp.Issue, nil
}

const teamQuery = `
query Team($id: String!) {
  team(id: $id) {
    id
    name
    key
  }
}`

// GetTeam fetches a team by ID, primarily to validate configuration.
func (c *Client) GetTeam(ctx context.Context, teamID string) (*Team, error) {
	var resp struct {
		Team *Team `json:"team"`
	}
	if err := c.query(ctx, teamQuery, map[string]interface{}{"id": teamID}, &resp); err != nil {
		return nil, fmt.Errorf("fetching linear team %s: %w", teamID, err)
	}
	if resp.Team == nil {
		return nil, fmt.Errorf("linear team %s not found", teamID)
	}
	return resp.Team, nil
}

// graphqlError is one entry in a GraphQL errors array.
type graphqlError struct {
	Message string `json:"message"`
}

// query executes one GraphQL request and decodes the data field into out.
func (c *Client) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("marshaling query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}
	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}
