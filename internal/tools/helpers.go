// Package tools implements the MCP tool handlers exposed by the bridge.
//
// Each tool is one file: a struct receiving its dependencies, a
// Definition() returning the mcp-go tool schema, and a Handle method.
// Tools depend on narrow interfaces rather than the concrete API
// clients so the handlers can be tested without any network.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ibraheem4/github-mcp/internal/github"
)

// GitHubAPI is the subset of the GitHub client the tools consume.
type GitHubAPI interface {
	CreateIssue(ctx context.Context, owner, repo string, issue github.NewIssue) (*github.Issue, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	ListIssues(ctx context.Context, owner, repo string, opts github.ListOptions) ([]github.Issue, error)
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	CreateBranch(ctx context.Context, owner, repo, branch, fromBranch string) (*github.Ref, error)
	CreatePull(ctx context.Context, owner, repo string, pull github.NewPull) (*github.PullRequest, error)
	UpdatePull(ctx context.Context, owner, repo string, number int, update github.PullUpdate) (*github.PullRequest, error)
}

// RepoDefaults carries the configured fallback repository, applied when
// a tool call omits owner/repo.
type RepoDefaults struct {
	Owner string
	Repo  string
}

// resolve returns the explicit owner/repo if given, otherwise the
// defaults. The second return is false when neither is available.
func (d RepoDefaults) resolve(owner, repo string) (string, string, bool) {
	if owner == "" {
		owner = d.Owner
	}
	if repo == "" {
		repo = d.Repo
	}
	return owner, repo, owner != "" && repo != ""
}

const missingRepoMsg = "'owner' and 'repo' are required (no defaults configured: set GITHUB_OWNER and GITHUB_REPO or pass them explicitly)"

// jsonBlock renders v as an indented JSON code block for tool output.
func jsonBlock(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("```\nmarshal error: %v\n```", err)
	}
	return "```json\n" + string(data) + "\n```"
}
