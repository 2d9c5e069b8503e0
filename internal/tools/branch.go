package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// CreateBranchTool creates a git branch in a GitHub repository.
type CreateBranchTool struct {
	gh       GitHubAPI
	defaults RepoDefaults
}

// NewCreateBranchTool creates a CreateBranchTool.
func NewCreateBranchTool(gh GitHubAPI, defaults RepoDefaults) *CreateBranchTool {
	return &CreateBranchTool{gh: gh, defaults: defaults}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateBranchTool) Definition() mcp.Tool {
	return mcp.NewTool("create_branch",
		mcp.WithDescription(
			"Create a branch in a GitHub repository. Branches from the "+
				"repository's default branch unless from_branch is given.",
		),
		mcp.WithString("owner",
			mcp.Description("Repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithString("branch",
			mcp.Required(),
			mcp.Description("Name of the branch to create"),
		),
		mcp.WithString("from_branch",
			mcp.Description("Base branch (defaults to the repository's default branch)"),
		),
	)
}

// Handle processes the create_branch tool call.
func (t *CreateBranchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, ok := t.defaults.resolve(req.GetString("owner", ""), req.GetString("repo", ""))
	if !ok {
		return mcp.NewToolResultError(missingRepoMsg), nil
	}
	branch := req.GetString("branch", "")
	if branch == "" {
		return mcp.NewToolResultError("'branch' is required"), nil
	}

	ref, err := t.gh.CreateBranch(ctx, owner, repo, branch, req.GetString("from_branch", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating branch: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Created branch `%s` in %s/%s (ref %s, sha %s).",
		branch, owner, repo, ref.Ref, ref.Object.SHA,
	)), nil
}
