package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ibraheem4/github-mcp/internal/github"
)

// GetIssueTool fetches a single GitHub issue.
type GetIssueTool struct {
	gh       GitHubAPI
	defaults RepoDefaults
}

// NewGetIssueTool creates a GetIssueTool.
func NewGetIssueTool(gh GitHubAPI, defaults RepoDefaults) *GetIssueTool {
	return &GetIssueTool{gh: gh, defaults: defaults}
}

// Definition returns the MCP tool definition for registration.
func (t *GetIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("get_issue",
		mcp.WithDescription("Fetch a GitHub issue by number."),
		mcp.WithString("owner",
			mcp.Description("Repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithNumber("issue_number",
			mcp.Required(),
			mcp.Description("Issue number"),
		),
	)
}

// Handle processes the get_issue tool call.
func (t *GetIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, ok := t.defaults.resolve(req.GetString("owner", ""), req.GetString("repo", ""))
	if !ok {
		return mcp.NewToolResultError(missingRepoMsg), nil
	}
	number := int(req.GetFloat("issue_number", 0))
	if number <= 0 {
		return mcp.NewToolResultError("'issue_number' must be a positive integer"), nil
	}

	issue, err := t.gh.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching issue: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s/%s#%d — %s\n\n", owner, repo, issue.Number, issue.Title)
	fmt.Fprintf(&sb, "**State:** %s\n", issue.State)
	if len(issue.Labels) > 0 {
		names := make([]string, len(issue.Labels))
		for i, l := range issue.Labels {
			names[i] = l.Name
		}
		fmt.Fprintf(&sb, "**Labels:** %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, "\n%s\n\n%s", issue.Body, jsonBlock(issue))

	return mcp.NewToolResultText(sb.String()), nil
}

// ListIssuesTool lists GitHub issues with optional state/label filters.
type ListIssuesTool struct {
	gh       GitHubAPI
	defaults RepoDefaults
}

// NewListIssuesTool creates a ListIssuesTool.
func NewListIssuesTool(gh GitHubAPI, defaults RepoDefaults) *ListIssuesTool {
	return &ListIssuesTool{gh: gh, defaults: defaults}
}

// Definition returns the MCP tool definition for registration.
func (t *ListIssuesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_issues",
		mcp.WithDescription("List GitHub issues in a repository."),
		mcp.WithString("owner",
			mcp.Description("Repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithString("state",
			mcp.Description("Filter by state"),
			mcp.DefaultString("open"),
			mcp.Enum("open", "closed", "all"),
		),
		mcp.WithArray("labels",
			mcp.Description("Only issues carrying every listed label"),
			mcp.WithStringItems(),
		),
	)
}

// Handle processes the list_issues tool call.
func (t *ListIssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, ok := t.defaults.resolve(req.GetString("owner", ""), req.GetString("repo", ""))
	if !ok {
		return mcp.NewToolResultError(missingRepoMsg), nil
	}

	issues, err := t.gh.ListIssues(ctx, owner, repo, github.ListOptions{
		State:  req.GetString("state", "open"),
		Labels: req.GetStringSlice("labels", nil),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing issues: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Issues in %s/%s (%d)\n\n", owner, repo, len(issues))
	for _, issue := range issues {
		fmt.Fprintf(&sb, "- #%d [%s] %s\n", issue.Number, issue.State, issue.Title)
	}
	if len(issues) == 0 {
		sb.WriteString("No issues matched the filter.\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
