package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ibraheem4/github-mcp/internal/github"
	"github.com/ibraheem4/github-mcp/internal/templates"
)

// CreatePullTool opens a pull request. When no body is given, the
// standard PR description template is rendered as the starting point.
type CreatePullTool struct {
	gh       GitHubAPI
	renderer *templates.Renderer
	defaults RepoDefaults
}

// NewCreatePullTool creates a CreatePullTool.
func NewCreatePullTool(gh GitHubAPI, renderer *templates.Renderer, defaults RepoDefaults) *CreatePullTool {
	return &CreatePullTool{gh: gh, renderer: renderer, defaults: defaults}
}

// Definition returns the MCP tool definition for registration.
func (t *CreatePullTool) Definition() mcp.Tool {
	return mcp.NewTool("create_pull_request",
		mcp.WithDescription(
			"Open a pull request. If no body is provided, the standard PR "+
				"description template is used. Targets the repository's default "+
				"branch unless base is given.",
		),
		mcp.WithString("owner",
			mcp.Description("Repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Pull request title"),
		),
		mcp.WithString("head",
			mcp.Required(),
			mcp.Description("Branch containing the changes"),
		),
		mcp.WithString("base",
			mcp.Description("Branch to merge into (defaults to the repository's default branch)"),
		),
		mcp.WithString("body",
			mcp.Description("Pull request body (defaults to the PR description template)"),
		),
		mcp.WithString("summary",
			mcp.Description("One-paragraph summary inserted into the template when body is omitted"),
		),
		mcp.WithNumber("issue_number",
			mcp.Description("Issue this PR closes (adds a Closes reference to the template)"),
		),
		mcp.WithBoolean("draft",
			mcp.Description("Open as a draft PR"),
		),
	)
}

// Handle processes the create_pull_request tool call.
func (t *CreatePullTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, ok := t.defaults.resolve(req.GetString("owner", ""), req.GetString("repo", ""))
	if !ok {
		return mcp.NewToolResultError(missingRepoMsg), nil
	}
	title := req.GetString("title", "")
	head := req.GetString("head", "")
	if title == "" || head == "" {
		return mcp.NewToolResultError("'title' and 'head' are required"), nil
	}

	base := req.GetString("base", "")
	if base == "" {
		repository, err := t.gh.GetRepository(ctx, owner, repo)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("resolving default branch: %v", err)), nil
		}
		base = repository.DefaultBranch
	}

	body := req.GetString("body", "")
	if body == "" {
		issueRef := ""
		if n := int(req.GetFloat("issue_number", 0)); n > 0 {
			issueRef = fmt.Sprintf("#%d", n)
		}
		rendered, err := t.renderer.Render(templates.PullRequest, templates.PullRequestData{
			Summary:  req.GetString("summary", ""),
			IssueRef: issueRef,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering PR template: %w", err)
		}
		body = rendered
	}

	pull, err := t.gh.CreatePull(ctx, owner, repo, github.NewPull{
		Title: title,
		Body:  body,
		Head:  head,
		Base:  base,
		Draft: req.GetBool("draft", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating pull request: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Created pull request [#%d](%s): %s → %s", pull.Number, pull.HTMLURL, head, base,
	)), nil
}

// UpdatePullTool updates a pull request's title, body, or state.
type UpdatePullTool struct {
	gh       GitHubAPI
	defaults RepoDefaults
}

// NewUpdatePullTool creates an UpdatePullTool.
func NewUpdatePullTool(gh GitHubAPI, defaults RepoDefaults) *UpdatePullTool {
	return &UpdatePullTool{gh: gh, defaults: defaults}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdatePullTool) Definition() mcp.Tool {
	return mcp.NewTool("update_pull_request",
		mcp.WithDescription("Update an existing pull request's title, body, or state."),
		mcp.WithString("owner",
			mcp.Description("Repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithNumber("pull_number",
			mcp.Required(),
			mcp.Description("Pull request number"),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("body",
			mcp.Description("New body"),
		),
		mcp.WithString("state",
			mcp.Description("New state"),
			mcp.Enum("open", "closed"),
		),
	)
}

// Handle processes the update_pull_request tool call.
func (t *UpdatePullTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, ok := t.defaults.resolve(req.GetString("owner", ""), req.GetString("repo", ""))
	if !ok {
		return mcp.NewToolResultError(missingRepoMsg), nil
	}
	number := int(req.GetFloat("pull_number", 0))
	if number <= 0 {
		return mcp.NewToolResultError("'pull_number' must be a positive integer"), nil
	}

	var update github.PullUpdate
	if v := req.GetString("title", ""); v != "" {
		update.Title = &v
	}
	if v := req.GetString("body", ""); v != "" {
		update.Body = &v
	}
	if v := req.GetString("state", ""); v != "" {
		update.State = &v
	}
	if update.Title == nil && update.Body == nil && update.State == nil {
		return mcp.NewToolResultError("nothing to update — pass title, body, or state"), nil
	}

	pull, err := t.gh.UpdatePull(ctx, owner, repo, number, update)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("updating pull request: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Updated pull request [#%d](%s) (state: %s).", pull.Number, pull.HTMLURL, pull.State,
	)), nil
}
