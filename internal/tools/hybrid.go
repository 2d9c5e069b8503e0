package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ibraheem4/github-mcp/internal/hybrid"
)

// HybridCreator is the coordinator capability this tool depends on.
type HybridCreator interface {
	CreateHybridIssue(ctx context.Context, input hybrid.Input) (*hybrid.Result, error)
}

// HybridTool creates a linked GitHub/Linear issue pair for work that
// spans both trackers.
type HybridTool struct {
	coordinator HybridCreator
	defaults    RepoDefaults
	teamID      string // default Linear team
}

// NewHybridTool creates a HybridTool.
func NewHybridTool(coordinator HybridCreator, defaults RepoDefaults, teamID string) *HybridTool {
	return &HybridTool{coordinator: coordinator, defaults: defaults, teamID: teamID}
}

// Definition returns the MCP tool definition for registration.
func (t *HybridTool) Definition() mcp.Tool {
	return mcp.NewTool("create_hybrid_issue",
		mcp.WithDescription(
			"Create a coordinated pair of issues for work that spans both trackers: "+
				"a technical issue on GitHub and a business issue on Linear, "+
				"cross-referenced to each other. The GitHub issue is created first; "+
				"the Linear issue links back to it.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Issue title (platform prefixes are added automatically)"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Shared issue description"),
		),
		mcp.WithString("owner",
			mcp.Description("GitHub repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("GitHub repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithString("team_id",
			mcp.Description("Linear team ID (falls back to LINEAR_TEAM_ID)"),
		),
		mcp.WithArray("labels",
			mcp.Description("Extra labels for the GitHub issue (coordination labels are always added)"),
			mcp.WithStringItems(),
		),
		mcp.WithString("assignee",
			mcp.Description("GitHub username to assign"),
		),
		mcp.WithString("priority",
			mcp.Description("Linear priority"),
			mcp.Enum("urgent", "high", "medium", "low"),
		),
	)
}

// Handle processes the create_hybrid_issue tool call.
func (t *HybridTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owner, repo, _ := t.defaults.resolve(req.GetString("owner", ""), req.GetString("repo", ""))
	teamID := req.GetString("team_id", "")
	if teamID == "" {
		teamID = t.teamID
	}

	input := hybrid.Input{
		Title:       req.GetString("title", ""),
		Description: req.GetString("description", ""),
		Owner:       owner,
		Repo:        repo,
		TeamID:      teamID,
		Labels:      req.GetStringSlice("labels", nil),
		Assignee:    req.GetString("assignee", ""),
		Priority:    req.GetString("priority", ""),
	}

	result, err := t.coordinator.CreateHybridIssue(ctx, input)
	if err != nil {
		var vErr *hybrid.ValidationError
		if errors.As(err, &vErr) {
			return mcp.NewToolResultError(vErr.Error()), nil
		}
		var partial *hybrid.PartialHybridFailure
		if errors.As(err, &partial) {
			// The GitHub half exists; tell the caller exactly what is
			// orphaned instead of hiding it behind the raw error.
			return mcp.NewToolResultError(fmt.Sprintf(
				"Linear issue creation failed: %v\n\n"+
					"The GitHub half was already created and was NOT rolled back:\n"+
					"- Issue #%d: %s\n\n"+
					"Clean it up or retry the Linear side manually.",
				partial.Err, partial.GitHubNumber, partial.GitHubURL,
			)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("creating hybrid issue: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("# Hybrid Issue Created\n\n")
	fmt.Fprintf(&sb, "**GitHub (technical):** [#%d](%s)\n", result.GitHub.Number, result.GitHub.HTMLURL)
	fmt.Fprintf(&sb, "**Linear (business):** [%s](%s)\n", result.Linear.Identifier, result.Linear.URL)
	fmt.Fprintf(&sb, "**Sync ID:** `%s`\n\n", result.SyncID)
	sb.WriteString("Both issues are cross-referenced. ")
	sb.WriteString("The GitHub issue carries the coordination labels (linear-synced, agent-ready, hybrid-issue).\n\n")
	sb.WriteString(jsonBlock(result))

	return mcp.NewToolResultText(sb.String()), nil
}
