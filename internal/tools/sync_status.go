package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// syncIDPattern extracts the sync ID stamped into hybrid issue bodies.
var syncIDPattern = regexp.MustCompile("Sync ID: `([^`]+)`")

// SyncStatusTool reports whether a GitHub issue is the technical half
// of a hybrid issue pair.
type SyncStatusTool struct {
	gh       GitHubAPI
	defaults RepoDefaults
}

// NewSyncStatusTool creates a SyncStatusTool.
func NewSyncStatusTool(gh GitHubAPI, defaults RepoDefaults) *SyncStatusTool {
	return &SyncStatusTool{gh: gh, defaults: defaults}
}

// Definition returns the MCP tool definition for registration.
func (t *SyncStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("sync_status",
		mcp.WithDescription(
			"Check whether a GitHub issue is linked to a Linear counterpart: "+
				"looks for the linear-synced coordination label and the sync ID in "+
				"the issue body.",
		),
		mcp.WithString("owner",
			mcp.Description("Repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithNumber("issue_number",
			mcp.Required(),
			mcp.Description("Issue number to check"),
		),
	)
}

// Handle processes the sync_status tool call.
func (t *SyncStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	synced := false
	for _, l := range issue.Labels {
		if l.Name == "linear-synced" {
			synced = true
			break
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Sync Status — %s/%s#%d\n\n", owner, repo, number)
	if !synced {
		sb.WriteString("Not synced: the issue does not carry the `linear-synced` label.\n")
		return mcp.NewToolResultText(sb.String()), nil
	}

	sb.WriteString("Synced: this issue is the technical half of a hybrid pair.\n")
	if m := syncIDPattern.FindStringSubmatch(issue.Body); m != nil {
		fmt.Fprintf(&sb, "**Sync ID:** `%s`\n", m[1])
	} else {
		sb.WriteString("Warning: the sync ID is missing from the issue body.\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
