package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ibraheem4/github-mcp/internal/github"
	"github.com/ibraheem4/github-mcp/internal/triage"
)

// AssessReadinessTool fetches a GitHub issue and estimates whether it
// is suitable for unattended automated implementation.
type AssessReadinessTool struct {
	gh       GitHubAPI
	defaults RepoDefaults
}

// NewAssessReadinessTool creates an AssessReadinessTool.
func NewAssessReadinessTool(gh GitHubAPI, defaults RepoDefaults) *AssessReadinessTool {
	return &AssessReadinessTool{gh: gh, defaults: defaults}
}

// Definition returns the MCP tool definition for registration.
func (t *AssessReadinessTool) Definition() mcp.Tool {
	return mcp.NewTool("assess_agent_readiness",
		mcp.WithDescription(
			"Fetch a GitHub issue and assess whether a coding agent can implement "+
				"it unattended: compatibility, complexity tier, estimated hours, and "+
				"prerequisites.",
		),
		mcp.WithString("owner",
			mcp.Description("Repository owner (falls back to GITHUB_OWNER)"),
		),
		mcp.WithString("repo",
			mcp.Description("Repository name (falls back to GITHUB_REPO)"),
		),
		mcp.WithNumber("issue_number",
			mcp.Required(),
			mcp.Description("Issue number to assess"),
		),
	)
}

// Handle processes the assess_agent_readiness tool call.
func (t *AssessReadinessTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	assessment := triage.AssessReadiness(toTriageIssue(issue))

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Agent Readiness — %s/%s#%d\n\n", owner, repo, number)
	if assessment.AgentCompatible {
		sb.WriteString("**Agent compatible:** yes\n")
	} else {
		sb.WriteString("**Agent compatible:** no — human judgment required\n")
	}
	fmt.Fprintf(&sb, "**Complexity:** %s (~%dh)\n\n", assessment.ComplexityLevel, assessment.EstimatedHours)

	if len(assessment.Prerequisites) > 0 {
		sb.WriteString("**Prerequisites:**\n")
		for _, p := range assessment.Prerequisites {
			sb.WriteString("- " + p + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(jsonBlock(assessment))

	return mcp.NewToolResultText(sb.String()), nil
}

// toTriageIssue converts the API issue into the triage core's
// read-only view.
func toTriageIssue(issue *github.Issue) triage.Issue {
	out := triage.Issue{
		Number: issue.Number,
		Title:  issue.Title,
		Body:   issue.Body,
		State:  issue.State,
	}
	if issue.UpdatedAt != nil {
		out.UpdatedAt = *issue.UpdatedAt
	}
	for _, l := range issue.Labels {
		out.Labels = append(out.Labels, triage.Label{Name: l.Name, Color: l.Color})
	}
	return out
}
