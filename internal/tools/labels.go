package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ibraheem4/github-mcp/internal/triage"
)

// GenerateLabelsTool derives platform labels for issue text without
// running the full triage decision.
type GenerateLabelsTool struct{}

// NewGenerateLabelsTool creates a GenerateLabelsTool.
func NewGenerateLabelsTool() *GenerateLabelsTool {
	return &GenerateLabelsTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateLabelsTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_labels",
		mcp.WithDescription(
			"Derive the label set for an issue targeting a specific platform. "+
				"Independent of triage_issue — use this when the target tracker is "+
				"already known.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Issue title"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Issue body"),
		),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Target platform for the labels"),
			mcp.Enum("engineering", "business"),
		),
	)
}

// Handle processes the generate_labels tool call.
func (t *GenerateLabelsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	body := req.GetString("body", "")
	platformStr := req.GetString("platform", "")

	var platform triage.Platform
	switch platformStr {
	case "engineering":
		platform = triage.PlatformEngineering
	case "business":
		platform = triage.PlatformBusiness
	default:
		return mcp.NewToolResultError("'platform' must be 'engineering' or 'business'"), nil
	}

	labels := triage.DeriveLabels(title, body, platform)

	var sb strings.Builder
	sb.WriteString("# Generated Labels\n\n")
	if len(labels) == 0 {
		sb.WriteString("No labels derived for this text.\n\n")
	} else {
		for _, l := range labels {
			sb.WriteString("- `" + l + "`\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(jsonBlock(labels))

	return mcp.NewToolResultText(sb.String()), nil
}
