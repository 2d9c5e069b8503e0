package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ibraheem4/github-mcp/internal/triage"
)

// TriageTool classifies issue text to decide which tracker it belongs
// to. Pure computation — it needs no API clients and is always
// registered, even when no tracker is configured.
type TriageTool struct{}

// NewTriageTool creates a TriageTool.
func NewTriageTool() *TriageTool {
	return &TriageTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *TriageTool) Definition() mcp.Tool {
	return mcp.NewTool("triage_issue",
		mcp.WithDescription(
			"Classify an issue by its text: decides whether it belongs on GitHub "+
				"(engineering work), Linear (business/strategy work), or both (hybrid), "+
				"with a confidence score and suggested labels. Deterministic keyword "+
				"heuristic — no external calls.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Issue title"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Issue body / description"),
		),
		mcp.WithArray("labels",
			mcp.Description("Existing labels, if any — they contribute to the classification"),
			mcp.WithStringItems(),
		),
	)
}

// Handle processes the triage_issue tool call.
func (t *TriageTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	description := req.GetString("description", "")
	labels := req.GetStringSlice("labels", nil)

	decision := triage.Classify(title, description, labels)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Triage Decision\n\n")
	fmt.Fprintf(&sb, "**Platform:** %s\n", decision.Platform)
	fmt.Fprintf(&sb, "**Confidence:** %.0f%%\n\n", decision.Confidence*100)
	fmt.Fprintf(&sb, "%s\n\n", decision.Reasoning)

	if len(decision.SuggestedLabels) > 0 {
		fmt.Fprintf(&sb, "**Suggested labels:** %s\n\n", strings.Join(decision.SuggestedLabels, ", "))
	}

	sb.WriteString(jsonBlock(decision))

	return mcp.NewToolResultText(sb.String()), nil
}
