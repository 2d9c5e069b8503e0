// Package prompts implements the MCP prompts exposed by the bridge.
//
// Prompts are user-triggered workflows (like slash commands): the host
// presents them to the user, and the resulting message instructs the
// AI which tools to run in what order.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// TriagePrompt guides the host through classifying an issue and
// routing it to the right tracker.
type TriagePrompt struct{}

// NewTriagePrompt creates a TriagePrompt.
func NewTriagePrompt() *TriagePrompt {
	return &TriagePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *TriagePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("triage-issue",
		mcp.WithPromptDescription(
			"Classify an issue and route it to GitHub, Linear, or both. "+
				"Runs the triage heuristic, explains the decision, and offers "+
				"to create the issue(s) on the chosen tracker.",
		),
		mcp.WithArgument("title",
			mcp.ArgumentDescription("Issue title"),
		),
		mcp.WithArgument("description",
			mcp.ArgumentDescription("Issue description"),
		),
	)
}

// Handle processes the triage-issue prompt request.
func (p *TriagePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	title := ""
	description := ""
	if args := req.Params.Arguments; args != nil {
		title = args["title"]
		description = args["description"]
	}

	instruction := fmt.Sprintf(
		"Triage the following issue.\n\n"+
			"Title: %s\n"+
			"Description: %s\n\n"+
			"Steps:\n"+
			"1. Call triage_issue with the title and description.\n"+
			"2. Summarize the platform decision, confidence, and suggested labels for me.\n"+
			"3. If the platform is hybrid, offer to call create_hybrid_issue.\n"+
			"4. If the platform is engineering, also call assess_agent_readiness "+
			"once the issue exists, so I know whether to hand it to an agent.\n"+
			"5. Do not create anything without asking me first.",
		title, description,
	)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Triage issue: %s", title),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(instruction),
			},
		},
	}, nil
}
