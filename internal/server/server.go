// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the concrete API clients
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ibraheem4/github-mcp/internal/config"
	"github.com/ibraheem4/github-mcp/internal/github"
	"github.com/ibraheem4/github-mcp/internal/hybrid"
	"github.com/ibraheem4/github-mcp/internal/linear"
	"github.com/ibraheem4/github-mcp/internal/prompts"
	"github.com/ibraheem4/github-mcp/internal/resources"
	"github.com/ibraheem4/github-mcp/internal/templates"
	"github.com/ibraheem4/github-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. Triage tools are always available; the
// GitHub and hybrid toolsets are registered only when the
// corresponding credentials are configured, so a partially configured
// server still serves what it can.
func New(cfg config.Config, logger *zap.Logger) (*server.MCPServer, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating template renderer: %w", err)
	}

	s := server.NewMCPServer(
		"github-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Pure triage tools (no credentials needed) ---

	triageTool := tools.NewTriageTool()
	s.AddTool(triageTool.Definition(), triageTool.Handle)

	labelsTool := tools.NewGenerateLabelsTool()
	s.AddTool(labelsTool.Definition(), labelsTool.Handle)

	// --- GitHub toolset ---

	defaults := tools.RepoDefaults{Owner: cfg.GitHubOwner, Repo: cfg.GitHubRepo}

	var gh *github.Client
	if cfg.HasGitHub() {
		gh = github.NewClient(cfg.GitHubToken)

		readinessTool := tools.NewAssessReadinessTool(gh, defaults)
		s.AddTool(readinessTool.Definition(), readinessTool.Handle)

		getIssueTool := tools.NewGetIssueTool(gh, defaults)
		s.AddTool(getIssueTool.Definition(), getIssueTool.Handle)

		listIssuesTool := tools.NewListIssuesTool(gh, defaults)
		s.AddTool(listIssuesTool.Definition(), listIssuesTool.Handle)

		branchTool := tools.NewCreateBranchTool(gh, defaults)
		s.AddTool(branchTool.Definition(), branchTool.Handle)

		createPullTool := tools.NewCreatePullTool(gh, renderer, defaults)
		s.AddTool(createPullTool.Definition(), createPullTool.Handle)

		updatePullTool := tools.NewUpdatePullTool(gh, defaults)
		s.AddTool(updatePullTool.Definition(), updatePullTool.Handle)

		syncStatusTool := tools.NewSyncStatusTool(gh, defaults)
		s.AddTool(syncStatusTool.Definition(), syncStatusTool.Handle)
	} else {
		logger.Warn("GitHub toolset disabled: GITHUB_TOKEN not set")
	}

	// --- Hybrid toolset (needs both trackers) ---

	if cfg.HasGitHub() && cfg.HasLinear() {
		lin := linear.NewClient(cfg.LinearAPIKey, cfg.LinearTeamID)
		coordinator := hybrid.NewCoordinator(gh, lin, renderer)

		hybridTool := tools.NewHybridTool(coordinator, defaults, cfg.LinearTeamID)
		s.AddTool(hybridTool.Definition(), hybridTool.Handle)
	} else if !cfg.HasLinear() {
		logger.Warn("hybrid toolset disabled: LINEAR_API_KEY or LINEAR_TEAM_ID not set")
	}

	// --- Prompts ---

	triagePrompt := prompts.NewTriagePrompt()
	s.AddPrompt(triagePrompt.Definition(), triagePrompt.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler(cfg)
	s.AddResource(resourceHandler.VocabularyResource(), resourceHandler.HandleVocabulary)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, nil
}

// serverInstructions returns the system instructions handed to the
// host, telling the AI how the bridge is meant to be used.
func serverInstructions() string {
	return `This server bridges GitHub (engineering tracker) and Linear (business tracker).

Workflow:
- Use triage_issue first to decide where an issue belongs. The decision is a
  deterministic keyword heuristic; treat the confidence as a hint, not a verdict.
- For engineering issues, create them on GitHub and run assess_agent_readiness
  to see whether a coding agent can take them unattended.
- For hybrid issues (work spanning engineering and business), use
  create_hybrid_issue: it creates both halves and cross-references them.
  If it reports a partial failure, the GitHub half already exists: do not
  retry blindly, clean up first.
- create_branch / create_pull_request / update_pull_request cover the code
  side; sync_status checks whether an issue is linked to Linear.`
}
