// Package resources implements the MCP resources exposed by the bridge.
//
// Resources are read-only data the host can pull in for context. They
// use bridge:// URIs following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ibraheem4/github-mcp/internal/config"
	"github.com/ibraheem4/github-mcp/internal/triage"
)

// Handler manages the bridge's resource endpoints.
type Handler struct {
	cfg config.Config
}

// NewHandler creates a resource Handler.
func NewHandler(cfg config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// VocabularyResource describes the triage vocabulary endpoint.
func (h *Handler) VocabularyResource() mcp.Resource {
	return mcp.NewResource(
		"bridge://triage/vocabulary",
		"Triage Keyword Vocabulary",
		mcp.WithResourceDescription("The keyword lists driving issue classification, by category"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleVocabulary returns the classification vocabularies as JSON.
func (h *Handler) HandleVocabulary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(triage.Vocabularies(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling vocabulary: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// StatusResource describes the bridge status endpoint.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"bridge://bridge/status",
		"Bridge Status",
		mcp.WithResourceDescription("Which trackers are configured and which defaults apply (no secrets)"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus reports tracker availability. Credentials themselves
// are never included.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	status := map[string]interface{}{
		"github": map[string]interface{}{
			"configured":   h.cfg.HasGitHub(),
			"defaultOwner": h.cfg.GitHubOwner,
			"defaultRepo":  h.cfg.GitHubRepo,
		},
		"linear": map[string]interface{}{
			"configured":  h.cfg.HasLinear(),
			"defaultTeam": h.cfg.LinearTeamID,
		},
	}
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
