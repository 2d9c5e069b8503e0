// Package hybrid coordinates creation of linked issue pairs: one
// GitHub issue for the technical work, one Linear issue for the
// business side, cross-referenced to each other.
//
// Creation is a two-step sequence with no compensation. The Linear
// body must reference the GitHub issue's URL, so the calls cannot run
// concurrently. If the second step fails the GitHub issue is left in
// place and the failure surfaces as a PartialHybridFailure carrying
// its coordinates.
package hybrid

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ibraheem4/github-mcp/internal/github"
	"github.com/ibraheem4/github-mcp/internal/linear"
	"github.com/ibraheem4/github-mcp/internal/templates"
)

// EngineeringCreator creates issues on the engineering tracker.
type EngineeringCreator interface {
	CreateIssue(ctx context.Context, owner, repo string, issue github.NewIssue) (*github.Issue, error)
}

// BusinessCreator creates issues on the business tracker.
type BusinessCreator interface {
	CreateIssue(ctx context.Context, issue linear.NewIssue) (*linear.Issue, error)
}

// Coordination labels attached to the GitHub half of every hybrid issue.
var coordinationLabels = []string{"linear-synced", "agent-ready", "hybrid-issue"}

// Title prefixes marking each half of a hybrid issue.
const (
	engineeringTitlePrefix = "[Technical] "
	businessTitlePrefix    = "[Business] "
)

// Input describes a hybrid issue to create. Owner, Repo, and TeamID
// are required; everything else is optional.
type Input struct {
	Title       string
	Description string
	Owner       string
	Repo        string
	TeamID      string
	Labels      []string
	Assignee    string
	Priority    string // urgent, high, medium, low
}

// Result records the outcome of a successful hybrid creation.
type Result struct {
	GitHub          *github.Issue `json:"github"`
	Linear          *linear.Issue `json:"linear"`
	CrossReferenced bool          `json:"crossReferenced"`
	// SyncID is stamped into both issue bodies so the pair can be
	// correlated later.
	SyncID string `json:"syncId"`
}

// Coordinator creates hybrid issue pairs using injected tracker clients.
type Coordinator struct {
	engineering EngineeringCreator
	business    BusinessCreator
	renderer    *templates.Renderer
}

// NewCoordinator wires a Coordinator with its collaborators.
func NewCoordinator(eng EngineeringCreator, biz BusinessCreator, renderer *templates.Renderer) *Coordinator {
	return &Coordinator{engineering: eng, business: biz, renderer: renderer}
}

// CreateHybridIssue creates the GitHub half, then the Linear half with
// a back-reference to the GitHub issue's URL.
func (c *Coordinator) CreateHybridIssue(ctx context.Context, input Input) (*Result, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	syncID := uuid.NewString()

	engBody, err := c.renderer.Render(templates.HybridEngineering, templates.HybridEngineeringData{
		Description: input.Description,
		SyncID:      syncID,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering engineering body: %w", err)
	}

	ghIssue := github.NewIssue{
		Title:  engineeringTitlePrefix + input.Title,
		Body:   engBody,
		Labels: append(append([]string{}, input.Labels...), coordinationLabels...),
	}
	if input.Assignee != "" {
		ghIssue.Assignees = []string{input.Assignee}
	}

	created, err := c.engineering.CreateIssue(ctx, input.Owner, input.Repo, ghIssue)
	if err != nil {
		return nil, fmt.Errorf("creating github half: %w", err)
	}

	bizBody, err := c.renderer.Render(templates.HybridBusiness, templates.HybridBusinessData{
		Description: input.Description,
		GitHubURL:   created.HTMLURL,
		SyncID:      syncID,
	})
	if err != nil {
		return nil, &PartialHybridFailure{
			GitHubNumber: created.Number,
			GitHubURL:    created.HTMLURL,
			Err:          err,
		}
	}

	linIssue, err := c.business.CreateIssue(ctx, linear.NewIssue{
		Title:       businessTitlePrefix + input.Title,
		Description: bizBody,
		TeamID:      input.TeamID,
		Priority:    linear.ParsePriority(input.Priority),
	})
	if err != nil {
		return nil, &PartialHybridFailure{
			GitHubNumber: created.Number,
			GitHubURL:    created.HTMLURL,
			Err:          err,
		}
	}

	return &Result{
		GitHub:          created,
		Linear:          linIssue,
		CrossReferenced: true,
		SyncID:          syncID,
	}, nil
}

func validate(input Input) error {
	switch {
	case input.Owner == "":
		return &ValidationError{Field: "owner"}
	case input.Repo == "":
		return &ValidationError{Field: "repo"}
	case input.TeamID == "":
		return &ValidationError{Field: "teamId"}
	}
	return nil
}
