// Package templates renders the markdown bodies the bridge writes to
// the trackers: the pull request description skeleton and the two
// halves of a hybrid issue.
//
// Templates are embedded at build time, so a rendering failure means a
// programming error (bad template or wrong data type), not a runtime
// condition.
package templates

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

// Template names one of the embedded templates.
type Template string

const (
	// PullRequest is the default PR description skeleton.
	PullRequest Template = "pull_request"
	// HybridEngineering is the GitHub-side body of a hybrid issue.
	HybridEngineering Template = "hybrid_engineering"
	// HybridBusiness is the Linear-side body of a hybrid issue.
	HybridBusiness Template = "hybrid_business"
)

// PullRequestData fills the PR description template.
type PullRequestData struct {
	Summary  string
	IssueRef string // e.g. "#42", empty when the PR closes no issue
}

// HybridEngineeringData fills the GitHub side of a hybrid issue.
type HybridEngineeringData struct {
	Description string
	SyncID      string
}

// HybridBusinessData fills the Linear side of a hybrid issue.
type HybridBusinessData struct {
	Description string
	GitHubURL   string
	SyncID      string
}

// Renderer renders the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates. An error here means the
// binary shipped with a broken template.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named template with the given data.
func (r *Renderer) Render(name Template, data interface{}) (string, error) {
	var sb strings.Builder
	if err := r.templates.ExecuteTemplate(&sb, string(name)+".md.tmpl", data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return sb.String(), nil
}
