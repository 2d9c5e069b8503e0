package templates

import (
	"strings"
	"testing"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRender_PullRequest(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(PullRequest, PullRequestData{
		Summary:  "Adds retry logic to the GitHub client",
		IssueRef: "#42",
	})
	if err != nil {
		t.Fatalf("Render(PullRequest): %v", err)
	}

	checks := []string{
		"## Summary",
		"Adds retry logic to the GitHub client",
		"## Testing",
		"Closes #42",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("pull request body missing %q:\n%s", check, out)
		}
	}
}

func TestRender_PullRequest_NoIssueRef(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Render(PullRequest, PullRequestData{})
	if err != nil {
		t.Fatalf("Render(PullRequest): %v", err)
	}

	if strings.Contains(out, "Closes") {
		t.Errorf("body should omit the Closes line without an issue ref:\n%s", out)
	}
	if !strings.Contains(out, "_Describe the change") {
		t.Errorf("body should fall back to the summary placeholder:\n%s", out)
	}
}

func TestRender_HybridBodies(t *testing.T) {
	r := newRenderer(t)

	eng, err := r.Render(HybridEngineering, HybridEngineeringData{
		Description: "Migrate billing to the new platform",
		SyncID:      "sync-123",
	})
	if err != nil {
		t.Fatalf("Render(HybridEngineering): %v", err)
	}
	if !strings.Contains(eng, "tracked separately in Linear") {
		t.Errorf("engineering body missing counterpart note:\n%s", eng)
	}
	if !strings.Contains(eng, "sync-123") {
		t.Errorf("engineering body missing sync ID:\n%s", eng)
	}

	biz, err := r.Render(HybridBusiness, HybridBusinessData{
		Description: "Migrate billing to the new platform",
		GitHubURL:   "https://github.com/acme/widgets/issues/7",
		SyncID:      "sync-123",
	})
	if err != nil {
		t.Fatalf("Render(HybridBusiness): %v", err)
	}
	if !strings.Contains(biz, "https://github.com/acme/widgets/issues/7") {
		t.Errorf("business body missing back-reference URL:\n%s", biz)
	}
	if !strings.Contains(biz, "sync-123") {
		t.Errorf("business body missing sync ID:\n%s", biz)
	}
}
