package triage

import (
	"reflect"
	"strings"
	"testing"
)

// --- Classify: platform decision ---

func TestClassify_EngineeringIssue(t *testing.T) {
	d := Classify(
		"API endpoint returning 500 error",
		"The /api/users endpoint is consistently returning 500 errors",
		nil,
	)

	if d.Platform != PlatformEngineering {
		t.Fatalf("Platform = %q, want %q", d.Platform, PlatformEngineering)
	}
	if !d.IsEngineering {
		t.Error("IsEngineering = false, want true")
	}
	if d.Confidence <= 0.5 {
		t.Errorf("Confidence = %v, want > 0.5", d.Confidence)
	}
	if !strings.Contains(d.Reasoning, "api") || !strings.Contains(d.Reasoning, "error") {
		t.Errorf("Reasoning should cite matched keywords, got %q", d.Reasoning)
	}
}

func TestClassify_BusinessIssue(t *testing.T) {
	d := Classify(
		"Q3 roadmap planning",
		"Discuss budget allocation and customer feedback for next quarter strategy",
		nil,
	)

	if d.Platform != PlatformBusiness {
		t.Fatalf("Platform = %q, want %q", d.Platform, PlatformBusiness)
	}
	if d.IsEngineering {
		t.Error("IsEngineering = true, want false")
	}
}

func TestClassify_HybridIssue(t *testing.T) {
	d := Classify(
		"Platform migration epic",
		"Major release overhauling the entire system",
		nil,
	)

	if d.Platform != PlatformHybrid {
		t.Fatalf("Platform = %q, want %q", d.Platform, PlatformHybrid)
	}
	if d.IsEngineering {
		t.Error("IsEngineering = true, want false for hybrid")
	}
	// Hybrid issues get label sets for both trackers.
	if len(d.EngineeringLabels) == 0 {
		t.Error("hybrid decision should carry engineering labels")
	}
}

func TestClassify_EmptyInput_DefaultsToBusiness(t *testing.T) {
	d := Classify("", "", nil)

	if d.Platform != PlatformBusiness {
		t.Fatalf("Platform = %q, want %q", d.Platform, PlatformBusiness)
	}
	if d.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5 (maximum uncertainty)", d.Confidence)
	}
	if !strings.Contains(d.Reasoning, "No classification keywords") {
		t.Errorf("Reasoning should use the fallback phrase, got %q", d.Reasoning)
	}
}

func TestClassify_LabelsContributeToScore(t *testing.T) {
	// The text alone is neutral; the existing labels carry the signal.
	d := Classify("Follow up", "See previous discussion", []string{"bug", "api"})

	if d.Platform != PlatformEngineering {
		t.Fatalf("Platform = %q, want %q (labels should be scored)", d.Platform, PlatformEngineering)
	}
}

func TestClassify_AgentWorkflowBonus(t *testing.T) {
	// "coding agent" adds a flat engineering bonus that outweighs the
	// business keyword.
	d := Classify("Hand this to the coding agent", "Small customer-facing copy tweak", nil)

	if d.Platform != PlatformEngineering {
		t.Fatalf("Platform = %q, want %q", d.Platform, PlatformEngineering)
	}
}

func TestClassify_BusinessFramingBonus(t *testing.T) {
	d := Classify("Business requirement: faster builds", "The build is slow", nil)

	// "build" scores 1 for engineering; the business-requirement
	// framing bonus (4) dominates.
	if d.Platform != PlatformBusiness {
		t.Fatalf("Platform = %q, want %q", d.Platform, PlatformBusiness)
	}
}

func TestClassify_TieResolvesToBusiness(t *testing.T) {
	// "fix" (engineering, weight 1) vs "process" (business, weight 1):
	// an exact tie falls through to the business tracker.
	d := Classify("fix the process", "", nil)

	if d.Platform != PlatformBusiness {
		t.Fatalf("Platform = %q, want %q on a tie", d.Platform, PlatformBusiness)
	}
}

// --- Classify: confidence ---

func TestClassify_ConfidenceBounds(t *testing.T) {
	inputs := []struct {
		title, desc string
	}{
		{"", ""},
		{"bug", ""},
		{"strategy roadmap budget", "marketing revenue"},
		{"epic", "bug strategy"},
		{"a", "b"},
		{strings.Repeat("api error bug ", 50), "database security deploy"},
	}

	for _, in := range inputs {
		d := Classify(in.title, in.desc, nil)
		if d.Confidence < 0 || d.Confidence > 1 {
			t.Errorf("Classify(%q, %q): Confidence = %v, want [0,1]", in.title, in.desc, d.Confidence)
		}
		switch d.Platform {
		case PlatformEngineering, PlatformBusiness, PlatformHybrid:
		default:
			t.Errorf("Classify(%q, %q): unexpected platform %q", in.title, in.desc, d.Platform)
		}
	}
}

func TestClassify_ConfidenceClampedAtOne(t *testing.T) {
	// A single-category match gives win/total = 1.0; the 1.1 boost
	// must clamp rather than exceed 1.
	d := Classify("bug in the api", "error and crash", nil)

	if d.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want exactly 1.0 (clamped)", d.Confidence)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	title := "Platform migration epic"
	desc := "Major release with api changes and a new pricing strategy"
	labels := []string{"initiative"}

	first := Classify(title, desc, labels)
	second := Classify(title, desc, labels)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify is not deterministic:\n first = %+v\nsecond = %+v", first, second)
	}
}

// --- Classify: label partitioning ---

func TestClassify_EngineeringDecisionOmitsBusinessLabels(t *testing.T) {
	d := Classify("Fix database error", "The users table query crashes", nil)

	if d.Platform != PlatformEngineering {
		t.Fatalf("Platform = %q, want engineering", d.Platform)
	}
	if d.BusinessLabels != nil {
		t.Errorf("BusinessLabels = %v, want nil for an engineering-only decision", d.BusinessLabels)
	}
	if len(d.EngineeringLabels) == 0 {
		t.Error("EngineeringLabels should be populated")
	}
	if len(d.AutomationLabels) == 0 {
		t.Error("AutomationLabels should be populated for engineering decisions")
	}
}

func TestClassify_SuggestedLabelsDeduplicated(t *testing.T) {
	d := Classify("Platform migration epic", "Customer pricing overhaul with api and database work", nil)

	seen := make(map[string]int)
	for _, l := range d.SuggestedLabels {
		seen[l]++
	}
	for l, n := range seen {
		if n > 1 {
			t.Errorf("label %q appears %d times in SuggestedLabels", l, n)
		}
	}
}
