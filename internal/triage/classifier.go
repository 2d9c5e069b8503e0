// Package triage implements the issue classification engine for the
// GitHub/Linear bridge.
//
// Classification is a deterministic keyword-weighted heuristic over the
// issue's title, description, and labels. It decides which tracker an
// issue belongs to (GitHub for engineering work, Linear for business
// work, or both for hybrid initiatives), derives label suggestions, and
// estimates whether an issue is suitable for unattended automated work.
//
// Everything in this package is a pure function: no I/O, no mutable
// state, no error paths. Identical input always produces identical
// output, so callers may invoke these functions concurrently without
// coordination.
package triage

import (
	"fmt"
	"sort"
	"strings"
)

// Platform identifies the tracker an issue is routed to.
type Platform string

const (
	// PlatformEngineering routes to the GitHub issue tracker.
	PlatformEngineering Platform = "engineering"
	// PlatformBusiness routes to the Linear workspace.
	PlatformBusiness Platform = "business"
	// PlatformHybrid splits the work into coordinated issues on both.
	PlatformHybrid Platform = "hybrid"
)

// Decision is the result of classifying an issue's text.
type Decision struct {
	Platform      Platform `json:"platform"`
	IsEngineering bool     `json:"isEngineering"`
	// Confidence is in [0,1]. 0.5 means maximum uncertainty (no
	// keyword matched at all).
	Confidence float64 `json:"confidence"`
	// Reasoning cites the matched keywords in human-readable form.
	Reasoning string `json:"reasoning"`
	// SuggestedLabels is the deduplicated union of all derived labels.
	SuggestedLabels []string `json:"suggestedLabels"`
	// Per-platform subsets, populated only when the resolved platform
	// includes the corresponding tracker (hybrid includes both).
	EngineeringLabels []string `json:"engineeringLabels,omitempty"`
	BusinessLabels    []string `json:"businessLabels,omitempty"`
	AutomationLabels  []string `json:"automationLabels,omitempty"`
}

// Keyword vocabularies. Matching is literal substring search over the
// lowercased text — a heuristic, not NLP. The vocabularies are fixed:
// changing them changes classification results, so additions should
// come with test updates.
var engineeringKeywords = []string{
	"bug", "error", "crash", "broken", "failure", "exception",
	"stack trace", "regression", "fix",
	"api", "endpoint", "backend", "webhook", "sdk",
	"database", "query", "schema", "index",
	"infrastructure", "docker", "kubernetes", "terraform", "deploy",
	"ci/cd", "build", "pipeline",
	"security", "vulnerability", "injection", "authentication", "authorization",
	"performance", "latency", "memory leak", "timeout", "optimization",
	"refactor", "migration", "dependency", "upgrade",
	"test", "unit test", "integration test", "lint", "code review",
	"typescript", "golang", "javascript", "python",
	"logging", "monitoring",
}

var businessKeywords = []string{
	"strategy", "roadmap", "vision", "okr", "kpi",
	"market research", "competitor", "pricing", "positioning",
	"marketing", "branding", "campaign", "announcement",
	"sales", "revenue", "partnership", "contract",
	"budget", "forecast", "headcount", "hiring",
	"customer", "stakeholder", "user research", "persona",
	"design review", "mockup", "wireframe", "brand guidelines",
	"compliance", "legal", "policy", "audit",
	"quarter", "planning", "retrospective", "process",
	"onboarding flow", "retention", "churn", "growth",
}

var hybridKeywords = []string{
	"epic", "major release", "platform migration",
	"initiative", "overhaul", "redesign",
	"cross-platform", "cross-functional", "end-to-end",
	"new product", "architecture change", "large-scale",
}

// strongKeywords are unambiguous terms that score 3 regardless of
// length. Everything else scores 2 when longer than 8 characters
// (specific jargon) and 1 otherwise.
var strongKeywords = map[string]bool{
	"bug": true, "error": true, "crash": true, "api": true,
	"security": true, "database": true, "deploy": true,
	"strategy": true, "roadmap": true, "marketing": true,
	"revenue": true, "budget": true, "hiring": true,
	"epic": true, "major release": true, "platform migration": true,
}

// Bonus phrases: strong signals scored outside the vocabulary buckets.
var agentWorkflowPhrases = []string{
	"claude code", "coding agent", "ai agent", "automated implementation",
	"agent-ready",
}

var businessFramingPhrases = []string{
	"business requirement", "customer request", "customer feedback",
	"executive decision",
}

const (
	agentWorkflowBonus   = 5
	businessFramingBonus = 4
	confidenceBoost      = 1.1
)

// Classify decides which tracker an issue belongs to from its title,
// description, and any existing labels. It is total: every input,
// including empty strings, produces a Decision. With no keyword signal
// at all the issue falls through to the business tracker at
// confidence 0.5.
func Classify(title, description string, labels []string) Decision {
	text := strings.ToLower(title + " " + description)
	labelText := strings.ToLower(strings.Join(labels, " "))

	engScore, engMatched := scoreVocabulary(text, labelText, engineeringKeywords)
	bizScore, bizMatched := scoreVocabulary(text, labelText, businessKeywords)
	hybScore, hybMatched := scoreVocabulary(text, labelText, hybridKeywords)

	if containsAny(text, labelText, agentWorkflowPhrases) {
		engScore += agentWorkflowBonus
	}
	if containsAny(text, labelText, businessFramingPhrases) {
		bizScore += businessFramingBonus
	}

	// Hybrid signals take priority over a same-or-lower score on
	// either side; otherwise engineering must strictly beat business.
	// Ties and the all-zero case resolve to the business tracker.
	var platform Platform
	switch {
	case hybScore > 0 && hybScore >= engScore && hybScore >= bizScore:
		platform = PlatformHybrid
	case engScore > bizScore:
		platform = PlatformEngineering
	default:
		platform = PlatformBusiness
	}

	total := engScore + bizScore + hybScore
	confidence := 0.5
	if total > 0 {
		winning := bizScore
		switch platform {
		case PlatformEngineering:
			winning = engScore
		case PlatformHybrid:
			winning = hybScore
		}
		confidence = float64(winning) / float64(total) * confidenceBoost
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	matched := append(append(engMatched, bizMatched...), hybMatched...)
	reasoning := buildReasoning(platform, matched)

	d := Decision{
		Platform:      platform,
		IsEngineering: platform == PlatformEngineering,
		Confidence:    confidence,
		Reasoning:     reasoning,
	}
	attachLabels(&d, title, description)
	return d
}

// attachLabels runs label derivation for each tracker the decision
// touches and records the deduplicated union.
func attachLabels(d *Decision, title, description string) {
	if d.Platform == PlatformEngineering || d.Platform == PlatformHybrid {
		d.EngineeringLabels = DeriveLabels(title, description, PlatformEngineering)
		d.AutomationLabels = automationSubset(d.EngineeringLabels)
	}
	if d.Platform == PlatformBusiness || d.Platform == PlatformHybrid {
		d.BusinessLabels = DeriveLabels(title, description, PlatformBusiness)
	}

	seen := make(map[string]bool)
	var union []string
	for _, l := range append(append([]string{}, d.EngineeringLabels...), d.BusinessLabels...) {
		if !seen[l] {
			seen[l] = true
			union = append(union, l)
		}
	}
	d.SuggestedLabels = union
}

// automationSubset picks out the labels that mark an issue as a
// candidate for unattended automated work.
func automationSubset(labels []string) []string {
	var out []string
	for _, l := range labels {
		if l == agentReadyLabel || strings.HasPrefix(l, complexityLabelPrefix) {
			out = append(out, l)
		}
	}
	return out
}

// scoreVocabulary scores every vocabulary keyword found in either the
// text blob or the label blob, using the tiered weights, and returns
// the total plus the list of matched keywords.
func scoreVocabulary(text, labelText string, vocab []string) (int, []string) {
	score := 0
	var matched []string
	for _, kw := range vocab {
		if strings.Contains(text, kw) || strings.Contains(labelText, kw) {
			score += keywordWeight(kw)
			matched = append(matched, kw)
		}
	}
	return score, matched
}

func keywordWeight(kw string) int {
	if strongKeywords[kw] {
		return 3
	}
	if len(kw) > 8 {
		return 2
	}
	return 1
}

func containsAny(text, labelText string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) || strings.Contains(labelText, p) {
			return true
		}
	}
	return false
}

func buildReasoning(platform Platform, matched []string) string {
	if len(matched) == 0 {
		return "No classification keywords matched; defaulting to the business tracker."
	}
	sort.Strings(matched)
	return fmt.Sprintf("Classified as %s based on keywords: %s", platform, strings.Join(matched, ", "))
}
