package triage

import "strings"

// Label names emitted by the generator. These are the literal strings
// created on the trackers, so renaming one is a breaking change for
// existing repositories.
const (
	agentReadyLabel       = "agent-ready"
	complexityLabelPrefix = "complexity:"
)

// typeRules map issue text to a single type label. Ordered: the first
// rule whose keyword matches wins the category.
var typeRules = []labelRule{
	{keywords: []string{"bug", "error", "broken", "crash", "fix"}, label: "bug"},
	{keywords: []string{"feature", "add", "implement", "support for"}, label: "feature"},
	{keywords: []string{"security", "vulnerability", "cve", "exploit"}, label: "security"},
	{keywords: []string{"infrastructure", "deploy", "docker", "kubernetes", "ci/cd"}, label: "infrastructure"},
}

// componentRules map issue text to a single component label,
// independent of the type label.
var componentRules = []labelRule{
	{keywords: []string{"api", "endpoint", "rest", "graphql"}, label: "api"},
	{keywords: []string{"frontend", "ui", "web", "css", "component"}, label: "frontend"},
	{keywords: []string{"database", "sql", "schema", "query"}, label: "database"},
}

// businessRules map issue text to Linear-side labels. Unlike type and
// component rules, every matching entry contributes a label.
var businessRules = []labelRule{
	{keywords: []string{"product", "feature request", "roadmap"}, label: "product"},
	{keywords: []string{"strategy", "revenue", "pricing", "partnership"}, label: "business"},
	{keywords: []string{"design", "mockup", "wireframe", "branding"}, label: "design"},
	{keywords: []string{"customer", "user feedback", "support"}, label: "customer"},
	{keywords: []string{"compliance", "legal", "policy", "audit"}, label: "compliance"},
	{keywords: []string{"marketing", "campaign", "announcement", "launch"}, label: "marketing"},
}

type labelRule struct {
	keywords []string
	label    string
}

// DeriveLabels produces the label set for an issue targeting the given
// platform. It is independent of Classify: callers that already know
// the target tracker can derive labels without re-classifying.
//
// Engineering targets always receive the agent-ready base label, and
// additionally a complexity label when the readiness assessment deems
// the issue agent-compatible.
func DeriveLabels(title, body string, platform Platform) []string {
	text := strings.ToLower(title + " " + body)
	var labels []string

	engineering := platform == PlatformEngineering || platform == PlatformHybrid

	if engineering {
		labels = append(labels, agentReadyLabel)
		if l, ok := firstMatch(text, typeRules); ok {
			labels = append(labels, l)
		}
		if l, ok := firstMatch(text, componentRules); ok {
			labels = append(labels, l)
		}
	}

	if platform == PlatformBusiness || platform == PlatformHybrid {
		for _, rule := range businessRules {
			if matchesAny(text, rule.keywords) {
				labels = append(labels, rule.label)
			}
		}
	}

	if engineering {
		a := AssessReadiness(Issue{Title: title, Body: body})
		if a.AgentCompatible {
			labels = append(labels, complexityLabelPrefix+string(a.ComplexityLevel))
		}
	}

	return dedupe(labels)
}

// firstMatch returns the label of the first rule whose keyword list
// matches the text.
func firstMatch(text string, rules []labelRule) (string, bool) {
	for _, rule := range rules {
		if matchesAny(text, rule.keywords) {
			return rule.label, true
		}
	}
	return "", false
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func dedupe(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	var out []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}
