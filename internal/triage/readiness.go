package triage

import (
	"strings"
	"time"
)

// Issue is the read-only view of a tracker issue consumed by the
// readiness assessor. It mirrors what the GitHub API returns; the
// triage core never creates or mutates one.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"` // "open" or "closed"
	Labels    []Label   `json:"labels"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Label is a tracker label attached to an issue.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Complexity is the estimated implementation effort tier.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Assessment estimates whether an issue can be implemented by an
// unattended coding agent and how much effort it would take.
// Compatibility and complexity are computed independently: an issue
// can be incompatible and still carry a complexity tier.
type Assessment struct {
	AgentCompatible bool       `json:"agentCompatible"`
	ComplexityLevel Complexity `json:"complexityLevel"`
	EstimatedHours  int        `json:"estimatedHours"`
	Prerequisites   []string   `json:"prerequisites"`
}

// Phrases that signal the issue needs human judgment and cannot be
// handed to an agent unattended.
var disqualifyingPhrases = []string{
	"stakeholder approval",
	"legal review",
	"multi-team",
	"breaking change",
	"domain expertise",
	"customer interaction",
	"executive sign-off",
}

// Complexity indicators, checked complex first. Anything matching
// neither list defaults to simple.
var complexIndicators = []string{
	"migration", "architecture", "refactor", "redesign", "overhaul",
	"multiple services", "distributed",
}

var moderateIndicators = []string{
	"integration", "endpoint", "optimization", "caching",
	"validation", "error handling", "pagination",
}

// Estimated hours per complexity tier.
const (
	hoursSimple   = 2
	hoursModerate = 8
	hoursComplex  = 16
)

// prerequisiteChecks append one human-readable prerequisite per topic
// keyword found in the text. Checked in fixed order; each contributes
// at most once.
var prerequisiteChecks = []struct {
	keyword      string
	prerequisite string
}{
	{"database", "Database access and schema review required"},
	{"test", "Existing test suite must pass before and after changes"},
	{"api", "API documentation should be reviewed"},
	{"security", "Security review required before merge"},
}

// AssessReadiness estimates agent compatibility, complexity, and
// prerequisites from the issue's title and body. Pure function of the
// text; labels and state are ignored.
func AssessReadiness(issue Issue) Assessment {
	text := strings.ToLower(issue.Title + " " + issue.Body)

	compatible := true
	for _, phrase := range disqualifyingPhrases {
		if strings.Contains(text, phrase) {
			compatible = false
			break
		}
	}

	level := ComplexitySimple
	hours := hoursSimple
	switch {
	case matchesAny(text, complexIndicators):
		level = ComplexityComplex
		hours = hoursComplex
	case matchesAny(text, moderateIndicators):
		level = ComplexityModerate
		hours = hoursModerate
	}

	var prereqs []string
	for _, check := range prerequisiteChecks {
		if strings.Contains(text, check.keyword) {
			prereqs = append(prereqs, check.prerequisite)
		}
	}

	return Assessment{
		AgentCompatible: compatible,
		ComplexityLevel: level,
		EstimatedHours:  hours,
		Prerequisites:   prereqs,
	}
}
