// Package types provides common type definitions used throughout contentvet.
// This package sits at the bottom of the dependency graph and must not import
// any other internal packages.
package types

// Severity classifies how dangerous an issue is. The same vocabulary is
// shared by security findings and schema findings so the two streams merge
// without translation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityRank orders severities for sorting and filtering. Higher is worse.
var severityRank = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// Rank returns the numeric rank of a severity. Unknown severities rank 0.
func (s Severity) Rank() int {
	return severityRank[s]
}

// AtLeast reports whether s is as severe as other or worse.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	return severityRank[s] != 0
}

// IssueSource identifies which validation pass produced an issue.
type IssueSource string

const (
	SourceSecurity IssueSource = "security"
	SourceSchema   IssueSource = "schema"
)

// Issue is a single finding against a content file. Security-pattern hits and
// schema violations use the same shape, discriminated by Source.
type Issue struct {
	Source     IssueSource `json:"source"`
	Type       string      `json:"type"`
	Severity   Severity    `json:"severity"`
	Category   string      `json:"category,omitempty"`
	Pattern    string      `json:"pattern,omitempty"`
	Details    string      `json:"details"`
	Line       int         `json:"line,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Summary counts issues by severity.
type Summary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Add counts one issue of the given severity.
func (s *Summary) Add(sev Severity) {
	switch sev {
	case SeverityCritical:
		s.Critical++
	case SeverityHigh:
		s.High++
	case SeverityMedium:
		s.Medium++
	case SeverityLow:
		s.Low++
	}
	s.Total++
}

// Summarize builds a Summary from an issue list.
func Summarize(issues []Issue) Summary {
	var sum Summary
	for _, issue := range issues {
		sum.Add(issue.Severity)
	}
	return sum
}

// Result is the outcome of validating one content file. Passed is true only
// when no critical or high severity issues were found; medium and low issues
// are warnings and do not fail the file.
type Result struct {
	File     string  `json:"file"`
	Passed   bool    `json:"passed"`
	Summary  Summary `json:"summary"`
	Issues   []Issue `json:"issues"`
	Markdown string  `json:"report"`
}

// ContentType identifies which schema a content file is validated against.
type ContentType string

const (
	TypePersona  ContentType = "persona"
	TypeSkill    ContentType = "skill"
	TypeAgent    ContentType = "agent"
	TypeTemplate ContentType = "template"
	TypeTool     ContentType = "tool"
	TypeEnsemble ContentType = "ensemble"
	TypePrompt   ContentType = "prompt"
)

// KnownContentTypes lists every content type with a registered schema.
var KnownContentTypes = []ContentType{
	TypePersona, TypeSkill, TypeAgent, TypeTemplate,
	TypeTool, TypeEnsemble, TypePrompt,
}

// Known reports whether t has a registered schema.
func (t ContentType) Known() bool {
	for _, known := range KnownContentTypes {
		if t == known {
			return true
		}
	}
	return false
}
