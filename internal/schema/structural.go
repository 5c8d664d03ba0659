package schema

import (
	"fmt"
	"strings"

	"github.com/contentvet/contentvet/internal/types"
)

// Structural limits. Oversized submissions are rejected before the pattern
// scan runs so abuse-sized input cannot burn scan time.
const (
	MaxContentBytes     = 256 * 1024
	MaxFrontmatterBytes = 16 * 1024
	MaxLineLength       = 500
	// maxLineIssues caps how many line_too_long findings one file can emit.
	maxLineIssues = 10
)

// CheckSize enforces the content and metadata size caps. It operates on raw
// text and is safe to call before frontmatter parsing.
func CheckSize(raw string) []types.Issue {
	var issues []types.Issue
	if len(raw) > MaxContentBytes {
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "resource_exhaustion",
			Severity:   types.SeverityCritical,
			Details:    fmt.Sprintf("content is %d bytes, limit is %d", len(raw), MaxContentBytes),
			Suggestion: "split the submission or remove embedded payloads",
		})
	}
	return issues
}

// CheckFrontmatterSize enforces the metadata size cap on the raw frontmatter
// block.
func CheckFrontmatterSize(block string) []types.Issue {
	if len(block) <= MaxFrontmatterBytes {
		return nil
	}
	return []types.Issue{{
		Source:     types.SourceSchema,
		Type:       "resource_exhaustion",
		Severity:   types.SeverityHigh,
		Details:    fmt.Sprintf("frontmatter is %d bytes, limit is %d", len(block), MaxFrontmatterBytes),
		Suggestion: "move bulk data out of the metadata block",
	}}
}

// CheckLines flags lines longer than MaxLineLength as low-severity
// line_too_long issues, capped at maxLineIssues findings per file.
func CheckLines(raw string) []types.Issue {
	var issues []types.Issue
	for i, line := range strings.Split(raw, "\n") {
		if len(line) <= MaxLineLength {
			continue
		}
		issues = append(issues, types.Issue{
			Source:     types.SourceSchema,
			Type:       "line_too_long",
			Severity:   types.SeverityLow,
			Details:    fmt.Sprintf("line is %d characters, limit is %d", len(line), MaxLineLength),
			Line:       i + 1,
			Suggestion: "wrap or shorten the line",
		})
		if len(issues) >= maxLineIssues {
			break
		}
	}
	return issues
}
