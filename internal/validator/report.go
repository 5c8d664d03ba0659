package validator

import (
	"fmt"
	"strings"

	"github.com/contentvet/contentvet/internal/types"
)

// RenderMarkdown renders a human-readable markdown report for one result.
func RenderMarkdown(result *types.Result) string {
	var b strings.Builder

	status := "✅ PASSED"
	if !result.Passed {
		status = "❌ FAILED"
	}
	fmt.Fprintf(&b, "## Validation Report: %s\n\n", result.File)
	fmt.Fprintf(&b, "**Status:** %s\n\n", status)
	fmt.Fprintf(&b, "| Severity | Count |\n|----------|-------|\n")
	fmt.Fprintf(&b, "| Critical | %d |\n", result.Summary.Critical)
	fmt.Fprintf(&b, "| High | %d |\n", result.Summary.High)
	fmt.Fprintf(&b, "| Medium | %d |\n", result.Summary.Medium)
	fmt.Fprintf(&b, "| Low | %d |\n", result.Summary.Low)

	if len(result.Issues) == 0 {
		b.WriteString("\nNo issues found.\n")
		return b.String()
	}

	b.WriteString("\n### Issues\n\n")
	for _, issue := range result.Issues {
		fmt.Fprintf(&b, "- **[%s]** `%s`", strings.ToUpper(string(issue.Severity)), issue.Type)
		if issue.Line > 0 {
			fmt.Fprintf(&b, " (line %d)", issue.Line)
		}
		fmt.Fprintf(&b, ": %s", issue.Details)
		if issue.Suggestion != "" {
			fmt.Fprintf(&b, " (_%s_)", issue.Suggestion)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FileReport pairs a file path with its rendered report, the shape the CI
// workflow consumes from the JSON output file.
type FileReport struct {
	File   string `json:"file"`
	Report string `json:"report"`
}

// FileReports extracts the JSON report array from a batch of results.
func FileReports(results []*types.Result) []FileReport {
	reports := make([]FileReport, 0, len(results))
	for _, r := range results {
		reports = append(reports, FileReport{File: r.File, Report: r.Markdown})
	}
	return reports
}
