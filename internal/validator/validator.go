// Package validator orchestrates content validation: it reads a file, splits
// frontmatter from body, runs the schema validator and the security scanner,
// and merges both issue streams into a single pass/fail result.
//
// A validation moves through Unread, Parsed, SchemaChecked, SecurityChecked,
// and Reported. Only an unreadable file or unparseable frontmatter
// short-circuits; schema failures never prevent the security scan, so a
// submitter sees every problem in one round.
package validator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	vterrors "github.com/contentvet/contentvet/internal/errors"
	"github.com/contentvet/contentvet/internal/logging"
	"github.com/contentvet/contentvet/internal/scanner"
	"github.com/contentvet/contentvet/internal/schema"
	"github.com/contentvet/contentvet/internal/types"
)

// Validator validates content files. A single Validator is safe for
// concurrent use; the scanner's line cache is its only shared mutable state.
type Validator struct {
	scanner *scanner.Scanner
	logger  logging.Logger
}

// New creates a Validator over the default pattern catalog.
func New(logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Validator{
		scanner: scanner.New(),
		logger:  logger.WithComponent("validator"),
	}
}

// Scanner exposes the underlying security scanner, shared so callers can run
// standalone scans against the same line cache.
func (v *Validator) Scanner() *scanner.Scanner {
	return v.scanner
}

// ValidateFile validates the file at path. A missing or unreadable file
// yields a failed result with one critical file_not_found issue; it is never
// an error, so batch validation of other files is unaffected.
func (v *Validator) ValidateFile(ctx context.Context, path string) *types.Result {
	raw, err := os.ReadFile(path)
	if err != nil {
		code := vterrors.CodeUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			code = vterrors.CodeFileNotFound
		}
		readErr := vterrors.NewIOError(code, "file cannot be read", err).WithFile(path)
		v.logger.Warn(ctx, readErr, "file unreadable", "file", path)
		return v.failed(path, types.Issue{
			Source:     types.SourceSchema,
			Type:       "file_not_found",
			Severity:   types.SeverityCritical,
			Details:    readErr.Error(),
			Suggestion: "check the path and file permissions",
		})
	}
	return v.ValidateContent(ctx, path, string(raw))
}

// ValidateContent validates raw document text. path is used only for
// reporting.
func (v *Validator) ValidateContent(ctx context.Context, path, raw string) *types.Result {
	// Unread -> Failed: empty documents never reach parsing.
	if strings.TrimSpace(raw) == "" {
		emptyErr := vterrors.NewValidationError(vterrors.CodeEmptyContent, "document is empty").WithFile(path)
		return v.failed(path, types.Issue{
			Source:     types.SourceSchema,
			Type:       "empty_content",
			Severity:   types.SeverityHigh,
			Details:    emptyErr.Error(),
			Suggestion: "add frontmatter and body content",
		})
	}

	// Oversized submissions are rejected before any scan work.
	if sizeIssues := schema.CheckSize(raw); len(sizeIssues) > 0 {
		return v.failed(path, sizeIssues...)
	}

	// Unread -> Parsed, or -> Failed on malformed frontmatter.
	frontmatter, body, err := schema.Extract(raw)
	if err != nil {
		parseErr := vterrors.NewFormatError(vterrors.CodeInvalidFormat, "frontmatter cannot be parsed", err).WithFile(path)
		v.logger.Debug(ctx, "frontmatter parse failed", "file", path, "error", parseErr.Error())
		return v.failed(path, types.Issue{
			Source:     types.SourceSchema,
			Type:       "invalid_format",
			Severity:   types.SeverityCritical,
			Details:    parseErr.Error(),
			Suggestion: "delimit valid YAML frontmatter with --- lines",
		})
	}

	var issues []types.Issue

	// Parsed -> SchemaChecked. Schema failures are collected, never fatal.
	issues = append(issues, schema.ValidateFrontmatter(frontmatter)...)
	issues = append(issues, schema.CheckFrontmatterSize(frontmatterBlock(raw))...)
	issues = append(issues, schema.CheckLines(raw)...)

	// SchemaChecked -> SecurityChecked: scan body and frontmatter values.
	issues = append(issues, v.scanSecurity(frontmatter, body, bodyLineOffset(raw))...)

	// SecurityChecked -> Reported.
	return v.report(path, issues)
}

// scanSecurity scans the body and the flattened frontmatter values. A
// pattern that matches both appears once, keeping the body occurrence for
// its real line number.
func (v *Validator) scanSecurity(frontmatter map[string]any, body string, bodyOffset int) []types.Issue {
	bodyIssues := v.scanner.Scan(body)
	for i := range bodyIssues {
		bodyIssues[i].Line += bodyOffset
	}

	seen := make(map[string]bool, len(bodyIssues))
	for _, issue := range bodyIssues {
		seen[issue.Pattern] = true
	}

	merged := bodyIssues
	for _, issue := range v.scanner.Scan(schema.FrontmatterValues(frontmatter)) {
		if seen[issue.Pattern] {
			continue
		}
		// Frontmatter values are scanned as a synthetic string; line numbers
		// there do not map back to the file.
		issue.Line = 1
		merged = append(merged, issue)
		seen[issue.Pattern] = true
	}
	return merged
}

// bodyLineOffset returns how many file lines precede the body: the
// frontmatter block plus both delimiter lines.
func bodyLineOffset(raw string) int {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i + 1
		}
	}
	return 0
}

// frontmatterBlock returns the raw text between the delimiters, or empty.
func frontmatterBlock(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return ""
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n")
		}
	}
	return ""
}

// failed builds a terminal failed result from short-circuit issues.
func (v *Validator) failed(path string, issues ...types.Issue) *types.Result {
	return v.report(path, issues)
}

// report merges issues into the final result.
func (v *Validator) report(path string, issues []types.Issue) *types.Result {
	summary := types.Summarize(issues)
	result := &types.Result{
		File:    path,
		Passed:  summary.Critical == 0 && summary.High == 0,
		Summary: summary,
		Issues:  issues,
	}
	result.Markdown = RenderMarkdown(result)
	return result
}
