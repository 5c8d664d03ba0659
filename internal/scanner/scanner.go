// Package scanner applies the security pattern catalog to content strings.
//
// Two scan paths are provided. Scan is the baseline: it walks the catalog in
// definition order and reports every matching pattern. ScanOptimized walks a
// priority-sorted index (severity first, then category, then pattern cost)
// with optional early exit, line-number skipping, and timing metrics, which
// is the path used for interactive feedback and benchmarking. Both paths are
// deterministic for identical input and options.
package scanner

import (
	"strings"
	"time"

	"github.com/contentvet/contentvet/internal/patterns"
	"github.com/contentvet/contentvet/internal/types"
)

// Options configures an optimized scan.
type Options struct {
	// MaxIssues stops the scan once this many issues are found. Zero means
	// no limit.
	MaxIssues int
	// SkipLineNumbers reports line 1 for every issue instead of locating the
	// matching line. Cheap mode for live-typing feedback.
	SkipLineNumbers bool
	// CriticalOnly skips patterns below high severity.
	CriticalOnly bool
	// CollectMetrics attributes wall-clock time to pattern matching and line
	// detection and returns a Metrics record.
	CollectMetrics bool
}

// QuickOptions is the interactive configuration: first critical/high hit
// only, no line numbers.
func QuickOptions() Options {
	return Options{MaxIssues: 1, SkipLineNumbers: true, CriticalOnly: true}
}

// FullOptions is the CI configuration: no limits, no metrics.
func FullOptions() Options {
	return Options{}
}

// MetricsOptions is the benchmarking configuration: full scan plus timing.
func MetricsOptions() Options {
	return Options{CollectMetrics: true}
}

// Metrics records where scan time went for one ScanOptimized call.
type Metrics struct {
	TotalTime         time.Duration `json:"total_time"`
	PatternTime       time.Duration `json:"pattern_time"`
	LineDetectionTime time.Duration `json:"line_detection_time"`
	PatternsChecked   int           `json:"patterns_checked"`
	ContentLength     int           `json:"content_length"`
	IssueCount        int           `json:"issue_count"`
}

// Scanner applies an immutable pattern catalog to content. The priority
// index used by ScanOptimized is computed once at construction, and the line
// cache is safe for concurrent use, so a single Scanner can be shared across
// batch workers.
type Scanner struct {
	catalog  []patterns.Pattern
	priority []int
	lines    *lineCache
}

// New creates a Scanner over the default pattern catalog.
func New() *Scanner {
	return NewWithCatalog(patterns.Catalog())
}

// NewWithCatalog creates a Scanner over a custom catalog. The priority index
// is sorted by severity descending, category priority descending, then regex
// source length ascending so cheaper patterns run first within a tier.
func NewWithCatalog(catalog []patterns.Pattern) *Scanner {
	s := &Scanner{
		catalog:  catalog,
		priority: make([]int, len(catalog)),
		lines:    newLineCache(defaultLineCacheCapacity),
	}
	for i := range s.priority {
		s.priority[i] = i
	}
	s.sortPriority()
	return s
}

// sortPriority orders the index once at construction. Stable insertion sort
// keeps equal-priority patterns in catalog order.
func (s *Scanner) sortPriority() {
	less := func(a, b int) bool {
		pa, pb := s.catalog[a], s.catalog[b]
		if pa.Severity.Rank() != pb.Severity.Rank() {
			return pa.Severity.Rank() > pb.Severity.Rank()
		}
		ca, cb := patterns.CategoryPriority(pa.Category), patterns.CategoryPriority(pb.Category)
		if ca != cb {
			return ca > cb
		}
		return len(pa.Regexp.String()) < len(pb.Regexp.String())
	}
	for i := 1; i < len(s.priority); i++ {
		for j := i; j > 0 && less(s.priority[j], s.priority[j-1]); j-- {
			s.priority[j], s.priority[j-1] = s.priority[j-1], s.priority[j]
		}
	}
}

// Scan runs the baseline scan: every pattern in catalog order, one issue per
// matching pattern, located at the first line whose isolated text also
// matches. Empty or whitespace-only content yields no issues.
func (s *Scanner) Scan(content string) []types.Issue {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var issues []types.Issue
	var lines []string
	for _, p := range s.catalog {
		if !p.Regexp.MatchString(content) {
			continue
		}
		if lines == nil {
			lines = s.lines.get(content)
		}
		issues = append(issues, securityIssue(p, locateLinear(p, lines)))
	}
	return issues
}

// ScanOptimized runs the priority-ordered scan. The returned Metrics is nil
// unless opts.CollectMetrics is set.
func (s *Scanner) ScanOptimized(content string, opts Options) ([]types.Issue, *Metrics) {
	start := time.Now()
	var m *Metrics
	if opts.CollectMetrics {
		m = &Metrics{ContentLength: len(content)}
	}

	if strings.TrimSpace(content) == "" {
		if m != nil {
			m.TotalTime = time.Since(start)
		}
		return nil, m
	}

	var issues []types.Issue
	var lines []string
	var patternTime, lineTime time.Duration
	checked := 0

	for _, idx := range s.priority {
		p := s.catalog[idx]
		if opts.CriticalOnly && !p.Severity.AtLeast(types.SeverityHigh) {
			// The priority index is severity-sorted, so everything after the
			// first sub-high pattern is also sub-high.
			break
		}

		checked++
		patternStart := time.Now()
		matched := p.Regexp.MatchString(content)
		patternTime += time.Since(patternStart)
		if !matched {
			continue
		}

		line := 1
		if !opts.SkipLineNumbers {
			lineStart := time.Now()
			if lines == nil {
				lines = s.lines.get(content)
			}
			line = locateMidpoint(p, lines)
			lineTime += time.Since(lineStart)
		}

		issues = append(issues, securityIssue(p, line))
		if opts.MaxIssues > 0 && len(issues) >= opts.MaxIssues {
			break
		}
	}

	if m != nil {
		m.TotalTime = time.Since(start)
		m.PatternTime = patternTime
		m.LineDetectionTime = lineTime
		m.PatternsChecked = checked
		m.IssueCount = len(issues)
	}
	return issues, m
}

func securityIssue(p patterns.Pattern, line int) types.Issue {
	return types.Issue{
		Source:   types.SourceSecurity,
		Type:     "security_" + p.Category,
		Severity: p.Severity,
		Category: p.Category,
		Pattern:  p.Name,
		Details:  p.Description,
		Line:     line,
	}
}

// locateLinear finds the first line matching the pattern, scanning from the
// top. Returns 1 when the match only spans multiple lines.
func locateLinear(p patterns.Pattern, lines []string) int {
	for i, line := range lines {
		if p.Regexp.MatchString(line) {
			return i + 1
		}
	}
	return 1
}

// locateMidpoint searches outward from the middle of the file (mid, mid+1,
// mid-1, mid+2, ...) which halves the expected number of line probes for
// uniformly placed matches. Returns 1 when no single line matches.
func locateMidpoint(p patterns.Pattern, lines []string) int {
	n := len(lines)
	if n == 0 {
		return 1
	}
	mid := n / 2
	if p.Regexp.MatchString(lines[mid]) {
		return mid + 1
	}
	for offset := 1; ; offset++ {
		hi, lo := mid+offset, mid-offset
		inRange := false
		if hi < n {
			inRange = true
			if p.Regexp.MatchString(lines[hi]) {
				return hi + 1
			}
		}
		if lo >= 0 {
			inRange = true
			if p.Regexp.MatchString(lines[lo]) {
				return lo + 1
			}
		}
		if !inRange {
			return 1
		}
	}
}
