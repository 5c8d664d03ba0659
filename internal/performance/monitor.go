// Package performance accumulates scan timing samples and reports aggregate
// statistics for regression detection. The monitor is advisory only: it never
// blocks content, it only flags when the scanner itself has gotten slower
// than the configured thresholds.
package performance

import (
	"fmt"
	"sort"
	"sync"

	"github.com/contentvet/contentvet/internal/scanner"
)

// defaultMaxSamples bounds the sample ring buffer.
const defaultMaxSamples = 1000

// Monitor collects scan metrics in a bounded ring buffer. Safe for
// concurrent use.
type Monitor struct {
	mu       sync.Mutex
	samples  []scanner.Metrics
	capacity int
	writePos int
	full     bool
}

// NewMonitor creates a Monitor keeping the most recent maxSamples samples.
// Non-positive maxSamples uses the default of 1000.
func NewMonitor(maxSamples int) *Monitor {
	if maxSamples <= 0 {
		maxSamples = defaultMaxSamples
	}
	return &Monitor{
		samples:  make([]scanner.Metrics, maxSamples),
		capacity: maxSamples,
	}
}

// Record adds one scan sample, evicting the oldest when full.
func (m *Monitor) Record(sample scanner.Metrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples[m.writePos] = sample
	m.writePos = (m.writePos + 1) % m.capacity
	if m.writePos == 0 {
		m.full = true
	}
}

// SampleCount returns the number of recorded samples, capped at capacity.
func (m *Monitor) SampleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count()
}

func (m *Monitor) count() int {
	if m.full {
		return m.capacity
	}
	return m.writePos
}

// snapshot copies the live samples out under the lock.
func (m *Monitor) snapshot() []scanner.Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]scanner.Metrics, m.count())
	copy(out, m.samples[:m.count()])
	return out
}

// Report summarizes the recorded samples. Times are milliseconds.
type Report struct {
	Samples int `json:"samples"`

	AvgScanMs    float64 `json:"avg_scan_ms"`
	MedianScanMs float64 `json:"median_scan_ms"`
	P95ScanMs    float64 `json:"p95_scan_ms"`
	P99ScanMs    float64 `json:"p99_scan_ms"`
	MinScanMs    float64 `json:"min_scan_ms"`
	MaxScanMs    float64 `json:"max_scan_ms"`

	CharsPerMs    float64 `json:"chars_per_ms"`
	PatternsPerMs float64 `json:"patterns_per_ms"`
	IssuesPerMs   float64 `json:"issues_per_ms"`

	PatternTimePct   float64 `json:"pattern_time_pct"`
	LineDetectionPct float64 `json:"line_detection_pct"`
	OverheadPct      float64 `json:"overhead_pct"`
}

// Report computes aggregate statistics over the recorded samples. An empty
// monitor yields a zero Report.
func (m *Monitor) Report() Report {
	samples := m.snapshot()
	report := Report{Samples: len(samples)}
	if len(samples) == 0 {
		return report
	}

	times := make([]float64, len(samples))
	var totalMs, patternMs, lineMs float64
	var chars, patternsChecked, issues int
	for i, s := range samples {
		ms := float64(s.TotalTime.Nanoseconds()) / 1e6
		times[i] = ms
		totalMs += ms
		patternMs += float64(s.PatternTime.Nanoseconds()) / 1e6
		lineMs += float64(s.LineDetectionTime.Nanoseconds()) / 1e6
		chars += s.ContentLength
		patternsChecked += s.PatternsChecked
		issues += s.IssueCount
	}
	sort.Float64s(times)

	report.AvgScanMs = totalMs / float64(len(times))
	report.MedianScanMs = percentile(times, 50)
	report.P95ScanMs = percentile(times, 95)
	report.P99ScanMs = percentile(times, 99)
	report.MinScanMs = times[0]
	report.MaxScanMs = times[len(times)-1]

	if totalMs > 0 {
		report.CharsPerMs = float64(chars) / totalMs
		report.PatternsPerMs = float64(patternsChecked) / totalMs
		report.IssuesPerMs = float64(issues) / totalMs
		report.PatternTimePct = 100 * patternMs / totalMs
		report.LineDetectionPct = 100 * lineMs / totalMs
		report.OverheadPct = 100 - report.PatternTimePct - report.LineDetectionPct
		if report.OverheadPct < 0 {
			report.OverheadPct = 0
		}
	}
	return report
}

// percentile returns the nearest-rank percentile of a sorted slice.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * pct / 100.0)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Thresholds defines the pass/fail limits for a threshold check. Zero fields
// are not checked.
type Thresholds struct {
	MaxAverageMs  float64 `json:"max_average_ms"`
	MaxP95Ms      float64 `json:"max_p95_ms"`
	MaxP99Ms      float64 `json:"max_p99_ms"`
	MinCharsPerMs float64 `json:"min_chars_per_ms"`
}

// DefaultThresholds returns limits suitable for CI on commodity hardware.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxAverageMs:  50,
		MaxP95Ms:      150,
		MaxP99Ms:      400,
		MinCharsPerMs: 100,
	}
}

// CheckResult is the verdict of a threshold check with human-readable
// diagnostics for every violated limit.
type CheckResult struct {
	Passed   bool     `json:"passed"`
	Messages []string `json:"messages,omitempty"`
}

// CheckThresholds compares the current report against the given limits.
func (m *Monitor) CheckThresholds(t Thresholds) CheckResult {
	report := m.Report()
	result := CheckResult{Passed: true}
	fail := func(msg string) {
		result.Passed = false
		result.Messages = append(result.Messages, msg)
	}

	if report.Samples == 0 {
		fail("no scan samples recorded; run a metrics scan before checking thresholds")
		return result
	}
	if t.MaxAverageMs > 0 && report.AvgScanMs > t.MaxAverageMs {
		fail(fmt.Sprintf("average scan time %.2fms exceeds limit %.2fms; consider reducing catalog size or content caps", report.AvgScanMs, t.MaxAverageMs))
	}
	if t.MaxP95Ms > 0 && report.P95ScanMs > t.MaxP95Ms {
		fail(fmt.Sprintf("p95 scan time %.2fms exceeds limit %.2fms; look for recently added expensive patterns", report.P95ScanMs, t.MaxP95Ms))
	}
	if t.MaxP99Ms > 0 && report.P99ScanMs > t.MaxP99Ms {
		fail(fmt.Sprintf("p99 scan time %.2fms exceeds limit %.2fms; check for ReDoS-prone patterns or pathological inputs", report.P99ScanMs, t.MaxP99Ms))
	}
	if t.MinCharsPerMs > 0 && report.CharsPerMs < t.MinCharsPerMs {
		fail(fmt.Sprintf("throughput %.1f chars/ms below minimum %.1f; profile the pattern-matching phase", report.CharsPerMs, t.MinCharsPerMs))
	}
	return result
}
