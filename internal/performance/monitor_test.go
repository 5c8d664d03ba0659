package performance

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentvet/contentvet/internal/scanner"
)

func sampleWithMs(ms int) scanner.Metrics {
	total := time.Duration(ms) * time.Millisecond
	return scanner.Metrics{
		TotalTime:         total,
		PatternTime:       total * 6 / 10,
		LineDetectionTime: total * 2 / 10,
		PatternsChecked:   46,
		ContentLength:     1000,
		IssueCount:        1,
	}
}

func TestMonitorEmptyReport(t *testing.T) {
	m := NewMonitor(0)
	report := m.Report()
	assert.Equal(t, 0, report.Samples)
	assert.Zero(t, report.AvgScanMs)
	assert.Zero(t, report.MaxScanMs)
}

func TestMonitorReportStatistics(t *testing.T) {
	m := NewMonitor(200)
	for i := 1; i <= 100; i++ {
		m.Record(sampleWithMs(i))
	}
	require.Equal(t, 100, m.SampleCount())

	report := m.Report()
	assert.Equal(t, 100, report.Samples)
	assert.InDelta(t, 50.5, report.AvgScanMs, 0.01)
	assert.InDelta(t, 50, report.MedianScanMs, 0.01)
	assert.InDelta(t, 95, report.P95ScanMs, 0.01)
	assert.InDelta(t, 99, report.P99ScanMs, 0.01)
	assert.InDelta(t, 1, report.MinScanMs, 0.01)
	assert.InDelta(t, 100, report.MaxScanMs, 0.01)

	// 100 samples * 1000 chars over 5050ms total.
	assert.InDelta(t, 100*1000/5050.0, report.CharsPerMs, 0.1)
	assert.InDelta(t, 60, report.PatternTimePct, 0.5)
	assert.InDelta(t, 20, report.LineDetectionPct, 0.5)
	assert.InDelta(t, 20, report.OverheadPct, 1.0)
}

func TestMonitorRingBufferEviction(t *testing.T) {
	m := NewMonitor(5)
	for i := 1; i <= 7; i++ {
		m.Record(sampleWithMs(i))
	}
	assert.Equal(t, 5, m.SampleCount())

	// Samples 1 and 2 were overwritten; the live window is 3..7.
	report := m.Report()
	assert.Equal(t, 5, report.Samples)
	assert.InDelta(t, 3, report.MinScanMs, 0.01)
	assert.InDelta(t, 7, report.MaxScanMs, 0.01)
}

func TestCheckThresholdsPass(t *testing.T) {
	m := NewMonitor(50)
	for i := 0; i < 20; i++ {
		m.Record(sampleWithMs(2))
	}
	result := m.CheckThresholds(DefaultThresholds())
	assert.True(t, result.Passed)
	assert.Empty(t, result.Messages)
}

func TestCheckThresholdsFailures(t *testing.T) {
	m := NewMonitor(50)
	for i := 0; i < 20; i++ {
		m.Record(sampleWithMs(500))
	}
	result := m.CheckThresholds(DefaultThresholds())
	require.False(t, result.Passed)
	require.NotEmpty(t, result.Messages)

	joined := strings.Join(result.Messages, "\n")
	assert.Contains(t, joined, "average scan time")
	assert.Contains(t, joined, "p95 scan time")
	assert.Contains(t, joined, "ReDoS")
	assert.Contains(t, joined, "throughput")
}

func TestCheckThresholdsNoSamples(t *testing.T) {
	m := NewMonitor(10)
	result := m.CheckThresholds(DefaultThresholds())
	require.False(t, result.Passed)
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0], "no scan samples")
}

func TestCheckThresholdsZeroFieldsSkipped(t *testing.T) {
	m := NewMonitor(10)
	m.Record(sampleWithMs(500))
	result := m.CheckThresholds(Thresholds{})
	assert.True(t, result.Passed)
}
