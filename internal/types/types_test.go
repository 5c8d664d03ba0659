package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical.AtLeast(SeverityHigh))
	assert.True(t, SeverityHigh.AtLeast(SeverityHigh))
	assert.False(t, SeverityMedium.AtLeast(SeverityHigh))
	assert.False(t, SeverityLow.AtLeast(SeverityMedium))

	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Zero(t, Severity("bogus").Rank())
}

func TestSeverityValid(t *testing.T) {
	for _, s := range []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow} {
		assert.True(t, s.Valid(), "severity %s", s)
	}
	assert.False(t, Severity("urgent").Valid())
	assert.False(t, Severity("").Valid())
}

func TestSummarize(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityCritical},
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityMedium},
		{Severity: SeverityLow},
	}
	sum := Summarize(issues)
	assert.Equal(t, Summary{Critical: 1, High: 2, Medium: 1, Low: 1, Total: 5}, sum)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestContentTypeKnown(t *testing.T) {
	for _, ct := range KnownContentTypes {
		assert.True(t, ct.Known(), "type %s", ct)
	}
	assert.False(t, ContentType("wizard").Known())
}
