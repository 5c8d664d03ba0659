package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentvet/contentvet/internal/types"
)

func TestCheckSize(t *testing.T) {
	assert.Empty(t, CheckSize("small document"))
	assert.Empty(t, CheckSize(strings.Repeat("a", MaxContentBytes)))

	issues := CheckSize(strings.Repeat("a", MaxContentBytes+1))
	require.Len(t, issues, 1)
	assert.Equal(t, "resource_exhaustion", issues[0].Type)
	assert.Equal(t, types.SeverityCritical, issues[0].Severity)
}

func TestCheckFrontmatterSize(t *testing.T) {
	assert.Empty(t, CheckFrontmatterSize("name: Coach"))

	issues := CheckFrontmatterSize(strings.Repeat("x", MaxFrontmatterBytes+1))
	require.Len(t, issues, 1)
	assert.Equal(t, "resource_exhaustion", issues[0].Type)
	assert.Equal(t, types.SeverityHigh, issues[0].Severity)
}

func TestCheckLines(t *testing.T) {
	long := strings.Repeat("w", MaxLineLength+1)

	raw := "short\nalso short\n" + long + "\ntrailer"
	issues := CheckLines(raw)
	require.Len(t, issues, 1)
	assert.Equal(t, "line_too_long", issues[0].Type)
	assert.Equal(t, types.SeverityLow, issues[0].Severity)
	assert.Equal(t, 3, issues[0].Line)
}

func TestCheckLinesCapped(t *testing.T) {
	long := strings.Repeat("w", MaxLineLength+1)
	lines := make([]string, 15)
	for i := range lines {
		lines[i] = long
	}

	issues := CheckLines(strings.Join(lines, "\n"))
	assert.Len(t, issues, maxLineIssues)
}
