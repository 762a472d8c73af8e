package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucent-dev/lucent/internal/api"
)

func TestParsePatch(t *testing.T) {
	patch, err := parsePatch([]string{"theme=dark", "notifications=false", "integrations.github=true"})
	require.NoError(t, err)

	assert.Equal(t, api.SettingsPatch{
		"theme":               "dark",
		"notifications":       false,
		"integrations.github": true,
	}, patch)
}

func TestParsePatchRejectsMalformedArgs(t *testing.T) {
	_, err := parsePatch([]string{"theme"})
	assert.Error(t, err, "missing =value")

	_, err = parsePatch([]string{"=true"})
	assert.Error(t, err, "missing key")

	_, err = parsePatch([]string{"notifications=maybe"})
	assert.Error(t, err, "non-boolean value for a toggle")
}

func TestFormatReportLine(t *testing.T) {
	r := api.Report{
		ID:          "r1",
		InsightID:   "ins-7",
		GeneratedAt: time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
		Body:        map[string]any{"summary": "spending up 12%"},
	}

	line := formatReportLine(r)
	assert.Equal(t, "2026-08-15 09:30  ins-7         r1  spending up 12%", line)
}

func TestFormatReportLineWithoutSummary(t *testing.T) {
	r := api.Report{
		ID:          "r2",
		InsightID:   "ins-2",
		GeneratedAt: time.Date(2026, 8, 16, 10, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "2026-08-16 10:00  ins-2         r2", formatReportLine(r))
}
