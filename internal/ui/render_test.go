package ui

import (
	"strings"
	"testing"

	"github.com/rileyhilliard/dfleet/internal/fleet"
	"github.com/rileyhilliard/dfleet/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReport(t *testing.T) *report.Report {
	t.Helper()
	results := []fleet.ExecutionResult{
		{
			Target:    fleet.Target{Group: "prod-db", Host: "db-01", Pattern: "/dev/mapper", Index: 0},
			RawOutput: "/dev/mapper/rhel-root 50G 45G 5.0G 90% /\n",
			Kind:      fleet.ErrNone,
		},
		{
			Target:  fleet.Target{Group: "prod-db", Host: "db-02", Pattern: "/dev/mapper", Index: 1},
			Kind:    fleet.ErrUnreachable,
			Message: "dial tcp: connection refused",
		},
		{
			Target:    fleet.Target{Group: "prod-web", Host: "web-01", Pattern: "/dev/sda", Index: 2},
			RawOutput: "",
			Kind:      fleet.ErrNone,
		},
	}
	return report.Build(results)
}

func TestRenderPlain(t *testing.T) {
	out := NewRenderer(false).Render(buildReport(t))

	// Group sections in declaration order
	dbIdx := strings.Index(out, "prod-db (critical)")
	webIdx := strings.Index(out, "prod-web (healthy)")
	require.NotEqual(t, -1, dbIdx)
	require.NotEqual(t, -1, webIdx)
	assert.Less(t, dbIdx, webIdx)

	// Usage record row
	assert.Contains(t, out, "/dev/mapper/rhel-root")
	assert.Contains(t, out, "90%")

	// Failure row keeps its place and names the kind
	assert.Contains(t, out, "✗ unreachable: dial tcp: connection refused")

	// Empty success is explicit, not silent
	assert.Contains(t, out, "no filesystems matched '/dev/sda'")

	// Summary line
	assert.Contains(t, out, "3 hosts")
	assert.Contains(t, out, "1 filesystems")
	assert.Contains(t, out, "1 failures")

	// No ANSI escapes without color
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderAllHealthySummary(t *testing.T) {
	results := []fleet.ExecutionResult{
		{
			Target:    fleet.Target{Group: "g", Host: "h", Pattern: "/dev/"},
			RawOutput: "/dev/sda1 20G 2.0G 18G 10% /\n",
			Kind:      fleet.ErrNone,
		},
	}
	out := NewRenderer(false).Render(report.Build(results))

	assert.Contains(t, out, "all healthy")
	assert.NotContains(t, out, "failures")
	assert.NotContains(t, out, "critical")
}

func TestRenderParseFailureRow(t *testing.T) {
	results := []fleet.ExecutionResult{
		{
			Target:    fleet.Target{Group: "g", Host: "h", Pattern: "/dev/"},
			RawOutput: "/dev/sda1 20G 10G 10G N/A% /\n",
			Kind:      fleet.ErrNone,
		},
	}
	out := NewRenderer(false).Render(report.Build(results))

	assert.Contains(t, out, "✗ unparsable line")
	assert.Contains(t, out, "N/A%")
}

func TestTierColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, TierColor(report.TierHealthy))
	assert.Equal(t, ColorWarning, TierColor(report.TierMonitor))
	assert.Equal(t, ColorAlert, TierColor(report.TierWarning))
	assert.Equal(t, ColorError, TierColor(report.TierCritical))
}
