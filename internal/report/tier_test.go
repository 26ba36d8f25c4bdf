package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		percent uint8
		want    SeverityTier
	}{
		{0, TierHealthy},
		{1, TierHealthy},
		{49, TierHealthy},
		{50, TierHealthy},
		{51, TierMonitor},
		{60, TierMonitor},
		{70, TierMonitor},
		{71, TierWarning},
		{85, TierWarning},
		{90, TierWarning},
		{91, TierCritical},
		{99, TierCritical},
		{100, TierCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.percent), "TierFor(%d)", tt.percent)
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "healthy", TierHealthy.String())
	assert.Equal(t, "monitor", TierMonitor.String())
	assert.Equal(t, "warning", TierWarning.String())
	assert.Equal(t, "critical", TierCritical.String())
	assert.Equal(t, "unknown", SeverityTier(42).String())
}

func TestWorse(t *testing.T) {
	assert.Equal(t, TierCritical, worse(TierHealthy, TierCritical))
	assert.Equal(t, TierCritical, worse(TierCritical, TierHealthy))
	assert.Equal(t, TierMonitor, worse(TierMonitor, TierHealthy))
	assert.Equal(t, TierWarning, worse(TierWarning, TierWarning))
}
