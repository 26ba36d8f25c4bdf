package report

// SeverityTier classifies a filesystem's used-percent into one of four bands.
// Bands are contiguous and inclusive: 0-50, 51-70, 71-90, 91-100.
type SeverityTier int

const (
	TierHealthy SeverityTier = iota
	TierMonitor
	TierWarning
	TierCritical
)

// Band edges (inclusive upper bounds).
const (
	healthyMax = 50
	monitorMax = 70
	warningMax = 90
)

// TierFor returns the severity tier for a validated used-percent.
// The parser guarantees usedPercent is in [0,100].
func TierFor(usedPercent uint8) SeverityTier {
	switch {
	case usedPercent <= healthyMax:
		return TierHealthy
	case usedPercent <= monitorMax:
		return TierMonitor
	case usedPercent <= warningMax:
		return TierWarning
	default:
		return TierCritical
	}
}

// String returns the tier name.
func (t SeverityTier) String() string {
	switch t {
	case TierHealthy:
		return "healthy"
	case TierMonitor:
		return "monitor"
	case TierWarning:
		return "warning"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// worse returns the more severe of two tiers.
func worse(a, b SeverityTier) SeverityTier {
	if b > a {
		return b
	}
	return a
}
