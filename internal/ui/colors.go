package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/dfleet/internal/report"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2"   // Green
	ColorError   lipgloss.Color = "1"   // Red
	ColorWarning lipgloss.Color = "3"   // Yellow
	ColorAlert   lipgloss.Color = "208" // Orange (256-color)
	ColorInfo    lipgloss.Color = "6"   // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// TierColor maps a severity tier to its display color.
func TierColor(tier report.SeverityTier) lipgloss.Color {
	switch tier {
	case report.TierHealthy:
		return ColorSuccess
	case report.TierMonitor:
		return ColorWarning
	case report.TierWarning:
		return ColorAlert
	case report.TierCritical:
		return ColorError
	default:
		return ColorPrimary
	}
}
