package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/dfleet/internal/dfparse"
	"github.com/rileyhilliard/dfleet/internal/fleet"
	"github.com/rileyhilliard/dfleet/internal/report"
	"github.com/rileyhilliard/dfleet/internal/ui"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorInfo)
	mutedStyle  = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(ui.ColorError)
	groupStyle  = lipgloss.NewStyle().Foreground(ui.ColorSecondary)
)

// View renders the watch screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	lastGroup := ""
	for _, r := range m.rows {
		if r.target.Group != lastGroup {
			if lastGroup != "" {
				b.WriteString("\n")
			}
			lastGroup = r.target.Group
			b.WriteString(groupStyle.Render(r.target.Group))
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(m.renderRow(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("r refresh · q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderHeader renders the title bar with run state.
func (m Model) renderHeader() string {
	title := headerStyle.Render("dfleet watch")

	state := "idle"
	if m.collecting {
		state = "collecting"
	}

	updated := "never"
	if !m.lastUpdate.IsZero() {
		secs := int(time.Since(m.lastUpdate).Seconds())
		switch secs {
		case 0:
			updated = "just now"
		case 1:
			updated = "1s ago"
		default:
			updated = fmt.Sprintf("%ds ago", secs)
		}
	}

	stats := mutedStyle.Render(fmt.Sprintf(" | %d hosts | %s | updated %s",
		len(m.rows), state, updated))
	return title + stats
}

// renderRow renders one target's line: pending, running, an error, or the
// worst filesystem seen in the latest output.
func (m Model) renderRow(r row) string {
	host := fmt.Sprintf("%-24s", r.target.Host)

	switch r.status {
	case rowPending:
		return host + mutedStyle.Render("…")
	case rowRunning:
		return host + mutedStyle.Render("collecting…")
	}

	res := r.result
	if !res.Success() {
		return host + errorStyle.Render(fmt.Sprintf("✗ %s: %s", res.Kind, res.Message))
	}

	worst, failures, total := worstRecord(res)
	if worst == nil {
		if failures > 0 {
			return host + errorStyle.Render(fmt.Sprintf("✗ %d unparsable lines", failures))
		}
		return host + mutedStyle.Render(fmt.Sprintf("no filesystems matched '%s'", r.target.Pattern))
	}

	tier := report.TierFor(worst.UsedPercent)
	line := fmt.Sprintf("%3d%% %-28s %s", worst.UsedPercent, worst.Filesystem, worst.MountPoint)
	out := host + lipgloss.NewStyle().Foreground(ui.TierColor(tier)).Render(line)
	if total > 1 {
		out += mutedStyle.Render(fmt.Sprintf("  (+%d more)", total-1))
	}
	if failures > 0 {
		out += errorStyle.Render(fmt.Sprintf("  (%d unparsable)", failures))
	}
	return out
}

// worstRecord parses a successful result and returns the fullest filesystem,
// the parse failure count, and the record count.
func worstRecord(res fleet.ExecutionResult) (*fleet.UsageRecord, int, int) {
	var worst *fleet.UsageRecord
	failures := 0
	total := 0

	for _, line := range dfparse.Parse(res.RawOutput, res.Target) {
		if line.Failure != nil {
			failures++
			continue
		}
		total++
		if worst == nil || line.Record.UsedPercent > worst.UsedPercent {
			worst = line.Record
		}
	}

	return worst, failures, total
}
