// Package ui renders run reports for the terminal. It is a pure consumer of
// the report structure; nothing here feeds back into the core.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/dfleet/internal/report"
)

// Renderer turns a report into colored terminal output.
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer. When color is false all styling is skipped,
// for piped output or color=never.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// Render produces the full report: group sections, entry rows, summary line.
func (r *Renderer) Render(rep *report.Report) string {
	var b strings.Builder

	for i, group := range rep.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.renderGroupHeader(group))
		b.WriteString("\n")
		for _, entry := range group.Entries {
			b.WriteString("  ")
			b.WriteString(r.renderEntry(entry))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(r.renderSummary(rep))
	b.WriteString("\n")

	return b.String()
}

// renderGroupHeader renders "name" colored by the group's worst tier.
func (r *Renderer) renderGroupHeader(group report.GroupReport) string {
	header := fmt.Sprintf("%s (%s)", group.Name, group.Tier)
	return r.styled(header, lipgloss.NewStyle().Foreground(TierColor(group.Tier)).Bold(true))
}

// renderEntry renders one report row.
func (r *Renderer) renderEntry(entry report.Entry) string {
	switch entry.Kind {
	case report.EntryRecord:
		rec := entry.Record
		line := fmt.Sprintf("%-24s %-28s %6s used of %-6s %4d%%  %s",
			rec.Target.Host, rec.Filesystem, rec.UsedText, rec.SizeText,
			rec.UsedPercent, rec.MountPoint)
		return r.styled(line, lipgloss.NewStyle().Foreground(TierColor(entry.Tier)))

	case report.EntryExecFailure:
		line := fmt.Sprintf("%-24s ✗ %s: %s", entry.Target.Host, entry.ErrorKind, entry.Message)
		return r.styled(line, lipgloss.NewStyle().Foreground(ColorError))

	case report.EntryParseFailure:
		line := fmt.Sprintf("%-24s ✗ unparsable line (%s): %q",
			entry.Target.Host, entry.Message, entry.RawLine)
		return r.styled(line, lipgloss.NewStyle().Foreground(ColorError))

	case report.EntryEmpty:
		line := fmt.Sprintf("%-24s no filesystems matched '%s'", entry.Target.Host, entry.Target.Pattern)
		return r.styled(line, lipgloss.NewStyle().Foreground(ColorMuted))

	default:
		return ""
	}
}

// renderSummary renders the one-line run summary.
func (r *Renderer) renderSummary(rep *report.Report) string {
	parts := []string{
		fmt.Sprintf("%d hosts", rep.Targets),
		fmt.Sprintf("%d filesystems", rep.Records),
	}
	if rep.Critical > 0 {
		parts = append(parts, r.styled(fmt.Sprintf("%d critical", rep.Critical),
			lipgloss.NewStyle().Foreground(ColorError).Bold(true)))
	}
	if rep.Failures > 0 {
		parts = append(parts, r.styled(fmt.Sprintf("%d failures", rep.Failures),
			lipgloss.NewStyle().Foreground(ColorError)))
	}
	if rep.Critical == 0 && rep.Failures == 0 {
		parts = append(parts, r.styled("all healthy",
			lipgloss.NewStyle().Foreground(ColorSuccess)))
	}
	return strings.Join(parts, " | ")
}

// styled applies a style when color is enabled.
func (r *Renderer) styled(s string, style lipgloss.Style) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}
