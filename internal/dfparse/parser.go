// Package dfparse turns raw `df -h` output into structured usage records.
// Lines are parsed independently: one malformed line is one failure entry
// and never discards the rest of the output.
package dfparse

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/dfleet/internal/fleet"
)

// minFields is the documented df column count:
// filesystem, size, used, avail, use%, mount point.
const minFields = 6

// Parse splits raw command output into one entry per filesystem line.
// The df header line is recognized and skipped; blank lines are ignored.
// Mount points containing spaces are rejoined from the trailing fields.
func Parse(raw string, target fleet.Target) []fleet.Line {
	var lines []fleet.Line

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if isHeader(text) {
			continue
		}
		lines = append(lines, parseLine(text, target))
	}

	return lines
}

// parseLine parses a single df output line.
func parseLine(line string, target fleet.Target) fleet.Line {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return failLine(target, line,
			fmt.Sprintf("expected at least %d fields, got %d", minFields, len(fields)))
	}

	usedPercent, err := parseUsePercent(fields[4])
	if err != nil {
		return failLine(target, line, err.Error())
	}

	record := &fleet.UsageRecord{
		Target:      target,
		Filesystem:  fields[0],
		SizeText:    fields[1],
		UsedText:    fields[2],
		AvailText:   fields[3],
		UsedPercent: usedPercent,
		// df mount points can contain spaces ("/Volumes/My Disk")
		MountPoint: strings.Join(fields[5:], " "),
	}

	// Best effort: "50G" style sizes become bytes, anything df prints that
	// humanize can't read keeps only the display string.
	if bytes, err := humanize.ParseBytes(fields[1]); err == nil {
		record.SizeBytes = bytes
	}

	return fleet.Line{Record: record}
}

// parseUsePercent validates the use% column: an integer followed by '%',
// in [0,100]. Anything else is a parse failure, never a clamped value.
func parseUsePercent(field string) (uint8, error) {
	digits, ok := strings.CutSuffix(field, "%")
	if !ok {
		return 0, fmt.Errorf("use%% field %q has no %% suffix", field)
	}

	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("use%% field %q is not an integer", field)
	}
	if value < 0 || value > 100 {
		return 0, fmt.Errorf("use%% field %q is outside [0,100]", field)
	}

	return uint8(value), nil
}

// isHeader recognizes the df header line so grep-less output still parses.
func isHeader(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 2 && fields[0] == "Filesystem" &&
		strings.Contains(line, "Mounted")
}

// failLine builds a failure entry preserving the offending raw line.
func failLine(target fleet.Target, line, reason string) fleet.Line {
	return fleet.Line{Failure: &fleet.ParseFailure{
		Target:  target,
		RawLine: line,
		Reason:  reason,
	}}
}
