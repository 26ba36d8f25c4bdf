// Package report merges execution results into the ordered, immutable run
// report. It classifies records into severity tiers and performs no
// rendering; presentation layers consume the Report read-only.
package report

import (
	"time"

	"github.com/rileyhilliard/dfleet/internal/dfparse"
	"github.com/rileyhilliard/dfleet/internal/fleet"
)

// EntryKind says what an entry holds.
type EntryKind int

const (
	// EntryRecord is a parsed usage record.
	EntryRecord EntryKind = iota
	// EntryExecFailure is a per-target execution failure.
	EntryExecFailure
	// EntryParseFailure is a single malformed output line.
	EntryParseFailure
	// EntryEmpty marks a target whose command succeeded with no matching lines.
	EntryEmpty
)

// Entry is one row of the report: a usage record, an execution failure, a
// parse failure, or an explicit empty marker. Failures occupy the position a
// success would have, so diagnostics keep their place.
type Entry struct {
	Kind   EntryKind
	Target fleet.Target

	// Record and Tier are set when Kind == EntryRecord.
	Record *fleet.UsageRecord
	Tier   SeverityTier

	// ErrorKind and Message are set when Kind == EntryExecFailure.
	ErrorKind fleet.ErrorKind
	Message   string

	// RawLine is set when Kind == EntryParseFailure.
	RawLine string
}

// GroupReport is one group's ordered entries plus the worst tier seen.
type GroupReport struct {
	Name string
	// Entries follow target declaration order, then line order within a
	// target's output.
	Entries []Entry
	// Tier is the worst record tier in the group; any failure counts as
	// Critical for the rollup, so a broken host is never painted green.
	Tier SeverityTier
}

// Report is the complete outcome of one run. Built once, never mutated;
// the next run replaces it.
type Report struct {
	Groups    []GroupReport
	Generated time.Time

	Targets  int // Total targets in the run
	Records  int // Parsed usage records
	Failures int // Execution + parse failures
	Critical int // Records in the critical tier
}

// HasProblems reports whether any failure or critical record was seen.
func (r *Report) HasProblems() bool {
	return r.Failures > 0 || r.Critical > 0
}

// Build parses every execution result and assembles the report.
// Results must be in registry (declaration) order, one per target; the
// scheduler guarantees both. Group order follows target declaration order.
func Build(results []fleet.ExecutionResult) *Report {
	rep := &Report{
		Generated: time.Now(),
		Targets:   len(results),
	}

	// Index of each group in rep.Groups, keyed by name. First appearance
	// fixes the position, which matches declaration order because results
	// arrive registry-ordered.
	groupIdx := make(map[string]int)

	appendEntry := func(entry Entry) {
		name := entry.Target.Group
		idx, ok := groupIdx[name]
		if !ok {
			idx = len(rep.Groups)
			groupIdx[name] = idx
			rep.Groups = append(rep.Groups, GroupReport{Name: name})
		}
		group := &rep.Groups[idx]
		group.Entries = append(group.Entries, entry)

		switch entry.Kind {
		case EntryRecord:
			group.Tier = worse(group.Tier, entry.Tier)
		case EntryExecFailure, EntryParseFailure:
			group.Tier = worse(group.Tier, TierCritical)
		}
	}

	for _, result := range results {
		if !result.Success() {
			rep.Failures++
			appendEntry(Entry{
				Kind:      EntryExecFailure,
				Target:    result.Target,
				ErrorKind: result.Kind,
				Message:   result.Message,
			})
			continue
		}

		lines := dfparse.Parse(result.RawOutput, result.Target)
		if len(lines) == 0 {
			// Valid empty success: the command ran, nothing matched.
			appendEntry(Entry{
				Kind:   EntryEmpty,
				Target: result.Target,
			})
			continue
		}

		for _, line := range lines {
			if line.Failure != nil {
				rep.Failures++
				appendEntry(Entry{
					Kind:    EntryParseFailure,
					Target:  result.Target,
					Message: line.Failure.Reason,
					RawLine: line.Failure.RawLine,
				})
				continue
			}

			tier := TierFor(line.Record.UsedPercent)
			if tier == TierCritical {
				rep.Critical++
			}
			rep.Records++
			appendEntry(Entry{
				Kind:   EntryRecord,
				Target: result.Target,
				Record: line.Record,
				Tier:   tier,
			})
		}
	}

	return rep
}
