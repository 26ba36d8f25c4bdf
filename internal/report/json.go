package report

import "time"

// JSON view of the report for machine consumers. Field names are stable.

// JSONReport is the top-level JSON shape.
type JSONReport struct {
	Generated time.Time   `json:"generated"`
	Targets   int         `json:"targets"`
	Records   int         `json:"records"`
	Failures  int         `json:"failures"`
	Critical  int         `json:"critical"`
	Groups    []JSONGroup `json:"groups"`
}

// JSONGroup is one group in the JSON report.
type JSONGroup struct {
	Name    string      `json:"name"`
	Tier    string      `json:"tier"`
	Entries []JSONEntry `json:"entries"`
}

// JSONEntry is one entry in the JSON report.
type JSONEntry struct {
	Host    string `json:"host"`
	Pattern string `json:"pattern"`

	// Type is "record", "exec-failure", "parse-failure", or "empty".
	Type string `json:"type"`

	Filesystem  string `json:"filesystem,omitempty"`
	Size        string `json:"size,omitempty"`
	SizeBytes   uint64 `json:"size_bytes,omitempty"`
	Used        string `json:"used,omitempty"`
	Avail       string `json:"avail,omitempty"`
	UsedPercent uint8  `json:"used_percent,omitempty"`
	MountPoint  string `json:"mount_point,omitempty"`
	Tier        string `json:"tier,omitempty"`

	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	RawLine string `json:"raw_line,omitempty"`
}

// ToJSON converts the report into its JSON view.
func (r *Report) ToJSON() JSONReport {
	out := JSONReport{
		Generated: r.Generated,
		Targets:   r.Targets,
		Records:   r.Records,
		Failures:  r.Failures,
		Critical:  r.Critical,
		Groups:    make([]JSONGroup, 0, len(r.Groups)),
	}

	for _, group := range r.Groups {
		jg := JSONGroup{
			Name:    group.Name,
			Tier:    group.Tier.String(),
			Entries: make([]JSONEntry, 0, len(group.Entries)),
		}
		for _, entry := range group.Entries {
			je := JSONEntry{
				Host:    entry.Target.Host,
				Pattern: entry.Target.Pattern,
			}
			switch entry.Kind {
			case EntryRecord:
				je.Type = "record"
				je.Filesystem = entry.Record.Filesystem
				je.Size = entry.Record.SizeText
				je.SizeBytes = entry.Record.SizeBytes
				je.Used = entry.Record.UsedText
				je.Avail = entry.Record.AvailText
				je.UsedPercent = entry.Record.UsedPercent
				je.MountPoint = entry.Record.MountPoint
				je.Tier = entry.Tier.String()
			case EntryExecFailure:
				je.Type = "exec-failure"
				je.Error = entry.ErrorKind.String()
				je.Message = entry.Message
			case EntryParseFailure:
				je.Type = "parse-failure"
				je.Message = entry.Message
				je.RawLine = entry.RawLine
			case EntryEmpty:
				je.Type = "empty"
			}
			jg.Entries = append(jg.Entries, je)
		}
		out.Groups = append(out.Groups, jg)
	}

	return out
}
