// Package fleet defines the core data model for a monitoring run: the
// resolved execution targets, the per-target execution outcomes, and the
// parsed filesystem usage records.
package fleet

import "fmt"

// Target is one (group, host, filter pattern) unit of work.
// Targets are immutable once resolved and shared read-only by workers.
type Target struct {
	Group   string // Group name from config, in declaration order
	Host    string // SSH address: hostname, user@hostname, or host:port
	Pattern string // Filter pattern applied to the remote df output
	Index   int    // Position in the resolved registry (declaration order)
}

// ID returns a stable identifier for this target.
func (t Target) ID() string {
	return fmt.Sprintf("%s/%s", t.Group, t.Host)
}

// ErrorKind classifies a per-target execution failure.
type ErrorKind int

const (
	// ErrNone means the execution succeeded.
	ErrNone ErrorKind = iota
	// ErrAuthFailure means the remote host rejected our credentials.
	ErrAuthFailure
	// ErrUnreachable means the host could not be dialed.
	ErrUnreachable
	// ErrTimeout means the per-target budget expired or the run was cancelled.
	ErrTimeout
	// ErrRemoteCommand means the remote command ran and exited non-zero.
	ErrRemoteCommand
	// ErrProtocol means the session or stream broke before the command completed.
	ErrProtocol
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrAuthFailure:
		return "auth-failure"
	case ErrUnreachable:
		return "unreachable"
	case ErrTimeout:
		return "timeout"
	case ErrRemoteCommand:
		return "remote-command-error"
	case ErrProtocol:
		return "protocol-error"
	default:
		return "unknown"
	}
}

// ExecutionResult is the outcome of running the remote command on one target.
// Exactly one result is produced per target per run.
type ExecutionResult struct {
	Target    Target
	RawOutput string    // Command stdout; meaningful only when Kind == ErrNone
	Kind      ErrorKind // ErrNone on success
	Message   string    // Failure detail; empty on success
}

// Success reports whether the execution produced usable output.
// An empty RawOutput with ErrNone is a valid success: no filesystems matched.
func (r ExecutionResult) Success() bool {
	return r.Kind == ErrNone
}

// UsageRecord is one parsed line of filesystem usage.
type UsageRecord struct {
	Target      Target
	Filesystem  string
	SizeBytes   uint64 // 0 when the size column couldn't be parsed to bytes
	SizeText    string // Original size column, always populated
	UsedText    string // Original used column
	AvailText   string // Original available column
	UsedPercent uint8  // Validated integer in [0,100]
	MountPoint  string
}

// ParseFailure is a single malformed output line, non-fatal to sibling lines.
type ParseFailure struct {
	Target  Target
	RawLine string // Offending line, preserved for diagnostics
	Reason  string
}

func (f ParseFailure) Error() string {
	return fmt.Sprintf("%s: %s: %q", f.Target.ID(), f.Reason, f.RawLine)
}

// Line is one parsed output line: either a usage record or a parse failure.
// Exactly one of Record and Failure is set.
type Line struct {
	Record  *UsageRecord
	Failure *ParseFailure
}
