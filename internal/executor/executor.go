// Package executor runs the disk-usage command on a single target over SSH
// and classifies failures into the per-target error taxonomy.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/dfleet/internal/fleet"
	"github.com/rileyhilliard/dfleet/internal/logger"
	"github.com/rileyhilliard/dfleet/pkg/sshutil"
)

// DialFunc opens an authenticated connection to a host. The production
// implementation is sshutil.Dial; tests substitute mock runners.
type DialFunc func(ctx context.Context, host string, timeout time.Duration) (sshutil.Runner, error)

// Executor opens one fresh session per target, runs the composed df command,
// and always releases the connection before returning.
type Executor struct {
	dial           DialFunc
	connectTimeout time.Duration
	commandTimeout time.Duration
	log            logger.Logger
}

// New creates an Executor that dials over SSH with the given authenticator.
func New(auth sshutil.Authenticator, connectTimeout, commandTimeout time.Duration) *Executor {
	dial := func(ctx context.Context, host string, timeout time.Duration) (sshutil.Runner, error) {
		return sshutil.Dial(ctx, host, timeout, auth)
	}
	return NewWithDialer(dial, connectTimeout, commandTimeout)
}

// NewWithDialer creates an Executor with a custom dial function.
func NewWithDialer(dial DialFunc, connectTimeout, commandTimeout time.Duration) *Executor {
	if connectTimeout == 0 {
		connectTimeout = 10 * time.Second
	}
	if commandTimeout == 0 {
		commandTimeout = 30 * time.Second
	}
	return &Executor{
		dial:           dial,
		connectTimeout: connectTimeout,
		commandTimeout: commandTimeout,
		log:            logger.NewEnvLogger("[exec]"),
	}
}

// SetLogger replaces the executor's logger.
func (e *Executor) SetLogger(l logger.Logger) {
	e.log = l
}

// CommandTimeout returns the per-target command budget.
func (e *Executor) CommandTimeout() time.Duration {
	return e.commandTimeout
}

// Execute opens a connection to the target, runs the disk-usage command, and
// returns exactly one result. The connection is closed on every exit path.
// The context caps the whole call in addition to the per-target timeout.
func (e *Executor) Execute(ctx context.Context, target fleet.Target) fleet.ExecutionResult {
	ctx, cancel := context.WithTimeout(ctx, e.commandTimeout)
	defer cancel()

	start := time.Now()
	runner, err := e.dial(ctx, target.Host, e.connectTimeout)
	if err != nil {
		e.log.Debug("dial %s failed after %v: %v", target.Host, time.Since(start), err)
		return failure(target, classifyDialError(ctx, err), err)
	}
	defer runner.Close()

	cmd := Command(target.Pattern)
	stdout, stderr, exitCode, err := runner.Exec(ctx, cmd)
	if err != nil {
		e.log.Debug("exec on %s failed: %v", target.Host, err)
		return failure(target, classifyExecError(ctx, err), err)
	}

	if exitCode != 0 {
		// The grep no-match case is already normalized to exit 0 by the
		// composed command, so any non-zero exit is a real failure even
		// when stdout is empty.
		msg := fmt.Sprintf("remote command exited %d", exitCode)
		if detail := strings.TrimSpace(string(stderr)); detail != "" {
			msg = fmt.Sprintf("%s: %s", msg, firstLine(detail))
		}
		return fleet.ExecutionResult{
			Target:  target,
			Kind:    fleet.ErrRemoteCommand,
			Message: msg,
		}
	}

	e.log.Debug("collected %d bytes from %s in %v", len(stdout), target.Host, time.Since(start))
	return fleet.ExecutionResult{
		Target:    target,
		RawOutput: string(stdout),
		Kind:      fleet.ErrNone,
	}
}

// Command composes the remote command for a filter pattern.
//
// grep exits 1 when no lines match, which is a valid empty result here, not
// a failure. The `|| test $? -eq 1` clause folds that exit into success while
// preserving every other non-zero exit (grep errors, df errors via pipefail
// on shells that set it, missing binaries).
func Command(pattern string) string {
	return fmt.Sprintf("df -h 2>/dev/null | { grep -- %s || test $? -eq 1; }", shellQuote(pattern))
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// failure builds a failure result with the error's first line as the message.
func failure(target fleet.Target, kind fleet.ErrorKind, err error) fleet.ExecutionResult {
	return fleet.ExecutionResult{
		Target:  target,
		Kind:    kind,
		Message: firstLine(strings.TrimSpace(err.Error())),
	}
}

// firstLine trims a potentially multi-line error message to its first line.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
