package executor

import (
	"context"
	stderrors "errors"
	"net"
	"strings"

	"github.com/rileyhilliard/dfleet/internal/fleet"
)

// classifyDialError maps a connection-phase error to an ErrorKind.
func classifyDialError(ctx context.Context, err error) fleet.ErrorKind {
	if kind, ok := contextKind(ctx, err); ok {
		return kind
	}

	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "unable to authenticate"),
		strings.Contains(errStr, "no supported methods"),
		strings.Contains(errStr, "permission denied"),
		strings.Contains(errStr, "No SSH auth methods"):
		return fleet.ErrAuthFailure
	case strings.Contains(errStr, "i/o timeout"),
		strings.Contains(errStr, "deadline exceeded"):
		return fleet.ErrTimeout
	case isNetError(err),
		strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no route to host"),
		strings.Contains(errStr, "network is unreachable"),
		strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "Can't reach"):
		return fleet.ErrUnreachable
	case strings.Contains(errStr, "handshake"),
		strings.Contains(errStr, "host key"):
		return fleet.ErrProtocol
	default:
		return fleet.ErrUnreachable
	}
}

// classifyExecError maps a command-phase error to an ErrorKind.
// Non-zero exits never reach here; they are RemoteCommandError by the caller.
func classifyExecError(ctx context.Context, err error) fleet.ErrorKind {
	if kind, ok := contextKind(ctx, err); ok {
		return kind
	}

	// Anything else during execution means the session or stream broke
	// before the remote signalled completion: partial output is never
	// promoted to a truncated success.
	return fleet.ErrProtocol
}

// contextKind reports the Timeout kind for cancellation/expiry errors.
// Both a cancelled run and an expired per-target budget surface as Timeout;
// the message distinguishes them.
func contextKind(ctx context.Context, err error) (fleet.ErrorKind, bool) {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return fleet.ErrTimeout, true
	}
	if ctx.Err() != nil {
		return fleet.ErrTimeout, true
	}
	return fleet.ErrNone, false
}

// isNetError reports whether err is (or wraps) a net-level error.
func isNetError(err error) bool {
	var netErr net.Error
	var opErr *net.OpError
	return stderrors.As(err, &netErr) || stderrors.As(err, &opErr)
}
