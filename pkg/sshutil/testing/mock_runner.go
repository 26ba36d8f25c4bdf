// Package testing provides a mock SSH runner for exercising SSH-dependent
// code without real connections.
package testing

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"
)

// CommandResponse defines a canned response for a specific command pattern.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error
	Delay    time.Duration // Simulated execution time, honored against ctx
}

// MockRunner simulates an SSH connection for testing.
// Commands are matched first exactly, then as regular expressions.
type MockRunner struct {
	mu       sync.Mutex
	host     string
	closed   bool
	commands map[string]CommandResponse // pattern -> response
	executed []string                   // Commands seen, in order
}

// NewMockRunner creates a new mock SSH runner for the given host.
func NewMockRunner(host string) *MockRunner {
	return &MockRunner{
		host:     host,
		commands: make(map[string]CommandResponse),
	}
}

// Respond registers a canned response for a command pattern.
func (m *MockRunner) Respond(pattern string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[pattern] = resp
}

// Executed returns the commands executed so far.
func (m *MockRunner) Executed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.executed))
	copy(out, m.executed)
	return out
}

// Closed reports whether Close was called.
func (m *MockRunner) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Exec runs a command against the canned responses.
func (m *MockRunner) Exec(ctx context.Context, cmd string) (stdout, stderr []byte, exitCode int, err error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, nil, -1, errors.New("connection closed")
	}
	m.executed = append(m.executed, cmd)

	resp, ok := m.commands[cmd]
	if !ok {
		for pattern, r := range m.commands {
			if matched, _ := regexp.MatchString(pattern, cmd); matched {
				resp, ok = r, true
				break
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return nil, []byte("command not found"), 127, nil
	}

	if resp.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, nil, -1, ctx.Err()
		case <-time.After(resp.Delay):
		}
	}

	select {
	case <-ctx.Done():
		return nil, nil, -1, ctx.Err()
	default:
	}

	return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Error
}

// Close marks the connection as closed.
func (m *MockRunner) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// GetHost returns the host this mock was created for.
func (m *MockRunner) GetHost() string {
	return m.host
}

// GetAddress returns the mock host:port address.
func (m *MockRunner) GetAddress() string {
	return m.host + ":22"
}
