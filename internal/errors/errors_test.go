package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrSSH,
		ErrExec,
		ErrParse,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .dfleet.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "ssh error",
			code:       ErrSSH,
			message:    "Cannot connect to host",
			suggestion: "Check that the host is reachable",
		},
		{
			name:       "exec error",
			code:       ErrExec,
			message:    "Remote command exited 2",
			suggestion: "Check that df and grep exist on the host",
		},
		{
			name:       "parse error",
			code:       ErrParse,
			message:    "Unparsable df output",
			suggestion: "Check the filter pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := New(ErrSSH, "Connection failed", "Try again")
	out := err.Error()

	assert.True(t, strings.HasPrefix(out, "✗ "), "should start with failure symbol")
	assert.Contains(t, out, "Connection failed")
	assert.Contains(t, out, "Try again")
}

func TestErrorFormattingWithoutSuggestion(t *testing.T) {
	err := New(ErrConfig, "No groups configured", "")
	out := err.Error()

	assert.Equal(t, "✗ No groups configured\n", out)
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, "Cannot connect to db-01")

	assert.Equal(t, ErrSSH, err.Code)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("yaml: line 4: mapping values are not allowed")
	err := WrapWithCode(cause, ErrConfig, "Invalid config format", "Check the YAML syntax")

	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "Invalid config format", err.Message)
	assert.Contains(t, err.Error(), "mapping values are not allowed")
	assert.Contains(t, err.Error(), "Check the YAML syntax")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithCode(cause, ErrExec, "wrapped", "")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "bad config", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrSSH))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))

	// Wrapped structured errors still match by code
	wrapped := WrapWithCode(err, ErrSSH, "outer", "")
	assert.True(t, IsCode(wrapped, ErrSSH))
}
