package fleet

import (
	"testing"

	"github.com/rileyhilliard/dfleet/internal/config"
	"github.com/rileyhilliard/dfleet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGroups() []config.Group {
	return []config.Group{
		{
			Name:    "prod-db",
			Pattern: "/dev/mapper",
			Hosts: []config.HostEntry{
				{Address: "db-01"},
				{Address: "db-02", Pattern: "/var/lib/postgres"},
			},
		},
		{
			Name:    "prod-web",
			Pattern: "/dev/sda",
			Hosts: []config.HostEntry{
				{Address: "web-01"},
			},
		},
	}
}

func TestResolveOrderAndPatterns(t *testing.T) {
	targets, err := Resolve(testGroups())
	require.NoError(t, err)
	require.Len(t, targets, 3)

	assert.Equal(t, Target{Group: "prod-db", Host: "db-01", Pattern: "/dev/mapper", Index: 0}, targets[0])
	assert.Equal(t, Target{Group: "prod-db", Host: "db-02", Pattern: "/var/lib/postgres", Index: 1}, targets[1])
	assert.Equal(t, Target{Group: "prod-web", Host: "web-01", Pattern: "/dev/sda", Index: 2}, targets[2])
}

func TestResolveIsDeterministic(t *testing.T) {
	first, err := Resolve(testGroups())
	require.NoError(t, err)
	second, err := Resolve(testGroups())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveNoGroups(t *testing.T) {
	_, err := Resolve(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestResolveDuplicateGroupName(t *testing.T) {
	groups := []config.Group{
		{Name: "db", Pattern: "/dev/", Hosts: []config.HostEntry{{Address: "a"}}},
		{Name: "db", Pattern: "/dev/", Hosts: []config.HostEntry{{Address: "b"}}},
	}

	_, err := Resolve(groups)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "'db'")
}

func TestResolveHostWithoutPattern(t *testing.T) {
	groups := []config.Group{
		{Name: "db", Hosts: []config.HostEntry{{Address: "db-01"}}},
	}

	_, err := Resolve(groups)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "db-01")
}

func TestFilterGroups(t *testing.T) {
	targets, err := Resolve(testGroups())
	require.NoError(t, err)

	filtered := FilterGroups(targets, []string{"prod-web"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "web-01", filtered[0].Host)
	assert.Equal(t, 0, filtered[0].Index, "filtered targets are reindexed")

	assert.Len(t, FilterGroups(targets, nil), 3)
	assert.Empty(t, FilterGroups(targets, []string{"nope"}))
}

func TestTargetID(t *testing.T) {
	target := Target{Group: "db", Host: "db-01"}
	assert.Equal(t, "db/db-01", target.ID())
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{ErrNone, "none"},
		{ErrAuthFailure, "auth-failure"},
		{ErrUnreachable, "unreachable"},
		{ErrTimeout, "timeout"},
		{ErrRemoteCommand, "remote-command-error"},
		{ErrProtocol, "protocol-error"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestExecutionResultSuccess(t *testing.T) {
	assert.True(t, ExecutionResult{Kind: ErrNone}.Success())
	assert.True(t, ExecutionResult{Kind: ErrNone, RawOutput: ""}.Success(), "empty output is still a success")
	assert.False(t, ExecutionResult{Kind: ErrTimeout}.Success())
}
