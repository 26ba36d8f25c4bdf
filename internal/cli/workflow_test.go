package cli

import (
	"testing"

	"github.com/rileyhilliard/dfleet/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestColorEnabled(t *testing.T) {
	defer func() { noColorFlag = false }()

	cfg := config.DefaultConfig()

	cfg.Output.Color = "always"
	noColorFlag = false
	assert.True(t, colorEnabled(cfg))

	cfg.Output.Color = "never"
	assert.False(t, colorEnabled(cfg))

	// --no-color wins over config
	cfg.Output.Color = "always"
	noColorFlag = true
	assert.False(t, colorEnabled(cfg))
}

func TestSetupRunWithoutConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := setupRun(nil, 0)
	assert.Error(t, err)
}
