package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/dfleet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
version: 1
concurrency: 8
connect_timeout: 5s
command_timeout: 15s
output:
  color: never
groups:
  - name: prod-db
    pattern: /dev/mapper
    hosts:
      - db-01
      - address: db-02
        pattern: /var/lib/postgres
  - name: prod-web
    pattern: /dev/sda
    hosts:
      - web-01
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 15*time.Second, cfg.CommandTimeout)
	assert.Equal(t, "never", cfg.Output.Color)

	require.Len(t, cfg.Groups, 2)
	assert.Equal(t, "prod-db", cfg.Groups[0].Name)
	assert.Equal(t, "prod-web", cfg.Groups[1].Name)
	require.Len(t, cfg.Groups[0].Hosts, 2)
	assert.Equal(t, "db-01", cfg.Groups[0].Hosts[0].Address)
	assert.Equal(t, "/var/lib/postgres", cfg.Groups[0].Hosts[1].Pattern)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
groups:
  - name: db
    pattern: /dev/
    hosts:
      - db-01
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Concurrency, "0 means pick at run time")
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, "auto", cfg.Output.Color)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "groups: [\n  broken")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoadBadGroups(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
groups:
  - pattern: /dev/
    hosts:
      - db-01
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "no name")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindExplicitPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "groups: []\n")

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = Find(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "groups: []\n")
	t.Chdir(dir)

	found, err := Find("")
	require.NoError(t, err)
	// TempDir may be behind a symlink on some platforms
	assert.Equal(t, filepath.Base(path), filepath.Base(found))
}

func TestFindWalksParents(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "groups: []\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	found, err := Find("")
	require.NoError(t, err)
	assert.NotEmpty(t, found)
	assert.Equal(t, ConfigFileName, filepath.Base(found))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.Empty(t, cfg.Groups)
}
