package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .dfleet.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Groups is the ordered list of host groups. Order matters: the report
	// preserves group declaration order, so groups are a list, not a map.
	Groups []Group `yaml:"groups" mapstructure:"-"`

	// Concurrency is the max number of hosts queried at once.
	// 0 means min(target count, 32).
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// ConnectTimeout bounds the SSH dial + handshake per host.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// CommandTimeout bounds the whole remote command per host.
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`

	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// Group defines a named set of hosts sharing a default filter pattern.
type Group struct {
	// Name identifies the group in the report.
	Name string `yaml:"name"`

	// Pattern is the default filter applied to df output for hosts in this
	// group. A host entry may override it.
	Pattern string `yaml:"pattern"`

	// Hosts is the ordered list of host entries.
	Hosts []HostEntry `yaml:"hosts"`
}

// HostEntry is one host in a group. In YAML it is either a bare address
// string or a mapping with an address and an optional pattern override.
type HostEntry struct {
	// Address is an SSH connection string: hostname, user@hostname,
	// or host:port. SSH config aliases work too.
	Address string `yaml:"address"`

	// Pattern overrides the group's default filter pattern when set.
	Pattern string `yaml:"pattern,omitempty"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		Concurrency:    0,
		ConnectTimeout: 10 * time.Second,
		CommandTimeout: 30 * time.Second,
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
