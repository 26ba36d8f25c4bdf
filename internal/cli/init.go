package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/dfleet/internal/config"
	"github.com/rileyhilliard/dfleet/internal/errors"
	"gopkg.in/yaml.v3"
)

// initCommand writes a sample .dfleet.yaml to the current directory.
func initCommand(force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", configPath),
			"Use --force to overwrite")
	}

	sample := struct {
		Version        int                 `yaml:"version"`
		Concurrency    int                 `yaml:"concurrency"`
		ConnectTimeout string              `yaml:"connect_timeout"`
		CommandTimeout string              `yaml:"command_timeout"`
		Output         config.OutputConfig `yaml:"output"`
		Groups         []config.Group      `yaml:"groups"`
	}{
		Version:        1,
		Concurrency:    16,
		ConnectTimeout: "10s",
		CommandTimeout: "30s",
		Output:         config.OutputConfig{Color: "auto"},
		Groups: []config.Group{
			{
				Name:    "prod-db",
				Pattern: "/dev/mapper",
				Hosts: []config.HostEntry{
					{Address: "db-01.internal"},
					{Address: "db-02.internal", Pattern: "/var/lib/postgres"},
				},
			},
			{
				Name:    "prod-web",
				Pattern: "/dev/sda",
				Hosts: []config.HostEntry{
					{Address: "web-01.internal"},
					{Address: "web-02.internal"},
				},
			},
		},
	}

	data, err := yaml.Marshal(sample)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# dfleet configuration
# Each group names a set of hosts sharing a default df filter pattern;
# a host entry may override the pattern for itself.
# Run 'dfleet targets' to see the resolved host list,
# then 'dfleet check' for a one-shot usage report.

`
	content := header + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Println("  edit the group and host entries for your fleet")
	fmt.Println("  dfleet targets  - show the resolved targets")
	fmt.Println("  dfleet check    - run one collection cycle")

	return nil
}
