package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/dfleet/internal/config"
	"github.com/rileyhilliard/dfleet/internal/errors"
	"github.com/rileyhilliard/dfleet/internal/fleet"
)

// targetsJSON is the --json shape for a resolved target.
type targetsJSON struct {
	Index   int    `json:"index"`
	Group   string `json:"group"`
	Host    string `json:"host"`
	Pattern string `json:"pattern"`
}

// targetsCommand resolves the configured groups and prints the flat
// target list in declaration order.
func targetsCommand() error {
	path, err := config.Find(configFlag)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'dfleet init' to create .dfleet.yaml, or pass one with --config")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	targets, err := fleet.Resolve(cfg.Groups)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%-4s %-16s %-28s %s\n", "#", "GROUP", "HOST", "PATTERN")
	for _, t := range targets {
		fmt.Fprintf(os.Stdout, "%-4d %-16s %-28s %s\n", t.Index, t.Group, t.Host, t.Pattern)
	}

	return nil
}
