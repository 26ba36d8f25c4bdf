package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rileyhilliard/dfleet/internal/config"
	"github.com/rileyhilliard/dfleet/internal/errors"
	"github.com/rileyhilliard/dfleet/internal/executor"
	"github.com/rileyhilliard/dfleet/internal/fanout"
	"github.com/rileyhilliard/dfleet/internal/fleet"
	"github.com/rileyhilliard/dfleet/pkg/sshutil"
)

// runContext carries the pieces every collection command needs.
type runContext struct {
	Config    *config.Config
	Targets   []fleet.Target
	Scheduler *fanout.Scheduler
}

// setupRun loads config, resolves the registry, applies the group filter,
// and wires the executor into a scheduler. Config problems abort before any
// remote call is attempted.
func setupRun(groups []string, concurrency int) (*runContext, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'dfleet init' to create .dfleet.yaml, or pass one with --config")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	targets, err := fleet.Resolve(cfg.Groups)
	if err != nil {
		return nil, err
	}

	targets = fleet.FilterGroups(targets, groups)
	if len(targets) == 0 {
		return nil, errors.New(errors.ErrConfig,
			"No targets match the group filter",
			"Check the group names with 'dfleet targets'.")
	}

	exec := executor.New(sshutil.AgentKeyAuthenticator{}, cfg.ConnectTimeout, cfg.CommandTimeout)

	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}
	scheduler := fanout.New(exec, concurrency)

	return &runContext{
		Config:    cfg,
		Targets:   targets,
		Scheduler: scheduler,
	}, nil
}

// colorEnabled resolves the effective color mode from config and flags.
func colorEnabled(cfg *config.Config) bool {
	if noColorFlag {
		return false
	}
	switch cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}
