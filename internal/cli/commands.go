package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rileyhilliard/dfleet/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	checkGroupsFlag       []string
	checkConcurrencyFlag  int
	checkJSONFlag         bool
	checkFailCriticalFlag bool
	watchGroupsFlag       []string
	watchIntervalFlag     string
	initForce             bool
)

// checkCmd runs one collection cycle and prints the report
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Query all hosts once and print the usage report",
	Long: `Run one collection cycle: connect to every configured host concurrently,
run the filtered df command, and print the aggregated report in group order.

A host failure never hides the others; failed hosts appear in the report in
their configured position with the failure classified (auth, unreachable,
timeout, remote command error, protocol error).

Examples:
  dfleet check
  dfleet check --group prod-db
  dfleet check --concurrency 8
  dfleet check --json
  dfleet check --fail-critical`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkCommand(checkGroupsFlag, checkConcurrencyFlag, checkJSONFlag, checkFailCriticalFlag)
	},
}

// watchCmd starts the live TUI view
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live disk-usage view, refreshed on an interval",
	Long: `Start a live terminal view that re-runs the collection cycle on an
interval. Each host's row updates as soon as its result arrives; slow hosts
never delay the others.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Force refresh

Examples:
  dfleet watch
  dfleet watch --interval 10s
  dfleet watch --group prod-db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := 30 * time.Second
		if watchIntervalFlag != "" {
			parsed, err := time.ParseDuration(watchIntervalFlag)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("Invalid interval: %s", watchIntervalFlag),
					"Use a valid duration like 10s, 30s, or 2m")
			}
			if parsed < time.Second {
				return errors.New(errors.ErrConfig,
					"Interval too short",
					"Minimum interval is 1s to avoid hammering hosts")
			}
			interval = parsed
		}

		return watchCommand(watchGroupsFlag, interval)
	},
}

// targetsCmd prints the resolved target registry
var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Print the resolved targets (group, host, pattern)",
	Long: `Resolve the configured groups into the flat target list and print it.

Useful for checking which pattern each host ends up with after group
defaults and per-host overrides are applied.

Examples:
  dfleet targets
  dfleet targets --config ./fleet.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return targetsCommand()
	},
}

// initCmd creates a new .dfleet.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .dfleet.yaml configuration",
	Long: `Write a commented sample configuration to .dfleet.yaml in the current
directory.

Examples:
  dfleet init
  dfleet init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for dfleet.

Examples:
  # Bash
  dfleet completion bash > /etc/bash_completion.d/dfleet

  # Zsh
  dfleet completion zsh > "${fpath[1]}/_dfleet"

  # Fish
  dfleet completion fish > ~/.config/fish/completions/dfleet.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// check command flags
	checkCmd.Flags().StringSliceVar(&checkGroupsFlag, "group", nil, "limit the run to named groups (repeatable)")
	checkCmd.Flags().IntVar(&checkConcurrencyFlag, "concurrency", 0, "max hosts queried at once (0 = min(hosts, 32))")
	checkCmd.Flags().BoolVar(&checkJSONFlag, "json", false, "print the report as JSON")
	checkCmd.Flags().BoolVar(&checkFailCriticalFlag, "fail-critical", false, "exit 1 if any critical record or failure was seen")

	// watch command flags
	watchCmd.Flags().StringSliceVar(&watchGroupsFlag, "group", nil, "limit the view to named groups (repeatable)")
	watchCmd.Flags().StringVar(&watchIntervalFlag, "interval", "30s", "refresh interval (e.g., 10s, 30s, 2m)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
