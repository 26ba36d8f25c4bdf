package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rileyhilliard/dfleet/pkg/sshutil"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var (
	configFlag   string
	noColorFlag  bool
	insecureFlag bool
)

// rootCmd is the base "dfleet" command.
var rootCmd = &cobra.Command{
	Use:   "dfleet",
	Short: "Fleet disk-usage monitor over SSH",
	Long: `dfleet queries a fleet of remote Linux hosts over SSH, runs a filtered
df on each one concurrently, and renders a color-coded usage report.

Hosts are organized into groups in .dfleet.yaml, each with a filter pattern
matched against the df output (typically a device or mount point prefix).

Examples:
  dfleet check
  dfleet check --json
  dfleet watch --interval 30s
  dfleet targets`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if insecureFlag {
			sshutil.StrictHostKeyChecking = false
		}
		sshutil.WarningHandler = func(message string) {
			fmt.Fprintf(os.Stderr, "warning: %s\n", message)
		}
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// errExitCritical means the report was already printed; the exit
		// code is the whole point.
		if !errors.Is(err, errExitCritical) {
			fmt.Fprintln(os.Stderr, err)
		}
		sshutil.CloseAgent()
		os.Exit(1)
	}
	sshutil.CloseAgent()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&insecureFlag, "insecure-ignore-host-key", false,
		"skip known_hosts verification (CI/automation only)")
}
