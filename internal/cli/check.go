package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/dfleet/internal/errors"
	"github.com/rileyhilliard/dfleet/internal/report"
	"github.com/rileyhilliard/dfleet/internal/ui"
)

// errExitCritical forces a non-zero exit after the report was printed.
var errExitCritical = errors.New(errors.ErrExec,
	"Critical usage or failures detected",
	"See the report above for the affected hosts.")

// checkCommand runs one collection cycle and prints the report.
func checkCommand(groups []string, concurrency int, asJSON, failCritical bool) error {
	rc, err := setupRun(groups, concurrency)
	if err != nil {
		return err
	}

	// Ctrl+C cancels the run; completed results still make it into the
	// report, the rest are marked cancelled.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := rc.Scheduler.Run(ctx, rc.Targets)
	rep := report.Build(results)

	if asJSON {
		if err := WriteJSON(os.Stdout, rep.ToJSON()); err != nil {
			return err
		}
	} else {
		renderer := ui.NewRenderer(colorEnabled(rc.Config))
		fmt.Print(renderer.Render(rep))
	}

	if failCritical && rep.HasProblems() {
		// Distinguishable exit for alerting wrappers; the report itself
		// was already printed.
		return errExitCritical
	}

	return nil
}
