package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/dfleet/internal/watch"
)

// watchCommand starts the live TUI view.
func watchCommand(groups []string, interval time.Duration) error {
	rc, err := setupRun(groups, 0)
	if err != nil {
		return err
	}

	model := watch.NewModel(rc.Scheduler, rc.Targets, interval)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
