// Package watch implements the live terminal view: it re-runs the fan-out
// scheduler on an interval and updates one row per target as results come in,
// in completion order, while keeping rows in declaration order.
package watch

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/dfleet/internal/fanout"
	"github.com/rileyhilliard/dfleet/internal/fleet"
)

// rowStatus is the display state of one target's row.
type rowStatus int

const (
	rowPending rowStatus = iota
	rowRunning
	rowDone
)

// row holds the latest known state for one target.
type row struct {
	target fleet.Target
	status rowStatus
	result fleet.ExecutionResult // Valid when status == rowDone
}

// tickMsg signals the start of the next collection cycle.
type tickMsg time.Time

// resultMsg carries one completed target result (completion order).
type resultMsg fleet.ExecutionResult

// cycleDoneMsg signals that a full run finished.
type cycleDoneMsg struct{}

// Model is the Bubble Tea model for the watch view.
type Model struct {
	scheduler *fanout.Scheduler
	targets   []fleet.Target
	interval  time.Duration

	rows       []row
	lastUpdate time.Time
	collecting bool
	quitting   bool
	width      int
	height     int

	// Event plumbing between scheduler goroutine and the update loop.
	results chan fleet.ExecutionResult
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewModel creates a watch model over the resolved targets.
func NewModel(scheduler *fanout.Scheduler, targets []fleet.Target, interval time.Duration) Model {
	rows := make([]row, len(targets))
	for i, t := range targets {
		rows[i] = row{target: t}
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return Model{
		scheduler: scheduler,
		targets:   targets,
		interval:  interval,
		rows:      rows,
	}
}

// Init starts the first collection cycle immediately.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case "r":
			// Manual refresh, ignored while a cycle is in flight
			if !m.collecting {
				return m.startCycle()
			}
			return m, nil
		}
		return m, nil

	case tickMsg:
		if m.collecting || m.quitting {
			return m, nil
		}
		return m.startCycle()

	case resultMsg:
		for i := range m.rows {
			if m.rows[i].target.Index == fleet.ExecutionResult(msg).Target.Index {
				m.rows[i].status = rowDone
				m.rows[i].result = fleet.ExecutionResult(msg)
				break
			}
		}
		return m, m.waitForEvent()

	case cycleDoneMsg:
		m.collecting = false
		m.lastUpdate = time.Now()
		// Rows that never produced a result this cycle (cancelled) stay done
		// with their previous state; mark still-running ones back to pending.
		for i := range m.rows {
			if m.rows[i].status == rowRunning {
				m.rows[i].status = rowPending
			}
		}
		return m, m.scheduleTick()
	}

	return m, nil
}

// startCycle kicks off one scheduler run in the background.
func (m Model) startCycle() (tea.Model, tea.Cmd) {
	m.collecting = true
	for i := range m.rows {
		m.rows[i].status = rowRunning
	}

	m.results = make(chan fleet.ExecutionResult, len(m.targets))
	m.done = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	scheduler := m.scheduler
	results := m.results
	done := m.done
	targets := m.targets

	go func() {
		scheduler.OnResult(func(res fleet.ExecutionResult) {
			results <- res
		})
		scheduler.Run(ctx, targets)
		close(done)
	}()

	return m, m.waitForEvent()
}

// waitForEvent returns a command that delivers the next result or the
// cycle-done signal.
func (m Model) waitForEvent() tea.Cmd {
	results := m.results
	done := m.done
	return func() tea.Msg {
		select {
		case res := <-results:
			return resultMsg(res)
		case <-done:
			// Drain any result that raced with the close.
			select {
			case res := <-results:
				return resultMsg(res)
			default:
			}
			return cycleDoneMsg{}
		}
	}
}

// scheduleTick arms the next periodic refresh.
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
