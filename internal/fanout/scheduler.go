// Package fanout dispatches the remote executor across all targets with
// bounded concurrency and position-preserving result collection.
package fanout

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/dfleet/internal/fleet"
	"github.com/rileyhilliard/dfleet/internal/logger"
)

// DefaultMaxConcurrency caps the worker count when the caller doesn't.
const DefaultMaxConcurrency = 32

// Executor runs the remote command against one target.
// Implementations must honor context cancellation.
type Executor interface {
	Execute(ctx context.Context, target fleet.Target) fleet.ExecutionResult
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, target fleet.Target) fleet.ExecutionResult

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, target fleet.Target) fleet.ExecutionResult {
	return f(ctx, target)
}

// EventFunc receives each result as it completes, in completion order.
// It is called from worker goroutines one at a time.
type EventFunc func(result fleet.ExecutionResult)

// Scheduler fans the executor out over the target list.
type Scheduler struct {
	executor    Executor
	concurrency int
	onResult    EventFunc
	eventMu     sync.Mutex
	log         logger.Logger
}

// New creates a scheduler. concurrency <= 0 means min(target count, 32).
func New(exec Executor, concurrency int) *Scheduler {
	return &Scheduler{
		executor:    exec,
		concurrency: concurrency,
		log:         logger.NewEnvLogger("[fanout]"),
	}
}

// OnResult registers a callback fired once per completed target, in
// completion order. Useful for live displays; the final slice ordering is
// unaffected.
func (s *Scheduler) OnResult(fn EventFunc) {
	s.onResult = fn
}

// SetLogger replaces the scheduler's logger.
func (s *Scheduler) SetLogger(l logger.Logger) {
	s.log = l
}

// Run executes every target with at most K in flight and returns one result
// per target, in declaration order regardless of completion order.
//
// Failure domains are isolated: one target's failure never aborts or blocks
// the others. When ctx is cancelled, already-completed results are returned
// as-is and every remaining target is marked as a cancelled Timeout failure;
// nothing is silently omitted.
func (s *Scheduler) Run(ctx context.Context, targets []fleet.Target) []fleet.ExecutionResult {
	if len(targets) == 0 {
		return nil
	}

	workers := s.concurrency
	if workers <= 0 || workers > DefaultMaxConcurrency {
		workers = DefaultMaxConcurrency
	}
	if workers > len(targets) {
		workers = len(targets)
	}

	// One write-once slot per target. Workers own disjoint indices, so the
	// slice needs no lock; the WaitGroup is the synchronization point.
	results := make([]fleet.ExecutionResult, len(targets))

	queue := make(chan int, len(targets))
	for i := range targets {
		queue <- i
	}
	close(queue)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				target := targets[idx]

				// Targets we haven't started when the run is cancelled are
				// marked, not dropped.
				select {
				case <-ctx.Done():
					results[idx] = cancelledResult(target)
					continue
				default:
				}

				result := s.executor.Execute(ctx, target)
				results[idx] = result
				s.emit(result)
			}
		}()
	}
	wg.Wait()

	s.log.Debug("ran %d targets with %d workers in %v", len(targets), workers, time.Since(start))
	return results
}

// emit delivers a completion event, serialized across workers.
func (s *Scheduler) emit(result fleet.ExecutionResult) {
	if s.onResult == nil {
		return
	}
	s.eventMu.Lock()
	defer s.eventMu.Unlock()
	s.onResult(result)
}

// cancelledResult marks a target that never ran because the run was cancelled.
func cancelledResult(target fleet.Target) fleet.ExecutionResult {
	return fleet.ExecutionResult{
		Target:  target,
		Kind:    fleet.ErrTimeout,
		Message: "run cancelled before execution",
	}
}
