package fanout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rileyhilliard/dfleet/internal/fleet"
	"github.com/rileyhilliard/dfleet/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTargets(n int) []fleet.Target {
	targets := make([]fleet.Target, n)
	for i := range targets {
		targets[i] = fleet.Target{
			Group:   "g",
			Host:    fmt.Sprintf("host-%02d", i),
			Pattern: "/dev/",
			Index:   i,
		}
	}
	return targets
}

func okExecutor(delay time.Duration) Executor {
	return ExecutorFunc(func(ctx context.Context, target fleet.Target) fleet.ExecutionResult {
		if delay > 0 {
			time.Sleep(delay)
		}
		return fleet.ExecutionResult{
			Target:    target,
			RawOutput: target.Host + " output",
			Kind:      fleet.ErrNone,
		}
	})
}

func TestRunReturnsOneResultPerTargetInOrder(t *testing.T) {
	targets := makeTargets(20)

	s := New(okExecutor(0), 4)
	s.SetLogger(logger.Noop())
	results := s.Run(context.Background(), targets)

	require.Len(t, results, len(targets))
	for i, result := range results {
		assert.Equal(t, targets[i], result.Target, "slot %d", i)
		assert.True(t, result.Success())
		assert.Equal(t, targets[i].Host+" output", result.RawOutput)
	}
}

func TestRunRespectsConcurrencyBound(t *testing.T) {
	const bound = 3
	var inFlight, peak int64

	exec := ExecutorFunc(func(ctx context.Context, target fleet.Target) fleet.ExecutionResult {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return fleet.ExecutionResult{Target: target, Kind: fleet.ErrNone}
	})

	s := New(exec, bound)
	s.SetLogger(logger.Noop())
	s.Run(context.Background(), makeTargets(12))

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(bound))
	assert.Greater(t, atomic.LoadInt64(&peak), int64(0))
}

func TestRunFailureIsolation(t *testing.T) {
	exec := ExecutorFunc(func(ctx context.Context, target fleet.Target) fleet.ExecutionResult {
		if target.Index%2 == 1 {
			return fleet.ExecutionResult{
				Target:  target,
				Kind:    fleet.ErrUnreachable,
				Message: "dial tcp: connection refused",
			}
		}
		return fleet.ExecutionResult{Target: target, RawOutput: "ok", Kind: fleet.ErrNone}
	})

	s := New(exec, 2)
	s.SetLogger(logger.Noop())
	results := s.Run(context.Background(), makeTargets(5))

	require.Len(t, results, 5)
	for i, result := range results {
		if i%2 == 1 {
			assert.Equal(t, fleet.ErrUnreachable, result.Kind, "slot %d", i)
		} else {
			assert.True(t, result.Success(), "slot %d", i)
		}
	}
}

func TestRunCancellationMarksRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var completed int64
	exec := ExecutorFunc(func(ctx context.Context, target fleet.Target) fleet.ExecutionResult {
		// First two targets finish, then the run is cancelled
		if atomic.AddInt64(&completed, 1) == 2 {
			cancel()
		}
		return fleet.ExecutionResult{Target: target, RawOutput: "ok", Kind: fleet.ErrNone}
	})

	s := New(exec, 1)
	s.SetLogger(logger.Noop())
	results := s.Run(ctx, makeTargets(6))

	require.Len(t, results, 6, "cancelled targets are marked, never omitted")

	var ok, cancelled int
	for _, result := range results {
		switch result.Kind {
		case fleet.ErrNone:
			ok++
		case fleet.ErrTimeout:
			cancelled++
			assert.Equal(t, "run cancelled before execution", result.Message)
		default:
			t.Fatalf("unexpected kind %v", result.Kind)
		}
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 4, cancelled)
}

func TestRunEmptyTargets(t *testing.T) {
	s := New(okExecutor(0), 4)
	assert.Nil(t, s.Run(context.Background(), nil))
}

func TestOnResultFiresOncePerTarget(t *testing.T) {
	targets := makeTargets(10)

	var mu sync.Mutex
	seen := make(map[string]int)

	s := New(okExecutor(time.Millisecond), 4)
	s.SetLogger(logger.Noop())
	s.OnResult(func(result fleet.ExecutionResult) {
		mu.Lock()
		seen[result.Target.Host]++
		mu.Unlock()
	})

	s.Run(context.Background(), targets)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, len(targets))
	for host, count := range seen {
		assert.Equal(t, 1, count, "host %s", host)
	}
}

func TestRunDefaultsConcurrency(t *testing.T) {
	// concurrency <= 0 still runs everything
	s := New(okExecutor(0), 0)
	s.SetLogger(logger.Noop())
	results := s.Run(context.Background(), makeTargets(3))
	require.Len(t, results, 3)
	for _, result := range results {
		assert.True(t, result.Success())
	}
}
