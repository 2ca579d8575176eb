package resilience

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatchesProcessesAllItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	var processed atomic.Int64

	err := RunBatches(context.Background(), BatchConfig{Size: 3, NoPacing: true}, items, func(ctx context.Context, item int) {
		processed.Add(1)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), processed.Load())
}

func TestRunBatchesBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	var current, peak int

	items := make([]int, 20)
	err := RunBatches(context.Background(), BatchConfig{Size: 4, NoPacing: true}, items, func(ctx context.Context, item int) {
		mu.Lock()
		current++
		if current > peak {
			peak = current
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		current--
		mu.Unlock()
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak, 4)
	assert.Greater(t, peak, 0)
}

func TestRunBatchesItemFailureDoesNotAbort(t *testing.T) {
	var processed atomic.Int64

	// fn has no error return at all; a panic-free fn that records a failure
	// in its own slot must still let every other item run.
	items := []int{0, 1, 2, 3, 4, 5}
	err := RunBatches(context.Background(), BatchConfig{Size: 2, NoPacing: true}, items, func(ctx context.Context, item int) {
		processed.Add(1)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), processed.Load())
}

func TestRunBatchesEmptyInput(t *testing.T) {
	err := RunBatches(context.Background(), DefaultBatchConfig(), nil, func(ctx context.Context, item int) {
		t.Fatal("fn must not run for empty input")
	})
	assert.NoError(t, err)
}

func TestRunBatchesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed atomic.Int64
	err := RunBatches(ctx, BatchConfig{Size: 2, NoPacing: true}, []int{1, 2, 3}, func(ctx context.Context, item int) {
		processed.Add(1)
	})
	require.Error(t, err)
	assert.Equal(t, int64(0), processed.Load())
}

func TestRunBatchesPacing(t *testing.T) {
	items := []int{1, 2, 3, 4}
	start := time.Now()

	err := RunBatches(context.Background(), BatchConfig{Size: 2, Pacing: 20 * time.Millisecond}, items, func(ctx context.Context, item int) {})
	require.NoError(t, err)

	// Two batches: the second waits for the pacing interval.
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestDefaultBatchConfig(t *testing.T) {
	cfg := DefaultBatchConfig()
	assert.Equal(t, 5, cfg.Size)
	assert.Equal(t, 500*time.Millisecond, cfg.Pacing)
}
