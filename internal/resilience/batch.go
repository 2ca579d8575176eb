package resilience

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// BatchConfig bounds concurrent fan-out over a slice of work items.
type BatchConfig struct {
	// Size is how many items run concurrently per batch. Default: 5.
	Size int

	// Pacing is the minimum gap between batch starts, respecting provider
	// rate limits. Default: 500ms. Zero disables pacing only when set via
	// NoPacing.
	Pacing time.Duration

	// NoPacing disables the inter-batch delay (tests).
	NoPacing bool
}

// DefaultBatchConfig returns the fan-out policy for source API calls.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{Size: 5, Pacing: 500 * time.Millisecond}
}

// RunBatches splits items into fixed-size batches and runs fn concurrently
// within each batch. fn's error is the item's outcome, not the batch's: a
// failing item never aborts its batch or the remaining batches. Batch starts
// are paced by a rate limiter; the first batch starts immediately. The only
// error returned is a cancelled context.
func RunBatches[T any](ctx context.Context, cfg BatchConfig, items []T, fn func(ctx context.Context, item T)) error {
	if cfg.Size <= 0 {
		cfg.Size = 5
	}
	if cfg.Pacing <= 0 && !cfg.NoPacing {
		cfg.Pacing = 500 * time.Millisecond
	}

	var limiter *rate.Limiter
	if !cfg.NoPacing {
		limiter = rate.NewLimiter(rate.Every(cfg.Pacing), 1)
	}

	for start := 0; start < len(items); start += cfg.Size {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}

		end := start + cfg.Size
		if end > len(items) {
			end = len(items)
		}

		g, gCtx := errgroup.WithContext(ctx)
		for _, item := range items[start:end] {
			g.Go(func() error {
				fn(gCtx, item)
				return nil
			})
		}
		// fn never returns an error, so Wait only reflects ctx.
		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}
