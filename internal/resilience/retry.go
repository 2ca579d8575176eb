// Package resilience provides the retry, circuit-breaker and bounded-fanout
// patterns wrapped around every paid source call.
package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Curve selects the backoff growth between attempts.
type Curve string

const (
	// CurveLinear waits BaseDelay * attemptNumber between attempts.
	CurveLinear Curve = "linear"
	// CurveExponential doubles the delay each attempt.
	CurveExponential Curve = "exponential"
)

// RetryConfig controls retry behavior. Paid source calls use the linear
// curve so a rate-limited provider gets progressively more breathing room
// without the long tail exponential backoff produces.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	// A value of 0 means no retries. Default: 2.
	MaxRetries int

	// BaseDelay seeds the backoff. Default: 1s.
	BaseDelay time.Duration

	// Curve is the delay growth curve. Default: linear.
	Curve Curve

	// MaxDelay caps a single backoff sleep. Default: 30s.
	MaxDelay time.Duration

	// ShouldRetry overrides the default transient-error check.
	ShouldRetry func(err error) bool

	// OnRetry is called before each retry sleep.
	OnRetry func(attempt int, err error)
}

// DefaultRetryConfig returns the retry policy used for source API calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Second,
		Curve:      CurveLinear,
		MaxDelay:   30 * time.Second,
	}
}

func applyDefaults(cfg RetryConfig) RetryConfig {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.Curve == "" {
		cfg.Curve = CurveLinear
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	return cfg
}

// backoff computes the sleep before retry number attempt (1-based).
func backoff(attempt int, cfg RetryConfig) time.Duration {
	var delay time.Duration
	switch cfg.Curve {
	case CurveExponential:
		delay = cfg.BaseDelay << (attempt - 1)
	default:
		delay = cfg.BaseDelay * time.Duration(attempt)
	}
	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}

// Do runs fn, retrying transient failures up to MaxRetries times. The last
// error is returned once retries are exhausted. Context cancellation stops
// retries immediately.
func Do(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	_, err := DoVal(ctx, cfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoVal is Do preserving the successful call's return value.
func DoVal[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg = applyDefaults(cfg)

	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = IsTransient
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, lastErr
		}
		if !shouldRetry(lastErr) {
			return zero, lastErr
		}
		if attempt == cfg.MaxRetries {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, lastErr)
		}

		timer := time.NewTimer(backoff(attempt+1, cfg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// RetryLogger returns an OnRetry callback that logs each retry attempt.
func RetryLogger(source, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("retrying source call",
			zap.String("source", source),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
