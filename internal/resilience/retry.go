package resilience

import (
	"context"
	"time"
)

// RetryConfig tunes exponential-backoff retries.
type RetryConfig struct {
	MaxAttempts       int           // total attempts, including the first
	InitialBackoff    time.Duration // backoff before the second attempt
	MaxBackoff        time.Duration // backoff ceiling
	BackoffMultiplier float64       // growth factor between attempts
}

// DefaultRetryConfig returns sensible defaults for a remote API call.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        5 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Retry runs fn until it succeeds, the attempts are exhausted, or ctx is
// cancelled. retryable decides whether an error is worth another attempt; a
// nil retryable retries everything. The last error is returned.
func Retry(ctx context.Context, cfg *RetryConfig, fn func() error, retryable func(error) bool) error {
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}

	var lastErr error
	backoff := cfg.InitialBackoff

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffMultiplier)
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return lastErr
}
