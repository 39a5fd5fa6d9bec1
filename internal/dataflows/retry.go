package dataflows

import (
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures finite retry with exponential backoff. Jitter is
// applied to every delay so rate-limited clients do not stampede in sync.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
	}
}

// WithRetry executes fn, retrying with backoff until it succeeds or the
// retry budget is exhausted. The last error is returned as-is so callers
// can wrap it into a RetrievalError with their own source/op tags.
func WithRetry(config *RetryConfig, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(config.BaseDelay) *
				math.Pow(config.Multiplier, float64(attempt-1)))
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
			// Randomized jitter in [delay/2, delay).
			delay = delay/2 + time.Duration(rand.Int63n(int64(delay/2)+1))
			time.Sleep(delay)
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}

	return lastErr
}
