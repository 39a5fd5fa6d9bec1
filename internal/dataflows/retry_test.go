package dataflows

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func fastRetryConfig(maxRetries int) *RetryConfig {
	return &RetryConfig{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2.0,
	}
}

func TestWithRetryFirstTrySuccess(t *testing.T) {
	calls := 0
	err := WithRetry(fastRetryConfig(3), func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRecovers(t *testing.T) {
	calls := 0
	err := WithRetry(fastRetryConfig(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryExhaustsBudget(t *testing.T) {
	final := errors.New("still broken")
	calls := 0
	err := WithRetry(fastRetryConfig(2), func() error {
		calls++
		return final
	})
	// The budget is the initial attempt plus MaxRetries retries, and the
	// last error comes back unwrapped.
	assert.Equal(t, 3, calls)
	assert.Same(t, final, err)
}
