package errors

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxRetries     int           // Maximum number of retries (0 = no retries)
	InitialDelay   time.Duration // Initial delay before first retry
	MaxDelay       time.Duration // Maximum delay between retries
	Multiplier     float64       // Delay multiplier for exponential backoff
	Jitter         float64       // Random jitter factor (0-1)
	RetryableTypes []ErrorType   // Error types that should be retried
}

// DefaultRetryConfig returns sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     8 * time.Second,
		Multiplier:   2.0,
		Jitter:       0.2,
		RetryableTypes: []ErrorType{
			Network,
			Timeout,
			ServerError,
		},
	}
}

// Retrier implements retry logic with exponential backoff.
type Retrier struct {
	config RetryConfig
	rng    *rand.Rand
}

// NewRetrier creates a new retrier.
func NewRetrier(config RetryConfig) *Retrier {
	return &Retrier{
		config: config,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc func(ctx context.Context) error

// RetryResult holds the result of a retry operation.
type RetryResult struct {
	Attempts  int           // Number of attempts made
	LastError error         // The last error encountered
	Duration  time.Duration // Total time spent retrying
	Success   bool          // Whether the operation succeeded
}

// Do executes the function with retries. Non-retryable errors and context
// cancellation stop the loop immediately.
func (r *Retrier) Do(ctx context.Context, operation string, url string, fn RetryFunc) *RetryResult {
	result := &RetryResult{}
	start := time.Now()

	var lastErr error
	delay := r.config.InitialDelay

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		result.Attempts++

		err := fn(ctx)
		if err == nil {
			result.Success = true
			result.Duration = time.Since(start)
			return result
		}

		lastErr = err

		if ctx.Err() != nil {
			result.LastError = NewCancelledError(url, operation)
			result.Duration = time.Since(start)
			return result
		}

		if attempt >= r.config.MaxRetries || !r.shouldRetry(err) {
			break
		}

		select {
		case <-ctx.Done():
			result.LastError = NewCancelledError(url, operation)
			result.Duration = time.Since(start)
			return result
		case <-time.After(r.withJitter(delay)):
		}

		delay = r.nextDelay(delay)
	}

	result.LastError = lastErr
	result.Duration = time.Since(start)
	return result
}

// shouldRetry checks if an error should be retried.
func (r *Retrier) shouldRetry(err error) bool {
	errType := GetErrorType(err)
	for _, t := range r.config.RetryableTypes {
		if errType == t {
			return true
		}
	}
	return false
}

// withJitter spreads the delay by the configured random jitter.
func (r *Retrier) withJitter(baseDelay time.Duration) time.Duration {
	if r.config.Jitter <= 0 {
		return baseDelay
	}

	jitter := r.config.Jitter * float64(baseDelay)
	randomJitter := (r.rng.Float64() * 2 * jitter) - jitter

	return time.Duration(float64(baseDelay) + randomJitter)
}

// nextDelay calculates the next delay using exponential backoff.
func (r *Retrier) nextDelay(currentDelay time.Duration) time.Duration {
	nextDelay := time.Duration(float64(currentDelay) * r.config.Multiplier)
	if nextDelay > r.config.MaxDelay {
		return r.config.MaxDelay
	}
	return nextDelay
}
