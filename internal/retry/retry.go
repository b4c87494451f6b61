package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config defines a bounded retry with a fixed delay between attempts
type Config struct {
	Attempts int
	Delay    time.Duration
}

// DefaultConfig returns 3 attempts one second apart
func DefaultConfig() Config {
	return Config{
		Attempts: 3,
		Delay:    time.Second,
	}
}

func (c Config) attempts() int {
	if c.Attempts < 1 {
		return 1
	}
	return c.Attempts
}

// ExhaustedError is returned once every attempt has failed. It unwraps to
// the last failure.
type ExhaustedError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not worth retrying. Do returns it unwrapped
// without further attempts.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs fn until it succeeds, returns a permanent error, or the attempts
// run out. Attempts are separated by cfg.Delay. Cancelling ctx stops the
// wait between attempts.
func Do(ctx context.Context, cfg Config, op string, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, op, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for operations that produce a value
func DoWithResult[T any](ctx context.Context, cfg Config, op string, fn func() (T, error)) (T, error) {
	limit := cfg.attempts()
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Delay), uint64(limit-1)),
		ctx,
	)

	var (
		result    T
		tries     int
		lastErr   error
		permanent bool
	)
	err := backoff.Retry(func() error {
		tries++
		r, err := fn()
		if err != nil {
			var perm *backoff.PermanentError
			permanent = errors.As(err, &perm)
			lastErr = err
			return err
		}
		result = r
		return nil
	}, policy)
	if err == nil {
		return result, nil
	}

	var zero T
	if permanent {
		return zero, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil && tries < limit {
		return zero, fmt.Errorf("%s: %w", op, ctxErr)
	}
	return zero, &ExhaustedError{Op: op, Attempts: tries, Err: lastErr}
}
