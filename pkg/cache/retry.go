package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend failures caused by the network.
var ErrNetwork = errors.New("cache: network error")

// retryable marks an error worth another attempt.
type retryable struct{ err error }

func (r retryable) Error() string { return r.err.Error() }
func (r retryable) Unwrap() error { return r.err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err, or an error it wraps, was marked by
// [Retryable].
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// Backoff retries transient failures, doubling the wait after each one.
type Backoff struct {
	Attempts int
	Initial  time.Duration
}

// DefaultBackoff is used by backends configured without a policy.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 100 * time.Millisecond}

// Do calls fn until it succeeds, fails with an error not marked
// [Retryable], runs out of attempts, or ctx ends.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	wait := b.Initial
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
