package database

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
)

const (
	DefaultMaxAttempts = 3
	defaultBaseDelay   = 20 * time.Millisecond
	maxDelay           = time.Second
)

// RetryPolicy bounds RetrySerializable.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// RetrySerializable calls fn until it succeeds, fails with anything other
// than SERIALIZATION_FAILURE, or the attempts run out. Each retry waits a
// random delay in [0, base*2^attempt), capped at one second.
func RetrySerializable[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	base := policy.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}

	var (
		result T
		err    error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		result, err = fn(ctx)
		if err == nil || !isRetryable(err) {
			return result, err
		}
		if attempt == attempts-1 {
			break
		}
		if sleepErr := sleep(ctx, fullJitter(base, attempt)); sleepErr != nil {
			return result, err
		}
	}
	return result, err
}

func isRetryable(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Retryable()
}

func fullJitter(base time.Duration, attempt int) time.Duration {
	delay := base
	for i := 0; i < attempt && delay < maxDelay; i++ {
		delay *= 2
	}
	if delay > maxDelay {
		delay = maxDelay
	}
	return time.Duration(rand.Int63n(int64(delay)))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
