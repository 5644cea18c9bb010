// Package retry runs storage operations with bounded exponential backoff.
//
// Only transient failures are retried: optimistic concurrency conflicts
// (errs.ErrVersionIsInvalid) and backend outages (errs.ErrBackendUnavailable).
// Everything else stops the loop immediately and is returned unchanged.
package retry

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retry loop.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first one.
	MaxAttempts int
	// InitialInterval is the wait before the second attempt.
	InitialInterval time.Duration
	// MaxInterval caps the wait between attempts.
	MaxInterval time.Duration
	// AttemptTimeout bounds every single attempt; zero disables the per-attempt deadline.
	AttemptTimeout time.Duration
}

// DefaultPolicy is used by command handlers unless configuration overrides it.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     5,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
		AttemptTimeout:  5 * time.Second,
	}
}

// Once performs a single attempt. Handy in tests that assert on the first failure.
func Once() Policy {
	return Policy{MaxAttempts: 1}
}

// Do calls op until it succeeds, fails permanently, or the policy is exhausted.
//
// When attempts are exhausted on a concurrency conflict the last conflict is
// returned, so callers still see errs.ErrVersionIsInvalid. An attempt that ran
// into its own deadline is reported as errs.ErrBackendUnavailable.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	if policy.InitialInterval > 0 {
		exp.InitialInterval = policy.InitialInterval
	}
	if policy.MaxInterval > 0 {
		exp.MaxInterval = policy.MaxInterval
	}
	exp.MaxElapsedTime = 0

	var b backoff.BackOff = backoff.WithMaxRetries(exp, uint64(attempts-1))
	b = backoff.WithContext(b, ctx)

	var lastErr error
	err := backoff.Retry(func() error {
		lastErr = attempt(ctx, policy.AttemptTimeout, op)
		if lastErr == nil {
			return nil
		}
		if errs.IsTransient(lastErr) {
			return lastErr
		}
		return backoff.Permanent(lastErr)
	}, b)
	if err == nil {
		return nil
	}
	return lastErr
}

func attempt(ctx context.Context, timeout time.Duration, op func(ctx context.Context) error) error {
	if timeout <= 0 {
		return op(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := op(attemptCtx)
	if err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) &&
		!errs.IsTransient(err) {
		return errs.NewBackendUnavailableError("attempt timed out", err)
	}
	return err
}
