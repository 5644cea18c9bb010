package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) retry.Policy {
	return retry.Policy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestDo_SucceedsFirstTime(t *testing.T) {
	calls := 0

	err := retry.Do(t.Context(), fastPolicy(3), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesConflictsUntilSuccess(t *testing.T) {
	calls := 0

	err := retry.Do(t.Context(), fastPolicy(5), func(context.Context) error {
		calls++
		if calls < 3 {
			return errs.NewVersionIsInvalidErrorWithCause("rack")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustedConflictIsSurfaced(t *testing.T) {
	calls := 0

	err := retry.Do(t.Context(), fastPolicy(4), func(context.Context) error {
		calls++
		return errs.NewVersionIsInvalidErrorWithCause("rack")
	})

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, 4, calls)
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0

	err := retry.Do(t.Context(), fastPolicy(5), func(context.Context) error {
		calls++
		return errs.NewNoCapacityError("", 0, 0)
	})

	require.ErrorIs(t, err, errs.ErrNoCapacity)
	assert.Equal(t, 1, calls)
}

func TestDo_BackendFailuresAreRetried(t *testing.T) {
	calls := 0
	backendErr := errs.NewBackendUnavailableError("get rack", errors.New("connection refused"))

	err := retry.Do(t.Context(), fastPolicy(2), func(context.Context) error {
		calls++
		return backendErr
	})

	require.ErrorIs(t, err, errs.ErrBackendUnavailable)
	assert.Equal(t, 2, calls)
}

func TestDo_AttemptTimeoutBecomesBackendUnavailable(t *testing.T) {
	policy := fastPolicy(1)
	policy.AttemptTimeout = 5 * time.Millisecond

	err := retry.Do(t.Context(), policy, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	require.ErrorIs(t, err, errs.ErrBackendUnavailable)
}

func TestOnce(t *testing.T) {
	calls := 0

	err := retry.Do(t.Context(), retry.Once(), func(context.Context) error {
		calls++
		return errs.NewVersionIsInvalidErrorWithCause("rack")
	})

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, 1, calls)
}
