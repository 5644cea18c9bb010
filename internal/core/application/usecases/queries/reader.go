package queries

import (
	"context"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
)

// reader runs read-model statements under the same per-attempt timeout and
// bounded retry as the command handlers. Driver failures come back as typed
// errors, so a lost database is errs.ErrBackendUnavailable; sql.ErrNoRows is
// returned unchanged.
type reader struct {
	db     *sqlx.DB
	policy retry.Policy
}

func newReader(db *sqlx.DB, policy retry.Policy) reader {
	return reader{db: db, policy: policy}
}

// getOne scans a single row into a fresh T on every attempt.
func getOne[T any](ctx context.Context, r reader, operation, query string, args ...any) (T, error) {
	var row T
	err := retry.Do(ctx, r.policy, func(ctx context.Context) error {
		var attempt T
		if err := r.db.GetContext(ctx, &attempt, r.db.Rebind(query), args...); err != nil {
			return pgerr.Translate(operation, "query", operation, err)
		}
		row = attempt
		return nil
	})
	return row, err
}

// selectAll scans every row into a fresh slice on every attempt, so a retried
// read never repeats rows of a failed one.
func selectAll[T any](ctx context.Context, r reader, operation, query string, args ...any) ([]T, error) {
	rows := make([]T, 0)
	err := retry.Do(ctx, r.policy, func(ctx context.Context) error {
		attempt := make([]T, 0)
		if err := r.db.SelectContext(ctx, &attempt, r.db.Rebind(query), args...); err != nil {
			return pgerr.Translate(operation, "query", operation, err)
		}
		rows = attempt
		return nil
	})
	return rows, err
}
