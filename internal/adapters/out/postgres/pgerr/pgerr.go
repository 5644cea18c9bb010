// Package pgerr translates driver and ORM failures into the errs vocabulary
// so that command handlers can classify them with errors.Is.
package pgerr

import (
	"context"
	"errors"
	"net"

	"warehouse/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the repositories react to.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	QueryCanceled        = "57014"
	AdminShutdown        = "57P01"
	CannotConnectNow     = "57P03"
)

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Translate maps err to a typed error. Errors it does not recognise are
// returned unchanged.
//
//	gorm.ErrRecordNotFound                     -> errs.ObjectNotFoundError(param, id)
//	unique violation                           -> errs.ObjectAlreadyExistsError(param, id)
//	serialization failure, deadlock            -> errs.VersionIsInvalidError(param)
//	connection loss, shutdown, deadline        -> errs.BackendUnavailableError(operation)
func Translate(operation, param string, id any, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(param, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation:
			return errs.NewObjectAlreadyExistsErrorWithCause(param, id, err)
		case SerializationFailure, DeadlockDetected:
			return errs.NewVersionIsInvalidError(param, err)
		case QueryCanceled, AdminShutdown, CannotConnectNow:
			return errs.NewBackendUnavailableError(operation, err)
		}
		return err
	}

	if isConnectionError(err) {
		return errs.NewBackendUnavailableError(operation, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, gorm.ErrInvalidDB) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
