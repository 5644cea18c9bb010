package errs

import (
	"errors"
	"fmt"
)

// ErrBackendUnavailable is the sentinel for storage failures that are expected to be transient:
// lost connections, timeouts, serialization failures.
var ErrBackendUnavailable = errors.New("backend unavailable")

// BackendUnavailableError names the operation that could not reach the backend.
type BackendUnavailableError struct {
	Operation string
	Cause     error
}

// NewBackendUnavailableError wraps cause as a transient backend failure.
func NewBackendUnavailableError(operation string, cause error) *BackendUnavailableError {
	return &BackendUnavailableError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *BackendUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrBackendUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrBackendUnavailable, e.Operation)
}

func (e *BackendUnavailableError) Unwrap() error {
	return ErrBackendUnavailable
}

// IsTransient reports whether err is worth retrying from a fresh read.
func IsTransient(err error) bool {
	return errors.Is(err, ErrVersionIsInvalid) || errors.Is(err, ErrBackendUnavailable)
}
