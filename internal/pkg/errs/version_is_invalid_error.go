package errs

import (
	"errors"
	"fmt"
)

// ErrVersionIsInvalid is the sentinel for optimistic concurrency conflicts: the
// stored version of an aggregate no longer matches the version that was read.
// Operations failing with it can be retried from a fresh read.
var ErrVersionIsInvalid = errors.New("version is invalid")

// VersionIsInvalidError reports a stale aggregate version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a version conflict error with its cause.
//
// Example:
//
//	return errs.NewVersionIsInvalidError("rack", fmt.Errorf("rack %s was modified concurrently", id))
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// NewVersionIsInvalidErrorWithCause creates a version conflict error without a cause.
// The name is kept for compatibility with existing callers.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
	}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
