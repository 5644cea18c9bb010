package errs

import (
	"errors"
	"fmt"
)

// ErrRangeIsInvalid is the sentinel for start/end pairs that do not describe a
// non-empty range of positive numbers. It is a validation failure, so the error
// also matches ErrValueIsInvalid.
var ErrRangeIsInvalid = errors.New("range is invalid")

// RangeIsInvalidError carries the rejected bounds.
type RangeIsInvalidError struct {
	ParamName string
	Start     int
	End       int
	Cause     error
}

// NewRangeIsInvalidError creates an error for a rejected range.
func NewRangeIsInvalidError(paramName string, start, end int) *RangeIsInvalidError {
	return &RangeIsInvalidError{
		ParamName: paramName,
		Start:     start,
		End:       end,
	}
}

// NewRangeIsInvalidErrorWithCause creates an error for a rejected range with an explanation.
func NewRangeIsInvalidErrorWithCause(paramName string, start, end int, cause error) *RangeIsInvalidError {
	return &RangeIsInvalidError{
		ParamName: paramName,
		Start:     start,
		End:       end,
		Cause:     cause,
	}
}

func (e *RangeIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s from %d to %d", ErrRangeIsInvalid, e.ParamName, e.Start, e.End)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *RangeIsInvalidError) Unwrap() []error {
	return []error{ErrRangeIsInvalid, ErrValueIsInvalid}
}
