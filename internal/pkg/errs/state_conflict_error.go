package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyReleased means the shipment has already left the warehouse.
	ErrAlreadyReleased = errors.New("already released")

	// ErrAlreadyInvoiced means an invoice was already issued for the shipment.
	ErrAlreadyInvoiced = errors.New("already invoiced")
)

// StateConflictError reports an operation that was already applied to an object.
// These are informational: the object is left untouched.
type StateConflictError struct {
	ParamName string
	ID        any
	Reason    error
}

// NewAlreadyReleasedError reports a repeated release of shipment id.
func NewAlreadyReleasedError(paramName string, id any) *StateConflictError {
	return &StateConflictError{ParamName: paramName, ID: id, Reason: ErrAlreadyReleased}
}

// NewAlreadyInvoicedError reports a repeated invoice request for shipment id.
func NewAlreadyInvoicedError(paramName string, id any) *StateConflictError {
	return &StateConflictError{ParamName: paramName, ID: id, Reason: ErrAlreadyInvoiced}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Reason, e.ParamName, sanitize(e.ID))
}

func (e *StateConflictError) Unwrap() error {
	return e.Reason
}
