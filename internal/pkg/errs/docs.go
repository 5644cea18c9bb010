// Package errs provides standardized error types for the warehouse application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - RangeIsInvalidError: For when a start/end pair does not describe a range
//   - ObjectNotFoundError: For when an object cannot be found
//   - ObjectAlreadyExistsError: For when an identifier is already taken
//   - CapacityError: For rack capacity and occupancy violations
//   - StateConflictError: For repeated lifecycle operations (already released, already invoiced)
//   - VersionIsInvalidError: For optimistic concurrency conflicts
//   - BackendUnavailableError: For storage failures that may succeed on retry
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, so an error
// can be wrapped any number of times on its way to the transport layer.
package errs
