// Package errs provides standardized error types for the courierhub application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For coordinates and other bounded values
//   - ObjectNotFoundError: For when an order cannot be found
//   - AuthRequiredError: For operations attempted on an unbound connection
//   - InvalidTransitionError: For status changes refused by the order state machine
//   - StoreUnavailableError: For failed or timed out Order Store calls
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf folds any error chain into one of the kinds reported to real-time
// clients: AuthRequired, ValidationError, InvalidTransition, NotFound and
// StoreUnavailable.
package errs
