// Package errs provides standardized error types for the shopsecure application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers every error category the core surfaces to callers:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed or missing input
//   - ObjectNotFoundError: unknown order, user or other object
//   - StateConflictError: operation not valid for the current lifecycle state
//   - RateLimitedError: attempts or requests exhausted
//   - ExpiredError: a time-bound credential is past its window
//   - AccessDeniedError: caller is not allowed to perform the operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is can classify it
//
// Domain packages declare their own sentinel instances built from these types,
// which lets callers match either the specific failure or its category.
package errs
