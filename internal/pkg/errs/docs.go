// Package errs provides standardized error types for the water-delivery service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ConflictError: For when a state change is illegal given current stored state
//   - AuthorizationError: For when the actor does not own the targeted resource
//   - Other specialized error types for specific validation failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinels give callers a stable classification surface: the HTTP adapter
// maps them to status codes, and command handlers distinguish expected rejections
// (conflict, not found) from infrastructure failures with errors.Is.
package errs
