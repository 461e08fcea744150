// Package errs provides the standardized error types of the dispatch platform.
//
// The package includes one error type per failure class the application
// distinguishes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but malformed
//   - ObjectNotFoundError: an order or courier does not exist
//   - ConflictError: a state guard failed (wrong status, inactive courier)
//   - UnavailableError: the store or the stream could not be reached
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// Callers classify failures with errors.Is against the sentinels; the HTTP
// adapter maps them to status codes and the dispatch worker decides between
// acknowledging an entry and backing off.
package errs
