// Package errs defines the error taxonomy shared across the application.
// Callers classify failures with errors.Is against these sentinels.
package errs

import "errors"

var (
	// ErrValidation marks malformed or missing input (blank fields, short
	// password, references to nonexistent catalog entries). No state change.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup for an entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate email or phone).
	ErrConflict = errors.New("conflict")

	// ErrTransaction marks a store failure mid-transaction. The atomic unit
	// is rolled back in full; the caller may retry.
	ErrTransaction = errors.New("transaction failed")
)

// IsRetryable reports whether the error is worth retrying as-is.
// Only transaction failures qualify; everything else needs changed input.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransaction)
}
