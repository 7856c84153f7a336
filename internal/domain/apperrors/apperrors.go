// Package apperrors defines the error taxonomy shared by the section store
// and its callers. Handlers map these to HTTP statuses at the boundary.
package apperrors

import "errors"

var (
	// ErrNotFound is returned when a page or section does not exist or does
	// not belong to the caller. Ownership failures are deliberately
	// indistinguishable from missing rows.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for logically malformed requests, such
	// as an out-of-range position or a reorder set that does not match the
	// page's sections.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidFormat is returned when an input fails syntactic validation,
	// such as a malformed anchor id.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrConflict is returned when a uniqueness constraint would be violated,
	// such as a duplicate anchor id within a page.
	ErrConflict = errors.New("conflict")

	// ErrStorage wraps transient backend failures. Callers may retry the
	// original request; validation errors are never retried.
	ErrStorage = errors.New("storage error")
)

// IsRetryable reports whether the error class may succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorage)
}
