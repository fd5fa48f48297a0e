// Package apperr defines the error kinds shared by the service layer so the
// HTTP layer can branch on kind instead of catching broad failures.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input rejected before any mutation.
	ErrValidation = errors.New("invalid input")
	// ErrConflict marks a unique-constraint violation, e.g. duplicate email.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks an id that resolves to no row of the expected type.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a row that exists but belongs to another owner.
	ErrForbidden = errors.New("forbidden")
	// ErrUnprocessable marks content that passed validation but cannot be
	// decoded, e.g. a corrupt image payload.
	ErrUnprocessable = errors.New("unprocessable content")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never leaks which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Wrap attaches a message to one of the sentinel kinds above while keeping
// errors.Is working against the kind.
func Wrap(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}
