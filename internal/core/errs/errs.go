// Package errs holds the failure kinds shared by the services and adapters.
// Callers classify with errors.Is; adapters wrap these with context.
package errs

import "errors"

var (
	// ErrUnauthorized means no authenticated user was supplied.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the user is authenticated but may not act on the target.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced post, comment or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means the input is empty or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrConstraint means the store rejected a write on a uniqueness or foreign-key rule.
	ErrConstraint = errors.New("constraint violation")
)
