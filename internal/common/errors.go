// Package common holds the error kinds shared by the stores, the token codec
// and the HTTP layer. Concrete errors wrap one of these kinds so handlers can
// map them to status codes with errors.Is.
package common

import "errors"

var (
	// ErrNotFound: the user or repository does not exist or is not visible.
	ErrNotFound = errors.New("not found")

	// ErrConflict: the operation clashes with existing state (duplicate email).
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized: bad credentials or an unverifiable bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidOperation: a valid token without an identity claim.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrValidation: malformed request payload.
	ErrValidation = errors.New("validation error")
)
