package domain

import "errors"

// Error taxonomy shared by services and handlers. Repositories and services
// wrap storage failures into one of these so transport code can map them to
// HTTP statuses with errors.Is.
var (
	// ErrNotFound marks an absent principal or referenced entity.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate email, duplicate
	// client name for the same user).
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated marks missing, invalid, or expired credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidInput marks a malformed request body.
	ErrInvalidInput = errors.New("invalid input")
)
