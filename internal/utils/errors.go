package utils

import "errors"

// Sentinel errors shared by the service and store layers. Handlers map them
// to HTTP statuses at the boundary; everything else becomes a generic 500.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
)
