package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// actor does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails validation (missing name,
// name too long, malformed vote payload).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when a gated action is attempted without
// credentials. Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("authentication credentials were not provided")

// ErrForbidden is returned when the caller is authenticated but lacks the
// role the action requires. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("permission denied")
