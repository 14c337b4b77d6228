package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrInvalidReference is returned when an identifier supplied by the caller
// is not a well-formed UUID. Handlers should map this to HTTP 400.
var ErrInvalidReference = errors.New("invalid reference")

// ErrForbidden is returned when the acting user lacks the role an operation
// requires. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as a duplicate username or email. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidCredentials is returned by login when the email is unknown or the
// password does not match. Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")
