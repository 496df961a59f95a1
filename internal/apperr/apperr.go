package apperr

import "errors"

// Sentinel errors for the service layer. Handlers translate these to HTTP
// status codes; anything not wrapping one of them is treated as a storage
// failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrStorage         = errors.New("storage failure")
)
