package domain

import "errors"

// Error kinds shared by the storage, service and transport layers.
// Callers wrap them with context and classify with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)
