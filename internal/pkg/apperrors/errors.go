package apperrors

import "errors"

var (
	ErrNotFound   = errors.New("the requested resource was not found")
	ErrConflict   = errors.New("the operation conflicts with the current state of the data")
	ErrIntegrity  = errors.New("the stored data violates a structural invariant")
	ErrStorage    = errors.New("the storage backend could not complete the operation")
	ErrValidation = errors.New("the request could not be processed due to invalid input")
)
