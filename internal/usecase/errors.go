package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("resource already exists")
	ErrFailedPrecondition    = errors.New("failed precondition")
	ErrPaymentRequired       = errors.New("payment required")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
