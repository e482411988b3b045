package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrNotFound              = errors.New("resource not found")
	ErrConfiguration         = errors.New("unresolved configuration")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
