package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNoMatch               = errors.New("no matching franchise")
	ErrEmptyRoster           = errors.New("no exclusive active players")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
