package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoProvider    = errors.New("no provider configured")
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid configuration")
)
