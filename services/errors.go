package services

import "errors"

var (
	// ErrValidation marks client input the service refuses to process.
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("invalid mpin")
)
