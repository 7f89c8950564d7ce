package domain

import "errors"

// Sentinel errors for the service layer - match with errors.Is()
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrGeneration          = errors.New("generation failed")
	ErrConfig              = errors.New("configuration error")
)
