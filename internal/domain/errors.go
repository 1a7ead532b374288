package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrInvalidInput = errors.New("required portfolio fields are missing or invalid")
	ErrInvalidColor = errors.New("color must be a hex value like #4f46e5")
)
