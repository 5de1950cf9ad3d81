package domain

import "errors"

var (
	ErrEmptyName    = errors.New("name is required")
	ErrNameTooLong  = errors.New("name exceeds 255 characters")
	ErrInvalidEmail = errors.New("a valid email is required")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	ErrEmailTaken   = errors.New("email is already registered")

	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// IsValidationError reports whether err is a malformed registration.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrNameTooLong),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrPasswordTooLong):
		return true
	}
	return false
}
