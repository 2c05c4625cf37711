package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrRegistrationExists = errors.New("registration number (tax code) already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrQuotaExceeded      = errors.New("daily search limit reached")
	ErrUpstream           = errors.New("upstream calculator unavailable")
	ErrUnsupportedFile    = errors.New("unsupported file type")
)
