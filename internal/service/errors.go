package service

import "errors"

// Domain errors for auth and report flows. Handlers map these to HTTP
// statuses with errors.Is; anything unrecognized becomes a generic 500.
var (
	ErrInvalidInput       = errors.New("missing or malformed input")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong    = errors.New("password exceeds maximum length")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
)
