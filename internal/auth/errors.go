package auth

import "errors"

var (
	// Sign-up / sign-in errors
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrSignUpDisabled     = errors.New("sign-up is disabled")

	// Store errors
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
)
