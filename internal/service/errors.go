package service

import "errors"

var (
	ErrValidation = errors.New("missing or invalid required fields")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("username or email already exists")

	// Auth-related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
)
