package domain

import "errors"

// Credential and token errors. ErrInvalidToken and ErrExpiredToken stay
// distinct for diagnostics but collapse to the same 401 at the API boundary.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrUnauthenticated    = errors.New("no credentials provided")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
)
