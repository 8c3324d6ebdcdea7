package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked    = errors.New("refresh token has been revoked")
	ErrEmailAlreadyExists     = errors.New("email already registered")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrGoogleEmailNotVerified = errors.New("google account email is not verified")
	ErrOAuthStateMismatch     = errors.New("invalid oauth state")
)
