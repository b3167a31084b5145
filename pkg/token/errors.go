package token

import "errors"

var (
	ErrInvalidFormat    = errors.New("invalid token format")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpired          = errors.New("token expired")

	ErrMissingSecret  = errors.New("token: signing secret is not configured")
	ErrSecretTooShort = errors.New("token: signing secret is too short")
	ErrInvalidTTL     = errors.New("token: ttl must be positive")
	ErrMissingEmail   = errors.New("token: email claim is required")
)
