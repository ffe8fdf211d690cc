// Package common defines shared sentinel errors used across the service and
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation error")

	// Auth errors. ErrInvalidCredentials covers both an unknown login and a
	// wrong password so that failed logins are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// Token errors. Every decode failure (bad signature, malformed structure,
	// unparsable claims) collapses into ErrInvalidToken.
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("token is missing")

	// Configuration errors. A missing signing secret is a server-side fault,
	// never a client error.
	ErrMissingSecret = errors.New("secret key missing")
)
