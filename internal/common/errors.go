// Package common defines sentinel errors and small helpers shared by the
// notekeeper client layers. Callers should use errors.Is to match errors.
package common

import "errors"

var (
	// ErrUnauthorized is reported when the API rejects the bearer token (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken is returned when a token cannot be parsed as a JWT.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("not found")
)
