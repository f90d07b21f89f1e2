// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Request outcome kinds. Every failed request attempt matches exactly
	// one of these.
	ErrValidation      = errors.New("validation failed")
	ErrConnectivity    = errors.New("connectivity error")
	ErrServerRejection = errors.New("server rejected request")
	ErrDecode          = errors.New("unexpected response")

	// Session errors.
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("not logged in")
)
