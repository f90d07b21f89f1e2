package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrBadRequest  = errors.New("invalid request")
)
