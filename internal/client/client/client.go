package client

import (
	"context"
	"net/http"
	"time"
)

// Base selects which backend a Request is addressed to.
type Base int

const (
	// BaseAuth is the account / OTP backend.
	BaseAuth Base = iota
	// BaseAI is the crop, diagnosis and scheme backend.
	BaseAI
)

func (b Base) String() string {
	switch b {
	case BaseAuth:
		return "auth"
	case BaseAI:
		return "ai"
	default:
		return "unknown"
	}
}

// Field is a plain multipart form field.
type Field struct {
	Name  string
	Value string
}

// FilePart is a binary multipart form field.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Multipart is a multipart/form-data body.
type Multipart struct {
	Fields []Field
	Files  []FilePart
}

// Request describes one outbound call. At most one of JSON and Form is set;
// when both are nil the request has no body.
type Request struct {
	Method  string
	Base    Base
	Path    string
	JSON    any
	Form    *Multipart
	Headers map[string]string
	// Timeout caps this request only. Zero keeps the client default.
	Timeout time.Duration
	// Authenticated requests carry the session's bearer token.
	Authenticated bool
}

// Response is what the transport resolved with. Non-2xx statuses are not
// errors at this level; callers interpret StatusCode and Body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether StatusCode is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client is the transport contract consumed by the request controller.
//
// Do resolves with a Response whenever the server answered, and rejects with
// an error matching ErrUnavailable when no answer could be obtained
// (connection refused, DNS failure, timeout).
type Client interface {
	Do(ctx context.Context, req Request) (*Response, error)
	Ping(ctx context.Context) error
}

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	AccessToken() string
}
