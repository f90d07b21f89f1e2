// Package envelope decodes backend responses.
//
// Every endpoint wraps its domain fields in the same top-level object:
//
//	{ "success": true, "message": "...", <domain fields> }
//
// Some endpoints omit "success" and signal failure with an "error" string or
// with an empty result collection instead. Decode returns both the envelope
// and the typed domain payload so callers can apply their own success rule.
package envelope

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/agroassist/internal/common"
)

var api = sonic.ConfigStd

// Envelope is the common wrapper shared by all responses.
type Envelope struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Succeeded reports whether the envelope carries an explicit success=true.
func (e Envelope) Succeeded() bool {
	return e.Success != nil && *e.Success
}

// Rejected reports whether the envelope carries an explicit success=false
// or a non-empty error field.
func (e Envelope) Rejected() bool {
	return (e.Success != nil && !*e.Success) || e.Error != ""
}

// Text returns the human-readable server message, preferring "message" over
// "error". It is empty when the server sent neither.
func (e Envelope) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// Decode parses body into an Envelope and a *R. Any body that is not a JSON
// object yields an error matching common.ErrDecode.
func Decode[R any](body []byte) (*R, Envelope, error) {
	var env Envelope

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, env, fmt.Errorf("%w: body is not a JSON object", common.ErrDecode)
	}

	if err := api.Unmarshal(trimmed, &env); err != nil {
		return nil, env, fmt.Errorf("%w: %w", common.ErrDecode, err)
	}

	payload := new(R)
	if err := api.Unmarshal(trimmed, payload); err != nil {
		return nil, env, fmt.Errorf("%w: %w", common.ErrDecode, err)
	}

	return payload, env, nil
}

// DecodeEnvelope parses only the envelope part of body. It is used for error
// responses whose payload shape is unknown.
func DecodeEnvelope(body []byte) (Envelope, bool) {
	var env Envelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env, false
	}
	if err := api.Unmarshal(trimmed, &env); err != nil {
		return env, false
	}
	return env, true
}

// Marshal encodes v as JSON for a request body.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}
