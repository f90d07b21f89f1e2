package request

import (
	"context"
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/envelope"
	"github.com/dmitrijs2005/agroassist/internal/client/models"
	"github.com/dmitrijs2005/agroassist/internal/client/validation"
)

const (
	DefaultNoResult     = "Request failed"
	DefaultConnectivity = "Unable to reach the server. Please check your connection and try again."
	DefaultUnexpected   = "Something went wrong"
)

// Input is what a payload builder receives.
type Input struct {
	Form models.FormState
	// Lang is the preferred language code. It is set only for localized specs.
	Lang string
}

// Messages are the user-facing texts of one operation.
type Messages struct {
	// Title heads every notification. Defaults to Spec.Name.
	Title string
	// Success is the success notification body, used when the server sent
	// no message of its own. When both are empty no notification is raised.
	Success string
	// NoResult is used for rejections that carry no server message.
	NoResult string
	// Connectivity is used for transport failures.
	Connectivity string
	// Unexpected prefixes the description of encoding/decoding failures.
	Unexpected string
}

func (m Messages) withDefaults(name string) Messages {
	if m.Title == "" {
		m.Title = name
	}
	if m.NoResult == "" {
		m.NoResult = DefaultNoResult
	}
	if m.Connectivity == "" {
		m.Connectivity = DefaultConnectivity
	}
	if m.Unexpected == "" {
		m.Unexpected = DefaultUnexpected
	}
	return m
}

// Spec parameterizes a Controller for one backend operation.
type Spec[R any] struct {
	// Name identifies the operation in logs.
	Name string

	// Rules are checked before anything else. A failing rule prevents the call.
	Rules []validation.Rule

	// Build turns the validated form into the outbound request.
	Build func(in Input) (client.Request, error)

	// Accept decides whether a decoded 2xx response counts as success.
	// Defaults to DefaultAccept.
	Accept func(resp *R, env envelope.Envelope) bool

	// Reject builds the message for a rejection. Defaults to the envelope's
	// message or error field, falling back to Messages.NoResult.
	Reject func(statusCode int, env envelope.Envelope) string

	// OnSuccess runs after the latest attempt succeeded and its state was
	// committed, e.g. to store a session or navigate.
	OnSuccess func(ctx context.Context, a *Attempt[R])

	Messages Messages

	// Localized specs read the preferred language before building.
	Localized bool

	// Timeout caps the call. Zero keeps the transport default.
	Timeout time.Duration
}

// DefaultAccept succeeds unless the envelope explicitly signals failure.
func DefaultAccept[R any](_ *R, env envelope.Envelope) bool {
	return !env.Rejected()
}

// RequireSuccessFlag succeeds only on an explicit success=true.
func RequireSuccessFlag[R any](_ *R, env envelope.Envelope) bool {
	return env.Succeeded()
}
