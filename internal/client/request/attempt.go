package request

import (
	"time"

	"github.com/dmitrijs2005/agroassist/internal/client/client"
	"github.com/dmitrijs2005/agroassist/internal/client/envelope"
)

// Attempt is one execution of the submit cycle.
//
// Response is non-nil only when Status is StatusSucceeded; Err is non-nil
// only when Status is StatusFailed.
type Attempt[R any] struct {
	ID        uint64
	RequestID string
	Status    Status

	// Payload is the request that was sent. It is the zero value when
	// validation failed or the builder returned an error.
	Payload  client.Request
	Response *R
	Envelope envelope.Envelope
	Err      *Error

	// Superseded is set when a newer attempt, or a Reset, started before
	// this one settled. Superseded attempts never touch shared state.
	Superseded bool

	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the attempt settled successfully.
func (a *Attempt[R]) Succeeded() bool {
	return a != nil && a.Status == StatusSucceeded
}

// Message returns the error text of a failed attempt, or "".
func (a *Attempt[R]) Message() string {
	if a == nil || a.Err == nil {
		return ""
	}
	return a.Err.Message
}

// FieldErrors returns the per-field validation messages, if any.
func (a *Attempt[R]) FieldErrors() map[string]string {
	if a == nil || a.Err == nil {
		return nil
	}
	return a.Err.Fields
}

func (a *Attempt[R]) fail(err *Error) {
	a.Response = nil
	a.Err = err
	a.Status = StatusFailed
}

func (a *Attempt[R]) succeed(resp *R) {
	a.Response = resp
	a.Err = nil
	a.Status = StatusSucceeded
}

// Outcome is the type-independent summary of a settled attempt.
type Outcome struct {
	ID         uint64
	Status     Status
	Err        *Error
	Superseded bool
}

// Succeeded reports whether the attempt succeeded and was not superseded.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded && !o.Superseded
}

// Outcome summarizes a.
func (a *Attempt[R]) Outcome() Outcome {
	return Outcome{ID: a.ID, Status: a.Status, Err: a.Err, Superseded: a.Superseded}
}
