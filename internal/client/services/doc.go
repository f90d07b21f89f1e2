// Package services contains the call-sites of the agroassist client: one
// request.Controller per backend operation, configured with its validation
// rules, payload builder, success predicate and messages.
//
// Services receive everything they need through Env; the logged-in user is
// taken from the injected session.Holder, never from global state.
package services
