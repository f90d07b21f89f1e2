// Package request implements the submit cycle shared by every screen that
// calls a backend: validate the form, build one outbound call, decode the
// response envelope, and settle the attempt as Succeeded or Failed.
//
// A Controller is parameterized by a Spec (rules, payload builder, success
// predicate, messages) and by the decoded response type R. Each Submit
// creates a new Attempt with a monotonically increasing id; only the latest
// attempt is allowed to update the controller's shared state, raise
// notifications, run success hooks and clear the loading indicator. Older
// attempts still settle and are returned to their caller, marked as
// superseded.
//
// Every failure is classified as one of four kinds (validation,
// connectivity, rejection, decode) and surfaced as *Error, which matches the
// corresponding sentinel from the common package via errors.Is.
package request
