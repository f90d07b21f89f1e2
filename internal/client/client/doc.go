// Package client contains the transport used to talk to the agroassist
// REST backends.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) taking a
//     Request (method, backend, path, JSON or multipart body, timeout) and
//     resolving with a Response (status, headers, body).
//  2. A concrete HTTP implementation (see HTTPClient) that resolves paths
//     against the configured base URLs, injects the session's bearer token
//     into authenticated requests and maps transport failures to sentinel
//     errors.
//
// # Error Handling
//
// Failures to obtain any response (refused connection, DNS, timeout,
// cancelled context) match ErrUnavailable with errors.Is. Requests that
// cannot be built match ErrBadRequest. HTTP error statuses are returned as
// ordinary Responses.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Do honours ctx cancellation and the
// per-request Timeout.
package client
