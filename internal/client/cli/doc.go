// Package cli provides the interactive agroassist command-line client.
//
// It wires configuration, the local preference store, the HTTP transport and
// the services, then runs a REPL next to a background connectivity watcher.
// Each command plays the role of one screen: it collects a form from the
// terminal, submits it through a service and prints the outcome.
//
// Commands:
//   - login / signup / logout
//   - suggest, calendar: crop suggestions and the crop calendar
//   - diagnose: plant disease diagnosis from a photo
//   - scheme: government scheme chatbot
//   - password: OTP-confirmed password change
//   - settings, profile, lang
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
