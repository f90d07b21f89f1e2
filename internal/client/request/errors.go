package request

// Error is the failure carried by a Failed attempt.
//
// Message is the user-facing text. Fields holds per-field messages for
// validation failures. StatusCode is set when the server answered.
type Error struct {
	Kind       Kind
	Message    string
	Fields     map[string]string
	StatusCode int
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}
