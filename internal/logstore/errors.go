package logstore

// Error is the single error kind surfaced by the log store. Callers
// distinguish failure cases by message content, not by structured codes.
type Error struct {
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the underlying I/O error, if any.
func (e *Error) Unwrap() error { return e.cause }

// newError builds a validation error with no underlying cause.
func newError(msg string) *Error {
	return &Error{msg: msg}
}

// wrapError re-wraps a storage failure, propagating its message verbatim.
func wrapError(cause error) *Error {
	return &Error{msg: cause.Error(), cause: cause}
}
