package domain

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("resource conflict")
	ErrInternal        = errors.New("internal error")
)

// Error pairs one of the sentinel kinds above with a client-facing message.
// Handlers unwrap the kind to pick a status code and surface the message as-is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// E builds a kinded error carrying a client-facing message.
func E(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Message returns the client-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var derr *Error
	if errors.As(err, &derr) && derr.Message != "" {
		return derr.Message
	}
	return fallback
}
