package identity

import (
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
)

// ErrorKind is the closed set of provider error categories the service
// layer switches over. Anything the predicates below do not recognize is
// ErrorUnknown and surfaces as an internal error.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorEmailAlreadyExists
	ErrorInvalidArgument
	ErrorAccountNotFound
	ErrorUnauthenticated
)

// Classify maps a Firebase SDK error to an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorUnknown
	case auth.IsEmailAlreadyExists(err):
		return ErrorEmailAlreadyExists
	case auth.IsUserNotFound(err):
		return ErrorAccountNotFound
	case errorutils.IsInvalidArgument(err):
		return ErrorInvalidArgument
	case errorutils.IsUnauthenticated(err):
		return ErrorUnauthenticated
	default:
		return ErrorUnknown
	}
}
