package service

import "fmt"

// Phase names one step of a two-step operation spanning the document store
// and the identity provider.
type Phase string

const (
	PhaseAccount Phase = "account"
	PhaseProfile Phase = "profile"
)

// PhaseError reports which phase of a non-atomic two-step operation failed.
// There is no compensating rollback: when the second phase fails, the first
// has already been applied and stays applied.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
