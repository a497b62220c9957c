package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation means a required field is blank or a consent box is unchecked
	ErrValidation = errors.New("missing required field or consent")
	// ErrAlreadyRegistered means a signup with the same email exists
	ErrAlreadyRegistered = errors.New("email already registered")
	// ErrTransient covers store and mail failures; the user may retry
	ErrTransient = errors.New("transient failure")
	// ErrSubmissionInFlight means a signup for the same email is still running
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

// TransientError records which step of the submission failed.
// errors.Is matches both ErrTransient and the underlying cause.
type TransientError struct {
	Step string
	Err  error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *TransientError) Unwrap() []error {
	return []error{ErrTransient, e.Err}
}

func transient(step string, err error) error {
	return &TransientError{Step: step, Err: err}
}
