package assessment

import (
	"fmt"
	"strings"
)

// ErrNotFound indicates an unknown attempt, question or instrument.
type ErrNotFound struct {
	Kind string // attempt, question, instrument
	ID   string
	Err  error
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *ErrNotFound) Unwrap() error { return e.Err }

// ErrAccessDenied indicates the caller does not own the attempt.
type ErrAccessDenied struct {
	AttemptID string
}

func (e *ErrAccessDenied) Error() string {
	return fmt.Sprintf("access to attempt %q denied", e.AttemptID)
}

// ErrInvalidResponse indicates a raw value that is not one of the
// question's options.
type ErrInvalidResponse struct {
	QuestionID string
	Raw        string
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid response %q for question %q", e.Raw, e.QuestionID)
}

// ErrIncompleteProfile indicates a composite computation requested before
// every required base instrument was completed.
type ErrIncompleteProfile struct {
	// Missing lists the slugs of the base instruments still to complete.
	Missing []string
}

func (e *ErrIncompleteProfile) Error() string {
	return fmt.Sprintf("complete these assessments first: %s", strings.Join(e.Missing, ", "))
}

// ErrAttemptCompleted indicates a mutation of a completed attempt.
type ErrAttemptCompleted struct {
	AttemptID string
}

func (e *ErrAttemptCompleted) Error() string {
	return fmt.Sprintf("attempt %q is already completed", e.AttemptID)
}
