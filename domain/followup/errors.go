package followup

import (
	"errors"

	"backoffice/domain/shared"
)

var ErrFollowUpNotFound = errors.New("follow-up not found")

func NewFollowUpNotFoundError(id string) error {
	return &followUpError{
		sentinel: ErrFollowUpNotFound,
		message:  "follow-up not found: " + id,
		stack:    shared.CaptureStack(3),
	}
}

type followUpError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *followUpError) Error() string   { return e.message }
func (e *followUpError) Unwrap() []error { return []error{e.sentinel, shared.ErrNotFound} }
func (e *followUpError) Stack() []string { return shared.FormatStack(e.stack) }
