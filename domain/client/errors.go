package client

import (
	"errors"

	"backoffice/domain/shared"
)

var (
	ErrClientNotFound = errors.New("client not found")

	ErrInvalidEmail = errors.New("invalid email format")
)

func NewClientNotFoundError(clientID string) error {
	return &clientDomainError{
		sentinel: ErrClientNotFound,
		category: shared.ErrNotFound,
		message:  "client not found: " + clientID,
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidEmailError(email string) error {
	return &clientDomainError{
		sentinel: ErrInvalidEmail,
		category: shared.ErrInvalidInput,
		field:    "email",
		message:  "invalid email format: " + email,
		stack:    shared.CaptureStack(3),
	}
}

type clientDomainError struct {
	sentinel error
	category error
	field    string
	message  string
	stack    []uintptr
}

func (e *clientDomainError) Error() string   { return e.message }
func (e *clientDomainError) Unwrap() []error { return []error{e.sentinel, e.category} }
func (e *clientDomainError) Field() string   { return e.field }
func (e *clientDomainError) Stack() []string { return shared.FormatStack(e.stack) }
