package quote

import (
	"errors"

	"backoffice/domain/shared"
)

var (
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrNoItems is raised when converting a quote that has no items.
	ErrNoItems = errors.New("quote has no items")
)

func NewQuoteNotFoundError(quoteID string) error {
	return &quoteDomainError{
		sentinel: ErrQuoteNotFound,
		category: shared.ErrNotFound,
		message:  "quote not found: " + quoteID,
		stack:    shared.CaptureStack(3),
	}
}

// NewNoItemsError reports an attempt to convert an empty quote.
func NewNoItemsError(quoteID string) error {
	return &quoteDomainError{
		sentinel: ErrNoItems,
		category: shared.ErrConflict,
		message:  "quote " + quoteID + " has no items to convert",
		stack:    shared.CaptureStack(3),
	}
}

type quoteDomainError struct {
	sentinel error
	category error
	message  string
	stack    []uintptr
}

func (e *quoteDomainError) Error() string { return e.message }

func (e *quoteDomainError) Unwrap() []error { return []error{e.sentinel, e.category} }

func (e *quoteDomainError) Stack() []string { return shared.FormatStack(e.stack) }
