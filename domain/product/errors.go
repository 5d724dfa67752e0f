package product

import (
	"errors"

	"backoffice/domain/shared"
)

var ErrProductNotFound = errors.New("product not found")

func NewProductNotFoundError(productID string) error {
	return &productDomainError{
		sentinel: ErrProductNotFound,
		category: shared.ErrNotFound,
		message:  "product not found: " + productID,
		stack:    shared.CaptureStack(3),
	}
}

type productDomainError struct {
	sentinel error
	category error
	message  string
	stack    []uintptr
}

func (e *productDomainError) Error() string   { return e.message }
func (e *productDomainError) Unwrap() []error { return []error{e.sentinel, e.category} }
func (e *productDomainError) Stack() []string { return shared.FormatStack(e.stack) }
