/*
Package order errors.

Sentinels identify the failure for errors.Is. Constructors capture the
stack at the point of creation (skip=3: runtime.Callers, CaptureStack and
the constructor). Every error also unwraps to the shared category so
callers that only care about "not found" or "invalid input" need not know
this package.
*/
package order

import (
	"errors"

	"backoffice/domain/shared"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidAmount is raised for a payment amount that is not positive.
	ErrInvalidAmount = errors.New("payment amount must be positive")
)

func NewOrderNotFoundError(orderID string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		category: shared.ErrNotFound,
		entity:   "order",
		message:  "order not found: " + orderID,
		stack:    shared.CaptureStack(3),
	}
}

func NewPaymentNotFoundError(paymentID string) error {
	return &orderDomainError{
		sentinel: ErrPaymentNotFound,
		category: shared.ErrNotFound,
		entity:   "payment",
		message:  "payment not found: " + paymentID,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidAmountError reports a payment amount that is not positive or
// too large to store.
func NewInvalidAmountError(amount shared.Money) error {
	return &orderDomainError{
		sentinel: ErrInvalidAmount,
		category: shared.ErrInvalidInput,
		entity:   "payment",
		field:    "amount",
		message:  "payment amount must be positive and below " + shared.NewMoney(shared.MaxAmount).String() + ", got " + amount.String(),
		stack:    shared.CaptureStack(3),
	}
}

type orderDomainError struct {
	sentinel error
	category error
	entity   string
	field    string
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string { return e.message }

func (e *orderDomainError) Unwrap() []error { return []error{e.sentinel, e.category} }

func (e *orderDomainError) Field() string { return e.field }

func (e *orderDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
