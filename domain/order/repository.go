package order

import (
	"context"

	"backoffice/domain/shared"
)

// Repository persists Order aggregates. Payments are written one row at a
// time through AddPayment and RemovePayment so recording a payment never
// rewrites the order or its items.
type Repository interface {
	// Save inserts a new order or updates an existing one, replacing its
	// item rows. Updates fail with shared.ErrConcurrentModification when
	// the stored version moved since the order was loaded.
	Save(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id string) (*Order, error)

	FindByClientID(ctx context.Context, clientID string) ([]*Order, error)

	List(ctx context.Context, criteria shared.ListCriteria) ([]*Order, int64, error)

	// Remove physically deletes the order with its items and payments.
	Remove(ctx context.Context, id string) error

	AddPayment(ctx context.Context, p *Payment) error

	RemovePayment(ctx context.Context, paymentID string) error

	FindPaymentByID(ctx context.Context, paymentID string) (*Payment, error)
}
