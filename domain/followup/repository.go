package followup

import (
	"context"
	"time"
)

type Repository interface {
	Save(ctx context.Context, f *FollowUp) error

	FindByID(ctx context.Context, id string) (*FollowUp, error)

	// ListBetween returns follow-ups with from <= whenAt < to, earliest
	// first. A zero bound is open.
	ListBetween(ctx context.Context, from, to time.Time) ([]*FollowUp, error)

	FindByOrderID(ctx context.Context, orderID string) ([]*FollowUp, error)

	Remove(ctx context.Context, id string) error

	// RemoveByOrderID deletes every follow-up attached to the order.
	RemoveByOrderID(ctx context.Context, orderID string) (int64, error)
}
