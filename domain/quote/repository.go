package quote

import (
	"context"
	"time"

	"backoffice/domain/shared"
)

type Repository interface {
	// Save inserts or updates the quote and replaces its item rows.
	Save(ctx context.Context, q *Quote) error

	FindByID(ctx context.Context, id string) (*Quote, error)

	FindByClientID(ctx context.Context, clientID string) ([]*Quote, error)

	List(ctx context.Context, criteria shared.ListCriteria) ([]*Quote, int64, error)

	// FindExpirable returns open quotes whose validity date lies before day.
	FindExpirable(ctx context.Context, day time.Time, limit int) ([]*Quote, error)

	// Remove physically deletes the quote and its items.
	Remove(ctx context.Context, id string) error
}
