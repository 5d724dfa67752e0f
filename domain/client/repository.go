package client

import (
	"context"

	"backoffice/domain/shared"
)

// Repository persists Client aggregates. Deletion is logical: FindByID
// still returns deleted clients so historical orders resolve, while List
// hides them.
type Repository interface {
	// Save inserts or updates the client. A taken email surfaces as a
	// *shared.DuplicateKeyError.
	Save(ctx context.Context, c *Client) error

	FindByID(ctx context.Context, id string) (*Client, error)

	FindByEmail(ctx context.Context, email string) (*Client, error)

	// List pages through clients that are not deleted. criteria.Search
	// matches name, email, phone and company.
	List(ctx context.Context, criteria shared.ListCriteria) ([]*Client, int64, error)
}
