package product

import (
	"context"

	"backoffice/domain/shared"
)

type Repository interface {
	// Save inserts or updates the product. A taken SKU surfaces as a
	// *shared.DuplicateKeyError.
	Save(ctx context.Context, p *Product) error

	FindByID(ctx context.Context, id string) (*Product, error)

	// FindBySKU expects a normalized SKU.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// List orders by name. criteria.Search matches name and SKU.
	List(ctx context.Context, criteria shared.ListCriteria) ([]*Product, int64, error)

	// MissingIDs returns the ids among the given ones with no product row.
	MissingIDs(ctx context.Context, ids []string) ([]string, error)

	// Remove deletes the product row. Line items that referenced it keep
	// the id as history.
	Remove(ctx context.Context, id string) error
}
