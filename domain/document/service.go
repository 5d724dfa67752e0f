package document

import (
	"context"
	"strings"

	"backoffice/domain/shared"
)

// ClientChecker answers whether a client may be put on a new document.
// It keeps the document packages independent of the client package.
type ClientChecker interface {
	IsClientSelectable(ctx context.Context, clientID string) (bool, error)
}

// ProductChecker returns the ids among the given ones that are not in the
// catalog.
type ProductChecker interface {
	MissingProducts(ctx context.Context, ids []string) ([]string, error)
}

// ReferenceService validates the client and product references of a
// document before it is saved. It reads through the checkers and never
// persists anything.
type ReferenceService struct {
	clients  ClientChecker
	products ProductChecker
}

func NewReferenceService(clients ClientChecker, products ProductChecker) *ReferenceService {
	return &ReferenceService{clients: clients, products: products}
}

// Validate checks clientID (skipped when empty, the aggregate reports that
// itself) and every product referenced by items. Failures are collected
// into one ValidationError echoing input.
func (s *ReferenceService) Validate(ctx context.Context, entity, clientID string, items []LineItem, input any) error {
	var violations shared.Violations

	if clientID = strings.TrimSpace(clientID); clientID != "" {
		ok, err := s.clients.IsClientSelectable(ctx, clientID)
		if err != nil {
			return err
		}
		if !ok {
			violations.Add("client_id", "client does not exist")
		}
	}

	if ids := ProductIDs(items); len(ids) > 0 {
		missing, err := s.products.MissingProducts(ctx, ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			violations.Add("items.product_id", "unknown products: "+strings.Join(missing, ", "))
		}
	}

	return violations.Err(entity, input)
}
