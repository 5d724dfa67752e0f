/*
Package lineitem holds the pieces orders and quotes share at the
application boundary: the item response model, the reference checks wired
to the client and product repositories, and the helper that echoes a
request back inside a validation error.
*/
package lineitem

import (
	"context"
	"errors"

	"backoffice/domain/client"
	"backoffice/domain/document"
	"backoffice/domain/product"
	"backoffice/domain/shared"
)

// Response is one line item as returned to callers. Amount is derived.
type Response struct {
	Description string       `json:"description"`
	Quantity    string       `json:"quantity"`
	UnitPrice   shared.Money `json:"unit_price"`
	Amount      shared.Money `json:"amount"`
	ProductID   *string      `json:"product_id,omitempty"`
}

func ToResponses(items []document.LineItem) []Response {
	out := make([]Response, len(items))
	for i, item := range items {
		out[i] = Response{
			Description: item.Description(),
			Quantity:    item.Quantity().String(),
			UnitPrice:   item.UnitPrice(),
			Amount:      item.Amount().Quantize(),
			ProductID:   item.ProductID(),
		}
	}
	return out
}

// clientChecker adapts client.Repository to document.ClientChecker.
// Soft-deleted and unknown clients are not selectable.
type clientChecker struct {
	clients client.Repository
}

func (a *clientChecker) IsClientSelectable(ctx context.Context, clientID string) (bool, error) {
	c, err := a.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			return false, nil
		}
		return false, err
	}
	return c.IsSelectable(), nil
}

// productChecker adapts product.Repository to document.ProductChecker.
type productChecker struct {
	products product.Repository
}

func (a *productChecker) MissingProducts(ctx context.Context, ids []string) ([]string, error) {
	return a.products.MissingIDs(ctx, ids)
}

func NewReferenceService(clients client.Repository, products product.Repository) *document.ReferenceService {
	return document.NewReferenceService(&clientChecker{clients: clients}, &productChecker{products: products})
}

// WithInput makes err echo the whole request. A validation error gets the
// request as its Input in place of the fragment it was raised on; any
// other error is wrapped in a shared.InputError.
func WithInput(err error, input any) error {
	if err == nil {
		return nil
	}
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		return ve.WithInput(input)
	}
	return &shared.InputError{Err: err, Input: input}
}
