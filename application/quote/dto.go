package quote

import (
	"time"

	"backoffice/application/lineitem"
	"backoffice/domain/document"
	"backoffice/domain/shared"
)

// CreateQuoteRequest carries raw form values. ValidUntil is a YYYY-MM-DD
// date; a blank or unreadable value leaves the quote without one.
type CreateQuoteRequest struct {
	ClientID   string             `json:"client_id" form:"client_id"`
	Status     string             `json:"status" form:"status"`
	Notes      string             `json:"notes" form:"notes"`
	ValidUntil string             `json:"valid_until" form:"valid_until"`
	Items      []document.ItemRow `json:"items" form:"-"`
}

type UpdateQuoteRequest struct {
	ClientID   string             `json:"client_id" form:"client_id"`
	Status     string             `json:"status" form:"status"`
	Notes      string             `json:"notes" form:"notes"`
	ValidUntil string             `json:"valid_until" form:"valid_until"`
	Items      []document.ItemRow `json:"items" form:"-"`
}

type ReplaceItemsRequest struct {
	Items []document.ItemRow `json:"items" form:"-"`
}

type QuoteResponse struct {
	ID         string              `json:"id"`
	ClientID   string              `json:"client_id"`
	Status     string              `json:"status"`
	Notes      string              `json:"notes"`
	ValidUntil *string             `json:"valid_until"`
	Items      []lineitem.Response `json:"items"`
	Total      shared.Money        `json:"total"`
	Version    int                 `json:"version"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
