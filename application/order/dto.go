package order

import (
	"time"

	"backoffice/application/lineitem"
	"backoffice/domain/document"
	"backoffice/domain/shared"
)

// CreateOrderRequest carries item rows exactly as submitted; parsing and
// coercion happen in the service.
type CreateOrderRequest struct {
	ClientID string             `json:"client_id" form:"client_id"`
	Status   string             `json:"status" form:"status"`
	Notes    string             `json:"notes" form:"notes"`
	Items    []document.ItemRow `json:"items" form:"-"`
}

// UpdateOrderRequest replaces the header and the whole item set.
type UpdateOrderRequest struct {
	ClientID string             `json:"client_id" form:"client_id"`
	Status   string             `json:"status" form:"status"`
	Notes    string             `json:"notes" form:"notes"`
	Items    []document.ItemRow `json:"items" form:"-"`
}

type ReplaceItemsRequest struct {
	Items []document.ItemRow `json:"items" form:"-"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	ClientID  string              `json:"client_id"`
	Status    string              `json:"status"`
	Notes     string              `json:"notes"`
	Items     []lineitem.Response `json:"items"`
	Total     shared.Money        `json:"total"`
	PaidTotal shared.Money        `json:"paid_total"`
	Balance   shared.Money        `json:"balance"`
	Payments  []PaymentResponse   `json:"payments"`
	Version   int                 `json:"version"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type PaymentResponse struct {
	ID        string       `json:"id"`
	OrderID   string       `json:"order_id"`
	Amount    shared.Money `json:"amount"`
	Method    string       `json:"method"`
	Reference string       `json:"reference"`
	Notes     string       `json:"notes"`
	PaidAt    time.Time    `json:"paid_at"`
	CreatedAt time.Time    `json:"created_at"`
}
