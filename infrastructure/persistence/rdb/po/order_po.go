package po

import (
	"time"

	"backoffice/domain/document"
	"backoffice/domain/order"
	"backoffice/domain/shared"

	"github.com/shopspring/decimal"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type OrderPO struct {
	ID        string          `gorm:"primaryKey;size:64"`
	ClientID  string          `gorm:"size:64;index;not null"` // Only store ID, no association with Client
	Status    string          `gorm:"size:20;index;not null"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes     string          `gorm:"type:text"`
	Version   int             `gorm:"default:0;not null"`
	CreatedAt time.Time       `gorm:"index"`
	UpdatedAt time.Time
}

func (OrderPO) TableName() string {
	return "orders"
}

type OrderItemPO struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	OrderID         string `gorm:"size:64;index;not null"`
	LineItemColumns `gorm:"embedded"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

type PaymentPO struct {
	ID        string          `gorm:"primaryKey;size:64"`
	OrderID   string          `gorm:"size:64;index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method    string          `gorm:"size:20;not null"`
	Reference string          `gorm:"size:120"`
	Notes     string          `gorm:"type:text"`
	PaidAt    time.Time       `gorm:"not null"`
	CreatedAt time.Time
}

func (PaymentPO) TableName() string {
	return "payments"
}

// FromOrderDomain converts the order row and its item rows. Payments are
// written separately.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:        o.ID(),
		ClientID:  o.ClientID(),
		Status:    string(o.Status()),
		Total:     o.Total().Decimal(),
		Notes:     o.Notes(),
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			OrderID:         o.ID(),
			LineItemColumns: lineItemColumns(i, item),
		}
	}
	return orderPO, itemPOs
}

func FromPaymentDomain(p *order.Payment) *PaymentPO {
	return &PaymentPO{
		ID:        p.ID(),
		OrderID:   p.OrderID(),
		Amount:    p.Amount().Decimal(),
		Method:    string(p.Method()),
		Reference: p.Reference(),
		Notes:     p.Notes(),
		PaidAt:    p.PaidAt(),
		CreatedAt: p.CreatedAt(),
	}
}

func (po *PaymentPO) ToDomain() *order.Payment {
	return order.RebuildPaymentFromDTO(order.PaymentReconstructionDTO{
		ID:        po.ID,
		OrderID:   po.OrderID,
		Amount:    shared.NewMoney(po.Amount),
		Method:    order.Method(po.Method),
		Reference: po.Reference,
		Notes:     po.Notes,
		PaidAt:    po.PaidAt,
		CreatedAt: po.CreatedAt,
	})
}

// ToDomain expects itemPOs ordered by position.
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO, paymentPOs []PaymentPO) *order.Order {
	items := make([]document.LineItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = itemPO.toDomain()
	}
	payments := make([]*order.Payment, len(paymentPOs))
	for i := range paymentPOs {
		payments[i] = paymentPOs[i].ToDomain()
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:        po.ID,
		ClientID:  po.ClientID,
		Status:    order.Status(po.Status),
		Total:     shared.NewMoney(po.Total),
		Notes:     po.Notes,
		Items:     items,
		Payments:  payments,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
