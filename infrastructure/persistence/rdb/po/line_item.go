package po

import (
	"backoffice/domain/document"
	"backoffice/domain/shared"

	"github.com/shopspring/decimal"
)

// LineItemColumns is embedded by order_items and quote_items. Position keeps
// the submitted order of the rows.
type LineItemColumns struct {
	Position    int             `gorm:"not null"`
	Description string          `gorm:"size:255;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ProductID   *string         `gorm:"size:64;index"`
}

func lineItemColumns(position int, item document.LineItem) LineItemColumns {
	return LineItemColumns{
		Position:    position,
		Description: item.Description(),
		Quantity:    item.Quantity(),
		UnitPrice:   item.UnitPrice().Decimal(),
		ProductID:   item.ProductID(),
	}
}

func (c LineItemColumns) toDomain() document.LineItem {
	return document.NewLineItem(c.Description, c.Quantity, shared.NewMoney(c.UnitPrice), c.ProductID)
}
