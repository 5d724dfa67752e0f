package po

import (
	"time"

	"backoffice/domain/document"
	"backoffice/domain/quote"
	"backoffice/domain/shared"

	"github.com/shopspring/decimal"
)

type QuotePO struct {
	ID         string          `gorm:"primaryKey;size:64"`
	ClientID   string          `gorm:"size:64;index;not null"`
	Status     string          `gorm:"size:20;index;not null"`
	ValidUntil *time.Time      `gorm:"type:date;index"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes      string          `gorm:"type:text"`
	Version    int             `gorm:"default:0;not null"`
	CreatedAt  time.Time       `gorm:"index"`
	UpdatedAt  time.Time
}

func (QuotePO) TableName() string {
	return "quotes"
}

type QuoteItemPO struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	QuoteID         string `gorm:"size:64;index;not null"`
	LineItemColumns `gorm:"embedded"`
}

func (QuoteItemPO) TableName() string {
	return "quote_items"
}

func FromQuoteDomain(q *quote.Quote) (*QuotePO, []QuoteItemPO) {
	quotePO := &QuotePO{
		ID:         q.ID(),
		ClientID:   q.ClientID(),
		Status:     string(q.Status()),
		ValidUntil: q.ValidUntil(),
		Total:      q.Total().Decimal(),
		Notes:      q.Notes(),
		Version:    q.Version(),
		CreatedAt:  q.CreatedAt(),
		UpdatedAt:  q.UpdatedAt(),
	}

	items := q.Items()
	itemPOs := make([]QuoteItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = QuoteItemPO{
			QuoteID:         q.ID(),
			LineItemColumns: lineItemColumns(i, item),
		}
	}
	return quotePO, itemPOs
}

func (po *QuotePO) ToDomain(itemPOs []QuoteItemPO) *quote.Quote {
	items := make([]document.LineItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = itemPO.toDomain()
	}

	var validUntil *time.Time
	if po.ValidUntil != nil {
		d := time.Date(po.ValidUntil.Year(), po.ValidUntil.Month(), po.ValidUntil.Day(), 0, 0, 0, 0, time.UTC)
		validUntil = &d
	}

	return quote.RebuildFromDTO(quote.ReconstructionDTO{
		ID:         po.ID,
		ClientID:   po.ClientID,
		Status:     quote.Status(po.Status),
		ValidUntil: validUntil,
		Total:      shared.NewMoney(po.Total),
		Notes:      po.Notes,
		Items:      items,
		Version:    po.Version,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	})
}
