package po

import (
	"time"

	"backoffice/domain/product"
	"backoffice/domain/shared"

	"github.com/shopspring/decimal"
)

type ProductPO struct {
	ID          string          `gorm:"primaryKey;size:64"`
	SKU         *string         `gorm:"column:sku;size:60;uniqueIndex"` // NULL when the product has no SKU
	Name        string          `gorm:"size:200;index;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive    bool            `gorm:"not null;default:true"`
	Version     int             `gorm:"default:0;not null"`
	CreatedAt   time.Time
}

func (ProductPO) TableName() string {
	return "products"
}

func FromProductDomain(p *product.Product) *ProductPO {
	var sku *string
	if s := p.SKU(); s != "" {
		sku = &s
	}
	return &ProductPO{
		ID:          p.ID(),
		SKU:         sku,
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().Decimal(),
		IsActive:    p.IsActive(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
	}
}

func (po *ProductPO) ToDomain() *product.Product {
	var sku string
	if po.SKU != nil {
		sku = *po.SKU
	}
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:          po.ID,
		SKU:         sku,
		Name:        po.Name,
		Description: po.Description,
		Price:       shared.NewMoney(po.Price),
		IsActive:    po.IsActive,
		Version:     po.Version,
		CreatedAt:   po.CreatedAt,
	})
}
