/*
Package product is the catalog that line items may reference. A product
price is only a default: line items copy it and never follow later edits.
*/
package product

import (
	"fmt"
	"strings"
	"time"

	"backoffice/domain/shared"

	"github.com/google/uuid"
)

// Product aggregate root.
type Product struct {
	id          string
	sku         string
	name        string
	description string
	price       shared.Money
	isActive    bool
	version     int
	createdAt   time.Time

	events shared.EventRecorder
	isNew  bool
}

type Details struct {
	SKU         string
	Name        string
	Description string
	Price       shared.Money
}

// NormalizeSKU upper-cases and trims a SKU so uniqueness is case-insensitive.
// An empty result means the product has no SKU.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func (d Details) normalize() (Details, error) {
	d.SKU = NormalizeSKU(d.SKU)
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Price = d.Price.Quantize()

	var violations shared.Violations
	if d.Name == "" {
		violations.Add("name", "name is required")
	}
	switch {
	case d.Price.IsNegative():
		violations.Add("price", "price must not be negative")
	case !d.Price.Fits():
		violations.Add("price", "price is too large")
	}
	return d, violations.Err("product", nil)
}

func NewProduct(d Details) (*Product, error) {
	d, err := d.normalize()
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	p := &Product{
		id:          id.String(),
		sku:         d.SKU,
		name:        d.Name,
		description: d.Description,
		price:       d.Price,
		isActive:    true,
		createdAt:   time.Now(),
		isNew:       true,
	}
	p.events.Record(NewProductCreatedEvent(p.id, p.sku, p.price))
	return p, nil
}

func (p *Product) Update(d Details) error {
	d, err := d.normalize()
	if err != nil {
		return err
	}
	p.sku = d.SKU
	p.name = d.Name
	p.description = d.Description
	p.price = d.Price
	p.events.Record(NewProductUpdatedEvent(p.id, p.sku, p.price))
	return nil
}

func (p *Product) Activate()   { p.isActive = true }
func (p *Product) Deactivate() { p.isActive = false }

func (p *Product) MarkDeleted() {
	p.events.Record(NewProductDeletedEvent(p.id))
}

func (p *Product) IsNew() bool { return p.isNew }

func (p *Product) MarkSaved() {
	if !p.isNew {
		p.version++
	}
	p.isNew = false
}

func (p *Product) ID() string                       { return p.id }
func (p *Product) SKU() string                      { return p.sku }
func (p *Product) Name() string                     { return p.name }
func (p *Product) Description() string              { return p.description }
func (p *Product) Price() shared.Money              { return p.price }
func (p *Product) IsActive() bool                   { return p.isActive }
func (p *Product) Version() int                     { return p.version }
func (p *Product) CreatedAt() time.Time             { return p.createdAt }
func (p *Product) PullEvents() []shared.DomainEvent { return p.events.PullEvents() }

// ReconstructionDTO is for repository use only.
type ReconstructionDTO struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       shared.Money
	IsActive    bool
	Version     int
	CreatedAt   time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		sku:         dto.SKU,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		isActive:    dto.IsActive,
		version:     dto.Version,
		createdAt:   dto.CreatedAt,
	}
}

var _ shared.AggregateRoot = (*Product)(nil)
