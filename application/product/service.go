// Package product manages the product catalog.
package product

import (
	"context"
	"time"

	"backoffice/application/lineitem"
	"backoffice/application/listing"
	"backoffice/domain/product"
	"backoffice/domain/shared"
)

// ProductRequest carries raw form values; Price is parsed leniently.
// Active nil keeps the current state on update and means active on create.
type ProductRequest struct {
	SKU         string `json:"sku" form:"sku"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	Active      *bool  `json:"active" form:"active"`
}

func (r ProductRequest) details() product.Details {
	return product.Details{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Price:       shared.ParseMoney(r.Price),
	}
}

type ProductResponse struct {
	ID          string       `json:"id"`
	SKU         string       `json:"sku"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       shared.Money `json:"price"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
}

func ToProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID(),
		SKU:         p.SKU(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt(),
	}
}

type Service struct {
	productRepo product.Repository
	uowFactory  shared.UnitOfWorkFactory
}

func NewService(productRepo product.Repository, uowFactory shared.UnitOfWorkFactory) *Service {
	return &Service{productRepo: productRepo, uowFactory: uowFactory}
}

func applyActive(p *product.Product, active *bool) {
	if active == nil {
		return
	}
	if *active {
		p.Activate()
	} else {
		p.Deactivate()
	}
}

// CreateProduct fails with a DuplicateKeyError when the SKU is taken; the
// unit of work is rolled back and nothing is stored.
func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	var p *product.Product
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		created, err := product.NewProduct(req.details())
		if err != nil {
			return lineitem.WithInput(err, req)
		}
		applyActive(created, req.Active)
		if err := s.productRepo.Save(ctx, created); err != nil {
			return lineitem.WithInput(err, req)
		}
		uow.RegisterNew(created)
		p = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID string, req ProductRequest) (*ProductResponse, error) {
	var p *product.Product
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		loaded, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := loaded.Update(req.details()); err != nil {
			return lineitem.WithInput(err, req)
		}
		applyActive(loaded, req.Active)
		if err := s.productRepo.Save(ctx, loaded); err != nil {
			return lineitem.WithInput(err, req)
		}
		uow.RegisterDirty(loaded)
		p = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// DeleteProduct removes the catalog entry. Line items that referenced it
// keep the id as history.
func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		p, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := s.productRepo.Remove(ctx, productID); err != nil {
			return err
		}
		p.MarkDeleted()
		uow.RegisterRemoved(p)
		return nil
	})
}

func (s *Service) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

func (s *Service) ListProducts(ctx context.Context, criteria shared.ListCriteria) (listing.Page[*ProductResponse], error) {
	products, total, err := s.productRepo.List(ctx, criteria)
	if err != nil {
		return listing.Page[*ProductResponse]{}, err
	}
	return listing.New(products, total, criteria, ToProductResponse), nil
}
