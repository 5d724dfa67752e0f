package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"

	"backoffice/domain/product"
	"backoffice/domain/shared"
)

type MockProductRepository struct {
	products map[string]*product.Product
	mu       sync.RWMutex
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]*product.Product)}
}

func copyProduct(p *product.Product) *product.Product {
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ID:          p.ID(),
		SKU:         p.SKU(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		IsActive:    p.IsActive(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
	})
}

func (r *MockProductRepository) Save(ctx context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.SKU() != "" {
		for id, other := range r.products {
			if id != p.ID() && other.SKU() == p.SKU() {
				return shared.NewDuplicateKeyError("product", "sku", p.SKU())
			}
		}
	}
	if err := checkVersion(r.products, p.ID(), p.IsNew(), p.Version(), product.NewProductNotFoundError, "product"); err != nil {
		return err
	}

	p.MarkSaved()
	r.products[p.ID()] = copyProduct(p)
	return nil
}

func (r *MockProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, product.NewProductNotFoundError(id)
	}
	return copyProduct(p), nil
}

func (r *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sku = product.NormalizeSKU(sku)
	for _, p := range r.products {
		if sku != "" && p.SKU() == sku {
			return copyProduct(p), nil
		}
	}
	return nil, product.NewProductNotFoundError(sku)
}

func (r *MockProductRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*product.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*product.Product
	for _, p := range r.products {
		if containsFold(criteria.Search, p.Name(), p.SKU()) {
			matched = append(matched, copyProduct(p))
		}
	}
	slices.SortFunc(matched, func(a, b *product.Product) int {
		if c := strings.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})

	products, total := page(matched, criteria)
	return products, total, nil
}

func (r *MockProductRepository) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []string
	for _, id := range ids {
		if _, ok := r.products[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *MockProductRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return product.NewProductNotFoundError(id)
	}
	delete(r.products, id)
	return nil
}

var _ product.Repository = (*MockProductRepository)(nil)
