package rdb

import (
	"context"
	"errors"
	"strings"

	"backoffice/domain/product"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/rdb/po"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	productPO := po.FromProductDomain(p)
	db := dbFrom(ctx, r.db)

	var err error
	if p.IsNew() {
		err = db.Create(productPO).Error
	} else {
		result := db.Model(&po.ProductPO{}).
			Where("id = ? AND version = ?", p.ID(), p.Version()).
			Updates(map[string]any{
				"sku":         productPO.SKU,
				"name":        productPO.Name,
				"description": productPO.Description,
				"price":       productPO.Price,
				"is_active":   productPO.IsActive,
				"version":     p.Version() + 1,
			})
		err = checkVersionedUpdate(db, result, &po.ProductPO{}, p.ID(), product.NewProductNotFoundError, "product")
	}
	if err != nil {
		return translateWriteError(err, "product", "sku", p.SKU())
	}

	p.MarkSaved()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var productPO po.ProductPO
	if err := dbFrom(ctx, r.db).First(&productPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(id)
		}
		return nil, err
	}
	return productPO.ToDomain(), nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	sku = product.NormalizeSKU(sku)

	var productPO po.ProductPO
	if err := dbFrom(ctx, r.db).First(&productPO, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(sku)
		}
		return nil, err
	}
	return productPO.ToDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*product.Product, int64, error) {
	c := criteria.Normalize()

	q := dbFrom(ctx, r.db).Model(&po.ProductPO{})
	if strings.TrimSpace(c.Search) != "" {
		like := likePattern(c.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productPOs []po.ProductPO
	if err := paginate(q.Order("name ASC").Order("id ASC"), c).Find(&productPOs).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*product.Product, len(productPOs))
	for i := range productPOs {
		products[i] = productPOs[i].ToDomain()
	}
	return products, total, nil
}

// MissingIDs keeps the order of ids.
func (r *ProductRepository) MissingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []string
	if err := dbFrom(ctx, r.db).Model(&po.ProductPO{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&po.ProductPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return product.NewProductNotFoundError(id)
	}
	return nil
}

var _ product.Repository = (*ProductRepository)(nil)
