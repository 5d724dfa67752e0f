package rdb

import (
	"context"
	"errors"
	"strings"

	"backoffice/domain/order"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/rdb/po"

	"gorm.io/gorm"
)

// OrderRepository GORM implementation of order.Repository.
// Save strategy: write the order row, delete its item rows, insert the new
// item rows. Payments are independent rows and never rewritten by Save.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		if o.IsNew() {
			if err := tx.Create(orderPO).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&po.OrderPO{}).
				Where("id = ? AND version = ?", o.ID(), o.Version()).
				Updates(map[string]any{
					"client_id":  orderPO.ClientID,
					"status":     orderPO.Status,
					"total":      orderPO.Total,
					"notes":      orderPO.Notes,
					"version":    o.Version() + 1,
					"updated_at": orderPO.UpdatedAt,
				})
			if err := checkVersionedUpdate(tx, result, &po.OrderPO{}, o.ID(), order.NewOrderNotFoundError, "order"); err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	o.MarkSaved()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := dbFrom(ctx, r.db)

	var orderPO po.OrderPO
	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	orders, err := r.hydrate(db, []po.OrderPO{orderPO})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *OrderRepository) FindByClientID(ctx context.Context, clientID string) ([]*order.Order, error) {
	db := dbFrom(ctx, r.db)

	var orderPOs []po.OrderPO
	if err := db.Where("client_id = ?", clientID).
		Order("created_at DESC").Order("id DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	return r.hydrate(db, orderPOs)
}

// List filters by status and by client name or email, newest first.
func (r *OrderRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*order.Order, int64, error) {
	db := dbFrom(ctx, r.db)
	c := criteria.Normalize()

	q := db.Model(&po.OrderPO{})
	if status := strings.TrimSpace(c.Status); status != "" {
		q = q.Where("orders.status = ?", status)
	}
	if strings.TrimSpace(c.Search) != "" {
		like := likePattern(c.Search)
		q = q.Joins("JOIN clients ON clients.id = orders.client_id").
			Where("LOWER(clients.first_name) LIKE ? OR LOWER(clients.last_name) LIKE ? OR LOWER(clients.email) LIKE ?", like, like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderPOs []po.OrderPO
	if err := paginate(q.Select("orders.*").Order("orders.created_at DESC").Order("orders.id DESC"), c).
		Find(&orderPOs).Error; err != nil {
		return nil, 0, err
	}

	orders, err := r.hydrate(db, orderPOs)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// hydrate loads items and payments for all given orders with one query each.
func (r *OrderRepository) hydrate(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	if len(orderPOs) == 0 {
		return []*order.Order{}, nil
	}
	ids := make([]string, len(orderPOs))
	for i, o := range orderPOs {
		ids[i] = o.ID
	}

	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("order_id").Order("position").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	var paymentPOs []po.PaymentPO
	if err := db.Where("order_id IN ?", ids).Order("paid_at").Order("id").Find(&paymentPOs).Error; err != nil {
		return nil, err
	}

	itemsByOrder := make(map[string][]po.OrderItemPO, len(ids))
	for _, item := range itemPOs {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}
	paymentsByOrder := make(map[string][]po.PaymentPO, len(ids))
	for _, p := range paymentPOs {
		paymentsByOrder[p.OrderID] = append(paymentsByOrder[p.OrderID], p)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		orders[i] = orderPOs[i].ToDomain(itemsByOrder[orderPOs[i].ID], paymentsByOrder[orderPOs[i].ID])
	}
	return orders, nil
}

// Remove physically deletes the order, its items and its payments.
func (r *OrderRepository) Remove(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&po.PaymentPO{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&po.OrderItemPO{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&po.OrderPO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewOrderNotFoundError(id)
		}
		return nil
	})
}

func (r *OrderRepository) AddPayment(ctx context.Context, p *order.Payment) error {
	return dbFrom(ctx, r.db).Create(po.FromPaymentDomain(p)).Error
}

func (r *OrderRepository) RemovePayment(ctx context.Context, paymentID string) error {
	result := dbFrom(ctx, r.db).Where("id = ?", paymentID).Delete(&po.PaymentPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewPaymentNotFoundError(paymentID)
	}
	return nil
}

func (r *OrderRepository) FindPaymentByID(ctx context.Context, paymentID string) (*order.Payment, error) {
	var paymentPO po.PaymentPO
	if err := dbFrom(ctx, r.db).First(&paymentPO, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewPaymentNotFoundError(paymentID)
		}
		return nil, err
	}
	return paymentPO.ToDomain(), nil
}

var _ order.Repository = (*OrderRepository)(nil)
