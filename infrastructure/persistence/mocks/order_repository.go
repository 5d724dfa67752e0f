package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"

	"backoffice/domain/order"
	"backoffice/domain/shared"
)

// MockOrderRepository in-memory order.Repository. Search matches client
// names through the client repository given at construction, if any.
type MockOrderRepository struct {
	orders  map[string]*order.Order
	clients *MockClientRepository
	mu      sync.RWMutex
}

func NewMockOrderRepository(clients *MockClientRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:  make(map[string]*order.Order),
		clients: clients,
	}
}

func copyOrder(o *order.Order, payments []*order.Payment) *order.Order {
	payments = slices.Clone(payments)
	slices.SortStableFunc(payments, func(a, b *order.Payment) int {
		return a.PaidAt().Compare(b.PaidAt())
	})
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:        o.ID(),
		ClientID:  o.ClientID(),
		Status:    o.Status(),
		Total:     o.Total(),
		Notes:     o.Notes(),
		Items:     o.Items(),
		Payments:  payments,
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	})
}

// Save keeps the stored payments; they only change through AddPayment and
// RemovePayment.
func (r *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkVersion(r.orders, o.ID(), o.IsNew(), o.Version(), order.NewOrderNotFoundError, "order"); err != nil {
		return err
	}

	var payments []*order.Payment
	if stored, ok := r.orders[o.ID()]; ok {
		payments = stored.Payments()
	}
	o.MarkSaved()
	r.orders[o.ID()] = copyOrder(o, payments)
	return nil
}

func (r *MockOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return copyOrder(o, o.Payments()), nil
}

func (r *MockOrderRepository) FindByClientID(ctx context.Context, clientID string) ([]*order.Order, error) {
	orders := r.matching(func(o *order.Order) bool { return o.ClientID() == clientID })
	return orders, nil
}

func (r *MockOrderRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*order.Order, int64, error) {
	status := strings.TrimSpace(criteria.Status)
	matched := r.matching(func(o *order.Order) bool {
		if status != "" && string(o.Status()) != status {
			return false
		}
		if strings.TrimSpace(criteria.Search) == "" {
			return true
		}
		return containsFold(criteria.Search, r.clients.names(o.ClientID())...)
	})
	orders, total := page(matched, criteria)
	return orders, total, nil
}

// matching returns copies sorted newest first.
func (r *MockOrderRepository) matching(keep func(*order.Order) bool) []*order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*order.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, copyOrder(o, o.Payments()))
		}
	}
	slices.SortFunc(out, func(a, b *order.Order) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(b.ID(), a.ID())
	})
	return out
}

func (r *MockOrderRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return order.NewOrderNotFoundError(id)
	}
	delete(r.orders, id)
	return nil
}

func (r *MockOrderRepository) AddPayment(ctx context.Context, p *order.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[p.OrderID()]
	if !ok {
		return order.NewOrderNotFoundError(p.OrderID())
	}
	r.orders[p.OrderID()] = copyOrder(stored, append(stored.Payments(), p))
	return nil
}

func (r *MockOrderRepository) RemovePayment(ctx context.Context, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, stored := range r.orders {
		payments := stored.Payments()
		for i, p := range payments {
			if p.ID() == paymentID {
				r.orders[id] = copyOrder(stored, slices.Delete(payments, i, i+1))
				return nil
			}
		}
	}
	return order.NewPaymentNotFoundError(paymentID)
}

func (r *MockOrderRepository) FindPaymentByID(ctx context.Context, paymentID string) (*order.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.orders {
		for _, p := range stored.Payments() {
			if p.ID() == paymentID {
				return p, nil
			}
		}
	}
	return nil, order.NewPaymentNotFoundError(paymentID)
}

var _ order.Repository = (*MockOrderRepository)(nil)
