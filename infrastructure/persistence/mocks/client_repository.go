package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"

	"backoffice/domain/client"
	"backoffice/domain/shared"
)

// MockClientRepository keeps detached copies of clients in memory and
// enforces email uniqueness and optimistic versioning like the SQL store.
type MockClientRepository struct {
	clients map[string]*client.Client
	mu      sync.RWMutex
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{clients: make(map[string]*client.Client)}
}

func copyClient(c *client.Client) *client.Client {
	return client.RebuildFromDTO(client.ReconstructionDTO{
		ID:        c.ID(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
		Email:     c.Email().Value(),
		Phone:     c.Phone(),
		Company:   c.Company(),
		Address:   c.Address(),
		Notes:     c.Notes(),
		IsDeleted: c.IsDeleted(),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	})
}

func (r *MockClientRepository) Save(ctx context.Context, c *client.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, other := range r.clients {
		if id != c.ID() && other.Email().Equals(c.Email()) {
			return shared.NewDuplicateKeyError("client", "email", c.Email().Value())
		}
	}
	if err := checkVersion(r.clients, c.ID(), c.IsNew(), c.Version(), client.NewClientNotFoundError, "client"); err != nil {
		return err
	}

	c.MarkSaved()
	r.clients[c.ID()] = copyClient(c)
	return nil
}

func (r *MockClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, client.NewClientNotFoundError(id)
	}
	return copyClient(c), nil
}

func (r *MockClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, c := range r.clients {
		if c.Email().Value() == email {
			return copyClient(c), nil
		}
	}
	return nil, client.NewClientNotFoundError(email)
}

func (r *MockClientRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*client.Client, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*client.Client
	for _, c := range r.clients {
		if c.IsDeleted() {
			continue
		}
		if containsFold(criteria.Search, c.FirstName(), c.LastName(), c.Email().Value(), c.Phone(), c.Company()) {
			matched = append(matched, copyClient(c))
		}
	}
	slices.SortFunc(matched, func(a, b *client.Client) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(b.ID(), a.ID())
	})

	clients, total := page(matched, criteria)
	return clients, total, nil
}

// names returns the searchable client fields for document listings.
func (r *MockClientRepository) names(id string) []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil
	}
	return []string{c.FirstName(), c.LastName(), c.Email().Value()}
}

var _ client.Repository = (*MockClientRepository)(nil)
