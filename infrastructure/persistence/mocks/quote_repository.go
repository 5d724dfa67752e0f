package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"backoffice/domain/quote"
	"backoffice/domain/shared"
)

type MockQuoteRepository struct {
	quotes  map[string]*quote.Quote
	clients *MockClientRepository
	mu      sync.RWMutex
}

func NewMockQuoteRepository(clients *MockClientRepository) *MockQuoteRepository {
	return &MockQuoteRepository{
		quotes:  make(map[string]*quote.Quote),
		clients: clients,
	}
}

func copyQuote(q *quote.Quote) *quote.Quote {
	return quote.RebuildFromDTO(quote.ReconstructionDTO{
		ID:         q.ID(),
		ClientID:   q.ClientID(),
		Status:     q.Status(),
		ValidUntil: q.ValidUntil(),
		Total:      q.Total(),
		Notes:      q.Notes(),
		Items:      q.Items(),
		Version:    q.Version(),
		CreatedAt:  q.CreatedAt(),
		UpdatedAt:  q.UpdatedAt(),
	})
}

func (r *MockQuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkVersion(r.quotes, q.ID(), q.IsNew(), q.Version(), quote.NewQuoteNotFoundError, "quote"); err != nil {
		return err
	}
	q.MarkSaved()
	r.quotes[q.ID()] = copyQuote(q)
	return nil
}

// Seed stores q as it is, bypassing version checks, to stand in for rows
// written before the current rules.
func (r *MockQuoteRepository) Seed(q *quote.Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[q.ID()] = copyQuote(q)
}

func (r *MockQuoteRepository) FindByID(ctx context.Context, id string) (*quote.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return nil, quote.NewQuoteNotFoundError(id)
	}
	return copyQuote(q), nil
}

func (r *MockQuoteRepository) FindByClientID(ctx context.Context, clientID string) ([]*quote.Quote, error) {
	return r.matching(func(q *quote.Quote) bool { return q.ClientID() == clientID }), nil
}

func (r *MockQuoteRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*quote.Quote, int64, error) {
	status := strings.TrimSpace(criteria.Status)
	matched := r.matching(func(q *quote.Quote) bool {
		if status != "" && string(q.Status()) != status {
			return false
		}
		if strings.TrimSpace(criteria.Search) == "" {
			return true
		}
		return containsFold(criteria.Search, r.clients.names(q.ClientID())...)
	})
	quotes, total := page(matched, criteria)
	return quotes, total, nil
}

func (r *MockQuoteRepository) FindExpirable(ctx context.Context, day time.Time, limit int) ([]*quote.Quote, error) {
	matched := r.matching(func(q *quote.Quote) bool {
		open := q.Status() == quote.StatusDraft || q.Status() == quote.StatusSent
		return open && q.IsExpired(day)
	})
	slices.SortStableFunc(matched, func(a, b *quote.Quote) int {
		return a.ValidUntil().Compare(*b.ValidUntil())
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *MockQuoteRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotes[id]; !ok {
		return quote.NewQuoteNotFoundError(id)
	}
	delete(r.quotes, id)
	return nil
}

func (r *MockQuoteRepository) matching(keep func(*quote.Quote) bool) []*quote.Quote {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*quote.Quote{}
	for _, q := range r.quotes {
		if keep(q) {
			out = append(out, copyQuote(q))
		}
	}
	slices.SortFunc(out, func(a, b *quote.Quote) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(b.ID(), a.ID())
	})
	return out
}

var _ quote.Repository = (*MockQuoteRepository)(nil)
