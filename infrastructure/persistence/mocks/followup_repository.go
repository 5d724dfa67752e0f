package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"backoffice/domain/followup"
)

type MockFollowUpRepository struct {
	followUps map[string]*followup.FollowUp
	mu        sync.RWMutex
}

func NewMockFollowUpRepository() *MockFollowUpRepository {
	return &MockFollowUpRepository{followUps: make(map[string]*followup.FollowUp)}
}

func copyFollowUp(f *followup.FollowUp) *followup.FollowUp {
	return followup.RebuildFromDTO(followup.ReconstructionDTO{
		ID:        f.ID(),
		ClientID:  f.ClientID(),
		OrderID:   f.OrderID(),
		Kind:      f.Kind(),
		Title:     f.Title(),
		Notes:     f.Notes(),
		WhenAt:    f.WhenAt(),
		Done:      f.Done(),
		Version:   f.Version(),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	})
}

func (r *MockFollowUpRepository) Save(ctx context.Context, f *followup.FollowUp) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkVersion(r.followUps, f.ID(), f.IsNew(), f.Version(), followup.NewFollowUpNotFoundError, "followup"); err != nil {
		return err
	}
	f.MarkSaved()
	r.followUps[f.ID()] = copyFollowUp(f)
	return nil
}

func (r *MockFollowUpRepository) FindByID(ctx context.Context, id string) (*followup.FollowUp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.followUps[id]
	if !ok {
		return nil, followup.NewFollowUpNotFoundError(id)
	}
	return copyFollowUp(f), nil
}

func (r *MockFollowUpRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*followup.FollowUp, error) {
	return r.filter(func(f *followup.FollowUp) bool {
		if !from.IsZero() && f.WhenAt().Before(from) {
			return false
		}
		return to.IsZero() || f.WhenAt().Before(to)
	}), nil
}

func (r *MockFollowUpRepository) FindByOrderID(ctx context.Context, orderID string) ([]*followup.FollowUp, error) {
	return r.filter(func(f *followup.FollowUp) bool {
		id := f.OrderID()
		return id != nil && *id == orderID
	}), nil
}

func (r *MockFollowUpRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.followUps[id]; !ok {
		return followup.NewFollowUpNotFoundError(id)
	}
	delete(r.followUps, id)
	return nil
}

func (r *MockFollowUpRepository) RemoveByOrderID(ctx context.Context, orderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, f := range r.followUps {
		if oid := f.OrderID(); oid != nil && *oid == orderID {
			delete(r.followUps, id)
			removed++
		}
	}
	return removed, nil
}

func (r *MockFollowUpRepository) filter(keep func(*followup.FollowUp) bool) []*followup.FollowUp {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*followup.FollowUp{}
	for _, f := range r.followUps {
		if keep(f) {
			out = append(out, copyFollowUp(f))
		}
	}
	slices.SortFunc(out, func(a, b *followup.FollowUp) int {
		if c := a.WhenAt().Compare(b.WhenAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
	return out
}

var _ followup.Repository = (*MockFollowUpRepository)(nil)
