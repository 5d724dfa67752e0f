// Package followup schedules reminders against clients and orders and feeds
// the calendar.
package followup

import (
	"context"
	"errors"
	"strings"
	"time"

	"backoffice/application/lineitem"
	"backoffice/domain/client"
	"backoffice/domain/followup"
	"backoffice/domain/order"
	"backoffice/domain/shared"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
)

type Service struct {
	followUpRepo followup.Repository
	clientRepo   client.Repository
	orderRepo    order.Repository
	uowFactory   shared.UnitOfWorkFactory
}

func NewService(
	followUpRepo followup.Repository,
	clientRepo client.Repository,
	orderRepo order.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *Service {
	return &Service{
		followUpRepo: followUpRepo,
		clientRepo:   clientRepo,
		orderRepo:    orderRepo,
		uowFactory:   uowFactory,
	}
}

// details converts the request; fallback fills a blank when_at.
func (r FollowUpRequest) details(fallback time.Time) (followup.Details, error) {
	whenAt, ok := shared.ParseTimestamp(r.WhenAt)
	if !ok {
		return followup.Details{}, shared.NewValidationError("followup", "when_at", "invalid date: "+r.WhenAt)
	}
	if whenAt.IsZero() {
		whenAt = fallback
	}
	d := followup.Details{
		ClientID: r.ClientID,
		Kind:     r.Kind,
		Title:    r.Title,
		Notes:    r.Notes,
		WhenAt:   whenAt,
	}
	if orderID := strings.TrimSpace(r.OrderID); orderID != "" {
		d.OrderID = &orderID
	}
	return d, nil
}

// checkReferences reports unknown clients or orders as violations so the
// caller can re-render the form.
func (s *Service) checkReferences(ctx context.Context, d followup.Details) error {
	var violations shared.Violations
	if clientID := strings.TrimSpace(d.ClientID); clientID != "" {
		if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			violations.Add("client_id", "unknown client: "+clientID)
		}
	}
	if d.OrderID != nil {
		if _, err := s.orderRepo.FindByID(ctx, *d.OrderID); err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			violations.Add("order_id", "unknown order: "+*d.OrderID)
		}
	}
	return violations.Err("followup", nil)
}

func (s *Service) Schedule(ctx context.Context, req FollowUpRequest) (*FollowUpResponse, error) {
	d, err := req.details(time.Time{})
	if err != nil {
		return nil, lineitem.WithInput(err, req)
	}

	var f *followup.FollowUp
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, d); err != nil {
			return lineitem.WithInput(err, req)
		}
		scheduled, err := followup.Schedule(d)
		if err != nil {
			return lineitem.WithInput(err, req)
		}
		if err := s.followUpRepo.Save(ctx, scheduled); err != nil {
			return err
		}
		uow.RegisterNew(scheduled)
		f = scheduled
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Follow-up scheduled",
		zap.String("followup_id", f.ID()),
		zap.String("client_id", f.ClientID()),
		zap.Time("when_at", f.WhenAt()))
	return ToFollowUpResponse(f), nil
}

func (s *Service) Update(ctx context.Context, id string, req FollowUpRequest) (*FollowUpResponse, error) {
	return s.mutate(ctx, id, func(ctx context.Context, f *followup.FollowUp) error {
		d, err := req.details(f.WhenAt())
		if err != nil {
			return lineitem.WithInput(err, req)
		}
		if err := s.checkReferences(ctx, d); err != nil {
			return lineitem.WithInput(err, req)
		}
		return lineitem.WithInput(f.Update(d), req)
	})
}

func (s *Service) MarkDone(ctx context.Context, id string) (*FollowUpResponse, error) {
	return s.mutate(ctx, id, func(_ context.Context, f *followup.FollowUp) error {
		f.MarkDone()
		return nil
	})
}

func (s *Service) Reopen(ctx context.Context, id string) (*FollowUpResponse, error) {
	return s.mutate(ctx, id, func(_ context.Context, f *followup.FollowUp) error {
		f.Reopen()
		return nil
	})
}

func (s *Service) Toggle(ctx context.Context, id string) (*FollowUpResponse, error) {
	return s.mutate(ctx, id, func(_ context.Context, f *followup.FollowUp) error {
		f.Toggle()
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, id string, change func(ctx context.Context, f *followup.FollowUp) error) (*FollowUpResponse, error) {
	var f *followup.FollowUp
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		loaded, err := s.followUpRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := change(ctx, loaded); err != nil {
			return err
		}
		if err := s.followUpRepo.Save(ctx, loaded); err != nil {
			return err
		}
		uow.RegisterDirty(loaded)
		f = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToFollowUpResponse(f), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		return s.followUpRepo.Remove(ctx, id)
	})
}

func (s *Service) Get(ctx context.Context, id string) (*FollowUpResponse, error) {
	f, err := s.followUpRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToFollowUpResponse(f), nil
}

// Calendar lists follow-ups from the start day through the whole end day.
// Unreadable or blank bounds are open.
func (s *Service) Calendar(ctx context.Context, start, end string) ([]CalendarEvent, error) {
	var from, to time.Time
	if day, ok := shared.ParseDay(start); ok {
		from = day
	}
	if day, ok := shared.ParseDay(end); ok {
		to = day.AddDate(0, 0, 1)
	}

	followUps, err := s.followUpRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	events := make([]CalendarEvent, len(followUps))
	for i, f := range followUps {
		events[i] = ToCalendarEvent(f)
	}
	return events, nil
}

// ForOrder lists the follow-ups attached to an order.
func (s *Service) ForOrder(ctx context.Context, orderID string) ([]*FollowUpResponse, error) {
	followUps, err := s.followUpRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]*FollowUpResponse, len(followUps))
	for i, f := range followUps {
		out[i] = ToFollowUpResponse(f)
	}
	return out, nil
}
