/*
Package quote orchestrates the quote use cases, including the conversion
of a quote into an order and the periodic expiry of overdue quotes.
*/
package quote

import (
	"context"
	"strings"
	"time"

	"backoffice/application/lineitem"
	"backoffice/application/listing"
	apporder "backoffice/application/order"
	"backoffice/domain/client"
	"backoffice/domain/document"
	"backoffice/domain/order"
	"backoffice/domain/product"
	"backoffice/domain/quote"
	"backoffice/domain/shared"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
)

type Service struct {
	quoteRepo  quote.Repository
	orderRepo  order.Repository
	references *document.ReferenceService
	uowFactory shared.UnitOfWorkFactory
}

func NewService(
	quoteRepo quote.Repository,
	orderRepo order.Repository,
	clientRepo client.Repository,
	productRepo product.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *Service {
	return &Service{
		quoteRepo:  quoteRepo,
		orderRepo:  orderRepo,
		references: lineitem.NewReferenceService(clientRepo, productRepo),
		uowFactory: uowFactory,
	}
}

// CreateQuote requires a client and at least one described item row.
func (s *Service) CreateQuote(ctx context.Context, req CreateQuoteRequest) (*QuoteResponse, error) {
	items, err := document.ParseItemRows("quote", req.Items)
	if err != nil {
		return nil, lineitem.WithInput(err, req)
	}

	var q *quote.Quote
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.references.Validate(ctx, "quote", req.ClientID, items, req); err != nil {
			return err
		}
		created, err := quote.NewQuote(quote.PostOptions{
			ClientID:   req.ClientID,
			Status:     req.Status,
			Notes:      req.Notes,
			ValidUntil: parseValidUntil(req.ValidUntil),
			Items:      items,
		})
		if err != nil {
			return lineitem.WithInput(err, req)
		}
		if err := s.quoteRepo.Save(ctx, created); err != nil {
			return err
		}
		uow.RegisterNew(created)
		q = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quote created",
		zap.String("quote_id", q.ID()),
		zap.String("client_id", q.ClientID()),
		zap.String("total", q.Total().String()),
	)
	return ToQuoteResponse(q), nil
}

// UpdateQuote edits the header and replaces the item set in one unit.
func (s *Service) UpdateQuote(ctx context.Context, quoteID string, req UpdateQuoteRequest) (*QuoteResponse, error) {
	items, err := document.ParseItemRows("quote", req.Items)
	if err != nil {
		return nil, lineitem.WithInput(err, req)
	}

	return s.mutate(ctx, quoteID, func(ctx context.Context, q *quote.Quote) error {
		checkClient := req.ClientID
		if strings.TrimSpace(checkClient) == q.ClientID() {
			checkClient = ""
		}
		if err := s.references.Validate(ctx, "quote", checkClient, items, req); err != nil {
			return err
		}
		if err := q.UpdateDetails(req.ClientID, req.Status, req.Notes, parseValidUntil(req.ValidUntil)); err != nil {
			return lineitem.WithInput(err, req)
		}
		return lineitem.WithInput(q.ReplaceItems(items), req)
	})
}

func (s *Service) ReplaceItems(ctx context.Context, quoteID string, req ReplaceItemsRequest) (*QuoteResponse, error) {
	items, err := document.ParseItemRows("quote", req.Items)
	if err != nil {
		return nil, lineitem.WithInput(err, req)
	}

	return s.mutate(ctx, quoteID, func(ctx context.Context, q *quote.Quote) error {
		if err := s.references.Validate(ctx, "quote", "", items, req); err != nil {
			return err
		}
		return lineitem.WithInput(q.ReplaceItems(items), req)
	})
}

func (s *Service) mutate(ctx context.Context, quoteID string, change func(ctx context.Context, q *quote.Quote) error) (*QuoteResponse, error) {
	var q *quote.Quote
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		loaded, err := s.quoteRepo.FindByID(ctx, quoteID)
		if err != nil {
			return err
		}
		if err := change(ctx, loaded); err != nil {
			return err
		}
		if err := s.quoteRepo.Save(ctx, loaded); err != nil {
			return err
		}
		uow.RegisterDirty(loaded)
		q = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToQuoteResponse(q), nil
}

// ConvertToOrder creates a pending order from the quote and marks the
// quote accepted. The order insert and the quote update commit together;
// on any failure neither happens. Converting the same quote again creates
// another order.
func (s *Service) ConvertToOrder(ctx context.Context, quoteID string) (*apporder.OrderResponse, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		q, err := s.quoteRepo.FindByID(ctx, quoteID)
		if err != nil {
			return err
		}
		created, err := q.ToOrder()
		if err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, created); err != nil {
			return err
		}
		if err := s.quoteRepo.Save(ctx, q); err != nil {
			return err
		}
		uow.RegisterNew(created)
		uow.RegisterDirty(q)
		o = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quote converted to order",
		zap.String("quote_id", quoteID),
		zap.String("order_id", o.ID()),
		zap.String("total", o.Total().String()),
	)
	return apporder.ToOrderResponse(o), nil
}

func (s *Service) DeleteQuote(ctx context.Context, quoteID string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		q, err := s.quoteRepo.FindByID(ctx, quoteID)
		if err != nil {
			return err
		}
		if err := s.quoteRepo.Remove(ctx, quoteID); err != nil {
			return err
		}
		q.MarkDeleted()
		uow.RegisterRemoved(q)
		return nil
	})
}

func (s *Service) GetQuote(ctx context.Context, quoteID string) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return ToQuoteResponse(q), nil
}

func (s *Service) ListQuotes(ctx context.Context, criteria shared.ListCriteria) (listing.Page[*QuoteResponse], error) {
	quotes, total, err := s.quoteRepo.List(ctx, criteria)
	if err != nil {
		return listing.Page[*QuoteResponse]{}, err
	}
	return listing.New(quotes, total, criteria, ToQuoteResponse), nil
}

func (s *Service) GetClientQuotes(ctx context.Context, clientID string) ([]*QuoteResponse, error) {
	quotes, err := s.quoteRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]*QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = ToQuoteResponse(q)
	}
	return out, nil
}

// ExpireOverdue moves up to batchSize open quotes whose validity date lies
// before the day of at to expired, in one unit of work, and reports how
// many it moved.
func (s *Service) ExpireOverdue(ctx context.Context, at time.Time, batchSize int) (int, error) {
	expired := 0
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		expired = 0
		quotes, err := s.quoteRepo.FindExpirable(ctx, at, batchSize)
		if err != nil {
			return err
		}
		for _, q := range quotes {
			if !q.Expire(at) {
				continue
			}
			if err := s.quoteRepo.Save(ctx, q); err != nil {
				return err
			}
			uow.RegisterDirty(q)
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logger.Info("Quotes expired", zap.Int("count", expired), zap.Time("at", at))
	}
	return expired, nil
}
