/*
Package order orchestrates the order use cases.

Every mutation runs in its own unit of work: the repositories pick the
transaction up from the context and the unit of work writes the events of
registered aggregates to the outbox before commit. Services never publish
events themselves.
*/
package order

import (
	"context"
	"strings"

	"backoffice/application/lineitem"
	"backoffice/application/listing"
	"backoffice/domain/client"
	"backoffice/domain/document"
	"backoffice/domain/followup"
	"backoffice/domain/order"
	"backoffice/domain/product"
	"backoffice/domain/shared"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
)

type Service struct {
	orderRepo    order.Repository
	followUpRepo followup.Repository
	references   *document.ReferenceService
	uowFactory   shared.UnitOfWorkFactory
}

func NewService(
	orderRepo order.Repository,
	clientRepo client.Repository,
	productRepo product.Repository,
	followUpRepo followup.Repository,
	uowFactory shared.UnitOfWorkFactory,
) *Service {
	return &Service{
		orderRepo:    orderRepo,
		followUpRepo: followUpRepo,
		references:   lineitem.NewReferenceService(clientRepo, productRepo),
		uowFactory:   uowFactory,
	}
}

// CreateOrder parses the submitted rows, checks the client and product
// references and stores the new order with its computed total. An empty
// item set is accepted.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	items, err := document.ParseItemRows("order", req.Items)
	if err != nil {
		return nil, lineitem.WithInput(err, req)
	}

	var o *order.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.references.Validate(ctx, "order", req.ClientID, items, req); err != nil {
			return err
		}

		created, err := order.NewOrder(order.PostOptions{
			ClientID: req.ClientID,
			Status:   req.Status,
			Notes:    req.Notes,
			Items:    items,
		})
		if err != nil {
			return lineitem.WithInput(err, req)
		}
		if err := s.orderRepo.Save(ctx, created); err != nil {
			return err
		}
		uow.RegisterNew(created)
		o = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created",
		zap.String("order_id", o.ID()),
		zap.String("client_id", o.ClientID()),
		zap.String("total", o.Total().String()),
	)
	return ToOrderResponse(o), nil
}

// UpdateOrder edits the header and replaces the item set in one unit.
func (s *Service) UpdateOrder(ctx context.Context, orderID string, req UpdateOrderRequest) (*OrderResponse, error) {
	items, err := document.ParseItemRows("order", req.Items)
	if err != nil {
		return nil, lineitem.WithInput(err, req)
	}

	return s.mutate(ctx, orderID, func(ctx context.Context, o *order.Order) error {
		// a soft-deleted client stays valid on orders that already carry it
		checkClient := req.ClientID
		if strings.TrimSpace(checkClient) == o.ClientID() {
			checkClient = ""
		}
		if err := s.references.Validate(ctx, "order", checkClient, items, req); err != nil {
			return err
		}
		if err := o.UpdateDetails(req.ClientID, req.Status, req.Notes); err != nil {
			return lineitem.WithInput(err, req)
		}
		o.ReplaceItems(items)
		return nil
	})
}

// ReplaceItems swaps the whole item set of an order and recomputes its
// total. An empty set leaves the order with a zero total.
func (s *Service) ReplaceItems(ctx context.Context, orderID string, req ReplaceItemsRequest) (*OrderResponse, error) {
	items, err := document.ParseItemRows("order", req.Items)
	if err != nil {
		return nil, lineitem.WithInput(err, req)
	}

	return s.mutate(ctx, orderID, func(ctx context.Context, o *order.Order) error {
		if err := s.references.Validate(ctx, "order", "", items, req); err != nil {
			return err
		}
		o.ReplaceItems(items)
		return nil
	})
}

func (s *Service) ChangeStatus(ctx context.Context, orderID string, req ChangeStatusRequest) (*OrderResponse, error) {
	return s.mutate(ctx, orderID, func(_ context.Context, o *order.Order) error {
		return o.ChangeStatus(req.Status)
	})
}

// mutate loads the order inside a unit of work, applies change and saves.
// The order is reloaded on every retry attempt.
func (s *Service) mutate(ctx context.Context, orderID string, change func(ctx context.Context, o *order.Order) error) (*OrderResponse, error) {
	var o *order.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		loaded, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := change(ctx, loaded); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, loaded); err != nil {
			return err
		}
		uow.RegisterDirty(loaded)
		o = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// DeleteOrder removes the order together with its items, payments and
// follow-ups. Either everything goes or nothing does.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	var removedFollowUps int64
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		removedFollowUps, err = s.followUpRepo.RemoveByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.orderRepo.Remove(ctx, orderID); err != nil {
			return err
		}
		o.MarkDeleted()
		uow.RegisterRemoved(o)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Order deleted",
		zap.String("order_id", orderID),
		zap.Int64("followups_removed", removedFollowUps),
	)
	return nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

func (s *Service) ListOrders(ctx context.Context, criteria shared.ListCriteria) (listing.Page[*OrderResponse], error) {
	orders, total, err := s.orderRepo.List(ctx, criteria)
	if err != nil {
		return listing.Page[*OrderResponse]{}, err
	}
	return listing.New(orders, total, criteria, ToOrderResponse), nil
}

func (s *Service) GetClientOrders(ctx context.Context, clientID string) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses, nil
}
