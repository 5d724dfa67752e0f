// Package payment records and removes payments against orders.
package payment

import (
	"context"
	"time"

	"backoffice/application/lineitem"
	apporder "backoffice/application/order"
	"backoffice/domain/order"
	"backoffice/domain/shared"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
)

// RecordPaymentRequest carries raw form values. A blank PaidAt means now.
type RecordPaymentRequest struct {
	Amount    string `json:"amount" form:"amount"`
	Method    string `json:"method" form:"method"`
	Reference string `json:"reference" form:"reference"`
	Notes     string `json:"notes" form:"notes"`
	PaidAt    string `json:"paid_at" form:"paid_at"`
}

// Result is the payment together with the order totals it changes.
type Result struct {
	Payment   apporder.PaymentResponse `json:"payment"`
	OrderID   string                   `json:"order_id"`
	Total     shared.Money             `json:"total"`
	PaidTotal shared.Money             `json:"paid_total"`
	Balance   shared.Money             `json:"balance"`
}

type Service struct {
	orderRepo  order.Repository
	uowFactory shared.UnitOfWorkFactory
	now        func() time.Time
}

func NewService(orderRepo order.Repository, uowFactory shared.UnitOfWorkFactory) *Service {
	return &Service{orderRepo: orderRepo, uowFactory: uowFactory, now: time.Now}
}

// RecordPayment inserts one payment row. The order row is read but never
// rewritten, so its total and version stay as they are. A blank or
// malformed amount parses to zero and is rejected like any non-positive
// amount.
func (s *Service) RecordPayment(ctx context.Context, orderID string, req RecordPaymentRequest) (*Result, error) {
	paidAt, ok := shared.ParseTimestamp(req.PaidAt)
	if !ok {
		err := shared.NewValidationError("payment", "paid_at", "invalid payment date: "+req.PaidAt)
		return nil, lineitem.WithInput(err, req)
	}
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	var (
		o *order.Order
		p *order.Payment
	)
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		loaded, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		recorded, err := loaded.RecordPayment(order.PaymentInput{
			Amount:    shared.ParseMoney(req.Amount),
			Method:    req.Method,
			Reference: req.Reference,
			Notes:     req.Notes,
			PaidAt:    paidAt,
		})
		if err != nil {
			return lineitem.WithInput(err, req)
		}
		if err := s.orderRepo.AddPayment(ctx, recorded); err != nil {
			return err
		}
		uow.RegisterDirty(loaded)
		o, p = loaded, recorded
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment recorded",
		zap.String("order_id", o.ID()),
		zap.String("payment_id", p.ID()),
		zap.String("amount", p.Amount().String()),
		zap.String("balance", o.Balance().String()),
	)
	return newResult(o, p), nil
}

// DeletePayment removes one payment and reports the order it belonged to.
func (s *Service) DeletePayment(ctx context.Context, paymentID string) (*Result, error) {
	var (
		o *order.Order
		p *order.Payment
	)
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		found, err := s.orderRepo.FindPaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		loaded, err := s.orderRepo.FindByID(ctx, found.OrderID())
		if err != nil {
			return err
		}
		removed, err := loaded.RemovePayment(paymentID)
		if err != nil {
			return err
		}
		if err := s.orderRepo.RemovePayment(ctx, paymentID); err != nil {
			return err
		}
		uow.RegisterDirty(loaded)
		o, p = loaded, removed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newResult(o, p), nil
}

// ListPayments returns the payments of an order, oldest first.
func (s *Service) ListPayments(ctx context.Context, orderID string) ([]apporder.PaymentResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments := o.Payments()
	out := make([]apporder.PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = apporder.ToPaymentResponse(p)
	}
	return out, nil
}

func newResult(o *order.Order, p *order.Payment) *Result {
	return &Result{
		Payment:   apporder.ToPaymentResponse(p),
		OrderID:   o.ID(),
		Total:     o.Total(),
		PaidTotal: o.PaidTotal(),
		Balance:   o.Balance(),
	}
}
