package order

import (
	"fmt"
	"strings"
	"time"

	"backoffice/domain/shared"

	"github.com/google/uuid"
)

// Method is how a payment was received.
type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodCard     Method = "card"
	MethodOther    Method = "other"
)

// ParseMethod defaults an empty method to cash.
func ParseMethod(s string) (Method, bool) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MethodCash, true
	case MethodCash, MethodTransfer, MethodCard, MethodOther:
		return m, true
	default:
		return "", false
	}
}

// Payment is money received against an order. It belongs to exactly one
// order and never changes the order's total.
type Payment struct {
	id        string
	orderID   string
	amount    shared.Money
	method    Method
	reference string
	notes     string
	paidAt    time.Time
	createdAt time.Time
}

// PaymentInput carries an already parsed payment submission.
// A zero PaidAt means "now".
type PaymentInput struct {
	Amount    shared.Money
	Method    string
	Reference string
	Notes     string
	PaidAt    time.Time
}

func newPayment(orderID string, in PaymentInput) (*Payment, error) {
	amount := in.Amount.Quantize()
	if !amount.IsPositive() || !amount.Fits() {
		return nil, NewInvalidAmountError(amount)
	}
	method, ok := ParseMethod(in.Method)
	if !ok {
		return nil, shared.NewValidationError("payment", "method", "unknown payment method: "+in.Method)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment ID: %w", err)
	}

	now := time.Now()
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}

	return &Payment{
		id:        id.String(),
		orderID:   orderID,
		amount:    amount,
		method:    method,
		reference: strings.TrimSpace(in.Reference),
		notes:     strings.TrimSpace(in.Notes),
		paidAt:    paidAt,
		createdAt: now,
	}, nil
}

// PaymentReconstructionDTO is for repository use only.
type PaymentReconstructionDTO struct {
	ID        string
	OrderID   string
	Amount    shared.Money
	Method    Method
	Reference string
	Notes     string
	PaidAt    time.Time
	CreatedAt time.Time
}

func RebuildPaymentFromDTO(dto PaymentReconstructionDTO) *Payment {
	return &Payment{
		id:        dto.ID,
		orderID:   dto.OrderID,
		amount:    dto.Amount,
		method:    dto.Method,
		reference: dto.Reference,
		notes:     dto.Notes,
		paidAt:    dto.PaidAt,
		createdAt: dto.CreatedAt,
	}
}

func (p *Payment) ID() string           { return p.id }
func (p *Payment) OrderID() string      { return p.orderID }
func (p *Payment) Amount() shared.Money { return p.amount }
func (p *Payment) Method() Method       { return p.method }
func (p *Payment) Reference() string    { return p.reference }
func (p *Payment) Notes() string        { return p.notes }
func (p *Payment) PaidAt() time.Time    { return p.paidAt }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
