/*
Package order is the order subdomain.

Order is the aggregate root. Its line items and payments are only reached
through it. All fields are private; behavior is exposed through methods and
state is rebuilt by repositories through ReconstructionDTO.

The cached total always equals the quantized sum of the item amounts:
every method that changes the item set recomputes it before returning.
Payments never touch the total; paid total and balance are derived live.
*/
package order

import (
	"fmt"
	"strings"
	"time"

	"backoffice/domain/document"
	"backoffice/domain/shared"

	"github.com/google/uuid"
)

// Status of an order. Any status may follow any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// ParseStatus defaults an empty status to pending.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StatusPending, true
	}
	for _, known := range Statuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// Order aggregate root.
type Order struct {
	id        string
	clientID  string
	status    Status
	total     shared.Money
	notes     string
	items     []document.LineItem
	payments  []*Payment
	version   int
	createdAt time.Time
	updatedAt time.Time

	events shared.EventRecorder
	isNew  bool
}

// PostOptions describes a new order.
type PostOptions struct {
	ClientID string
	Status   string
	Notes    string
	Items    []document.LineItem
}

// NewOrder is the only way to create an order. A missing client or an
// unknown status is a validation error; an empty item set is allowed.
func NewOrder(opts PostOptions) (*Order, error) {
	var violations shared.Violations
	clientID := strings.TrimSpace(opts.ClientID)
	if clientID == "" {
		violations.Add("client_id", "client is required")
	}
	status, ok := ParseStatus(opts.Status)
	if !ok {
		violations.Add("status", "unknown order status: "+opts.Status)
	}
	if err := violations.Err("order", nil); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	now := time.Now()
	o := &Order{
		id:        id.String(),
		clientID:  clientID,
		status:    status,
		notes:     strings.TrimSpace(opts.Notes),
		items:     document.Clone(opts.Items),
		createdAt: now,
		updatedAt: now,
		isNew:     true,
	}
	o.RecomputeTotal()
	o.events.Record(NewOrderPlacedEvent(o.id, o.clientID, o.total))

	return o, nil
}

// ============================================================================
// Reconstruction (repository use only)
// ============================================================================

type ReconstructionDTO struct {
	ID        string
	ClientID  string
	Status    Status
	Total     shared.Money
	Notes     string
	Items     []document.LineItem
	Payments  []*Payment
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO trusts the stored total; it does not recompute.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:        dto.ID,
		clientID:  dto.ClientID,
		status:    dto.Status,
		total:     dto.Total,
		notes:     dto.Notes,
		items:     dto.Items,
		payments:  dto.Payments,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// ============================================================================
// Items and totals
// ============================================================================

// ReplaceItems swaps the whole item set and recomputes the total.
// An empty set is legal and collapses the total to zero.
func (o *Order) ReplaceItems(items []document.LineItem) {
	o.items = document.Clone(items)
	o.RecomputeTotal()
	o.events.Record(NewOrderItemsReplacedEvent(o.id, len(o.items), o.total))
}

// RecomputeTotal sets the cached total from the current items.
func (o *Order) RecomputeTotal() shared.Money {
	o.total = document.Total(o.items)
	o.updatedAt = time.Now()
	return o.total
}

// PaidTotal is the sum of all recorded payments.
func (o *Order) PaidTotal() shared.Money {
	amounts := make([]shared.Money, len(o.payments))
	for i, p := range o.payments {
		amounts[i] = p.amount
	}
	return shared.Sum(amounts...)
}

// Balance is total minus paid total. Negative means overpaid.
func (o *Order) Balance() shared.Money {
	return o.total.Sub(o.PaidTotal())
}

// ============================================================================
// Header changes
// ============================================================================

// UpdateDetails edits client, status and notes in one step.
func (o *Order) UpdateDetails(clientID, status, notes string) error {
	var violations shared.Violations
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		violations.Add("client_id", "client is required")
	}
	st, ok := ParseStatus(status)
	if !ok {
		violations.Add("status", "unknown order status: "+status)
	}
	if err := violations.Err("order", nil); err != nil {
		return err
	}

	o.clientID = clientID
	o.notes = strings.TrimSpace(notes)
	o.setStatus(st)
	o.updatedAt = time.Now()
	return nil
}

// ChangeStatus moves the order to any status.
func (o *Order) ChangeStatus(status string) error {
	st, ok := ParseStatus(status)
	if !ok {
		return shared.NewValidationError("order", "status", "unknown order status: "+status)
	}
	o.setStatus(st)
	o.updatedAt = time.Now()
	return nil
}

func (o *Order) setStatus(st Status) {
	if st == o.status {
		return
	}
	from := o.status
	o.status = st
	o.events.Record(NewOrderStatusChangedEvent(o.id, from, st))
}

// MarkDeleted records the deletion event; the repository removes the rows.
func (o *Order) MarkDeleted() {
	o.events.Record(NewOrderDeletedEvent(o.id))
}

// ============================================================================
// Payments
// ============================================================================

// RecordPayment appends a payment. A non-positive amount fails with
// ErrInvalidAmount and leaves the order untouched.
func (o *Order) RecordPayment(in PaymentInput) (*Payment, error) {
	p, err := newPayment(o.id, in)
	if err != nil {
		return nil, err
	}
	o.payments = append(o.payments, p)
	o.events.Record(NewPaymentRecordedEvent(p))
	return p, nil
}

// RemovePayment drops a payment. Nothing forbids removing old payments.
func (o *Order) RemovePayment(paymentID string) (*Payment, error) {
	for i, p := range o.payments {
		if p.id == paymentID {
			o.payments = append(o.payments[:i], o.payments[i+1:]...)
			o.events.Record(NewPaymentRemovedEvent(p))
			return p, nil
		}
	}
	return nil, NewPaymentNotFoundError(paymentID)
}

// ============================================================================
// Persistence hooks
// ============================================================================

// IsNew is true until the first successful save.
func (o *Order) IsNew() bool { return o.isNew }

// MarkSaved is called by the repository after a successful write.
func (o *Order) MarkSaved() {
	if !o.isNew {
		o.version++
	}
	o.isNew = false
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string           { return o.id }
func (o *Order) ClientID() string     { return o.clientID }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Total() shared.Money  { return o.total }
func (o *Order) Notes() string        { return o.notes }
func (o *Order) Version() int         { return o.version }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Items returns a deep copy so callers cannot alter the aggregate.
func (o *Order) Items() []document.LineItem { return document.Clone(o.items) }

func (o *Order) Payments() []*Payment {
	payments := make([]*Payment, len(o.payments))
	copy(payments, o.payments)
	return payments
}

func (o *Order) PullEvents() []shared.DomainEvent { return o.events.PullEvents() }

var _ shared.AggregateRoot = (*Order)(nil)
