/*
Package quote is the quote subdomain. A quote is priced like an order but
binds nobody until it is converted; conversion produces an independent
order and marks the quote accepted.
*/
package quote

import (
	"fmt"
	"strings"
	"time"

	"backoffice/domain/document"
	"backoffice/domain/order"
	"backoffice/domain/shared"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

var Statuses = []Status{StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired}

// ParseStatus defaults an empty status to draft.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st == "" {
		return StatusDraft, true
	}
	for _, known := range Statuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// Quote aggregate root.
type Quote struct {
	id         string
	clientID   string
	status     Status
	validUntil *time.Time
	total      shared.Money
	notes      string
	items      []document.LineItem
	version    int
	createdAt  time.Time
	updatedAt  time.Time

	events shared.EventRecorder
	isNew  bool
}

type PostOptions struct {
	ClientID   string
	Status     string
	Notes      string
	ValidUntil *time.Time
	Items      []document.LineItem
}

// NewQuote requires a client and at least one described item.
func NewQuote(opts PostOptions) (*Quote, error) {
	var violations shared.Violations
	clientID := strings.TrimSpace(opts.ClientID)
	if clientID == "" {
		violations.Add("client_id", "client is required")
	}
	status, ok := ParseStatus(opts.Status)
	if !ok {
		violations.Add("status", "unknown quote status: "+opts.Status)
	}
	if !document.HasDescribedItem(opts.Items) {
		violations.Add("items", "add at least one item with a description")
	}
	if err := violations.Err("quote", nil); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote ID: %w", err)
	}

	now := time.Now()
	q := &Quote{
		id:         id.String(),
		clientID:   clientID,
		status:     status,
		validUntil: truncateDate(opts.ValidUntil),
		notes:      strings.TrimSpace(opts.Notes),
		items:      document.Clone(opts.Items),
		createdAt:  now,
		updatedAt:  now,
		isNew:      true,
	}
	q.RecomputeTotal()
	q.events.Record(NewQuoteCreatedEvent(q.id, q.clientID, q.total))
	return q, nil
}

type ReconstructionDTO struct {
	ID         string
	ClientID   string
	Status     Status
	ValidUntil *time.Time
	Total      shared.Money
	Notes      string
	Items      []document.LineItem
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RebuildFromDTO is for repository use only.
func RebuildFromDTO(dto ReconstructionDTO) *Quote {
	return &Quote{
		id:         dto.ID,
		clientID:   dto.ClientID,
		status:     dto.Status,
		validUntil: dto.ValidUntil,
		total:      dto.Total,
		notes:      dto.Notes,
		items:      dto.Items,
		version:    dto.Version,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
	}
}

// ReplaceItems swaps the whole item set and recomputes the total. The new
// set must still contain a described item.
func (q *Quote) ReplaceItems(items []document.LineItem) error {
	if !document.HasDescribedItem(items) {
		return shared.NewValidationError("quote", "items", "add at least one item with a description")
	}
	q.items = document.Clone(items)
	q.RecomputeTotal()
	q.events.Record(NewQuoteItemsReplacedEvent(q.id, len(q.items), q.total))
	return nil
}

func (q *Quote) RecomputeTotal() shared.Money {
	q.total = document.Total(q.items)
	q.updatedAt = time.Now()
	return q.total
}

// UpdateDetails edits client, status, notes and validity in one step.
func (q *Quote) UpdateDetails(clientID, status, notes string, validUntil *time.Time) error {
	var violations shared.Violations
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		violations.Add("client_id", "client is required")
	}
	st, ok := ParseStatus(status)
	if !ok {
		violations.Add("status", "unknown quote status: "+status)
	}
	if err := violations.Err("quote", nil); err != nil {
		return err
	}

	q.clientID = clientID
	q.status = st
	q.notes = strings.TrimSpace(notes)
	q.validUntil = truncateDate(validUntil)
	q.updatedAt = time.Now()
	return nil
}

// ToOrder builds a new pending order from the quote. Items are deep-copied
// so later edits to the quote never reach the order. The quote becomes
// accepted if it is not already. Nothing is persisted here, and nothing
// stops a second conversion from producing a second order.
func (q *Quote) ToOrder() (*order.Order, error) {
	if len(q.items) == 0 {
		return nil, NewNoItemsError(q.id)
	}

	o, err := order.NewOrder(order.PostOptions{
		ClientID: q.clientID,
		Status:   string(order.StatusPending),
		Notes:    q.notes,
		Items:    document.Clone(q.items),
	})
	if err != nil {
		return nil, err
	}

	if q.status != StatusAccepted {
		q.status = StatusAccepted
	}
	q.updatedAt = time.Now()
	q.events.Record(NewQuoteConvertedEvent(q.id, o.ID()))
	return o, nil
}

// IsExpired reports whether the validity date lies before the day of at.
// Quotes without a validity date never expire.
func (q *Quote) IsExpired(at time.Time) bool {
	if q.validUntil == nil {
		return false
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return q.validUntil.Before(day)
}

// Expire moves an open (draft or sent) quote past its validity date to
// expired and reports whether it did.
func (q *Quote) Expire(at time.Time) bool {
	if q.status != StatusDraft && q.status != StatusSent {
		return false
	}
	if !q.IsExpired(at) {
		return false
	}
	q.status = StatusExpired
	q.updatedAt = time.Now()
	q.events.Record(NewQuoteExpiredEvent(q.id))
	return true
}

func (q *Quote) MarkDeleted() {
	q.events.Record(NewQuoteDeletedEvent(q.id))
}

func (q *Quote) IsNew() bool { return q.isNew }

func (q *Quote) MarkSaved() {
	if !q.isNew {
		q.version++
	}
	q.isNew = false
}

func (q *Quote) ID() string                       { return q.id }
func (q *Quote) ClientID() string                 { return q.clientID }
func (q *Quote) Status() Status                   { return q.status }
func (q *Quote) Total() shared.Money              { return q.total }
func (q *Quote) Notes() string                    { return q.notes }
func (q *Quote) Version() int                     { return q.version }
func (q *Quote) CreatedAt() time.Time             { return q.createdAt }
func (q *Quote) UpdatedAt() time.Time             { return q.updatedAt }
func (q *Quote) Items() []document.LineItem       { return document.Clone(q.items) }
func (q *Quote) PullEvents() []shared.DomainEvent { return q.events.PullEvents() }

func (q *Quote) ValidUntil() *time.Time {
	if q.validUntil == nil {
		return nil
	}
	v := *q.validUntil
	return &v
}

// truncateDate keeps only the calendar date, in UTC.
func truncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

var _ shared.AggregateRoot = (*Quote)(nil)
