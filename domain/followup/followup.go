/*
Package followup schedules reminders against a client and, optionally, one
of its orders: calls to make, deliveries and collections.
*/
package followup

import (
	"fmt"
	"strings"
	"time"

	"backoffice/domain/shared"

	"github.com/google/uuid"
)

type Kind string

const (
	KindFollowUp   Kind = "follow_up"
	KindDelivery   Kind = "delivery"
	KindCollection Kind = "collection"
)

var Kinds = []Kind{KindFollowUp, KindDelivery, KindCollection}

// ParseKind defaults an empty kind to follow_up.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindFollowUp, true
	}
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// FollowUp aggregate root.
type FollowUp struct {
	id        string
	clientID  string
	orderID   *string
	kind      Kind
	title     string
	notes     string
	whenAt    time.Time
	done      bool
	version   int
	createdAt time.Time
	updatedAt time.Time

	events shared.EventRecorder
	isNew  bool
}

type Details struct {
	ClientID string
	OrderID  *string
	Kind     string
	Title    string
	Notes    string
	WhenAt   time.Time
}

type normalized struct {
	clientID string
	orderID  *string
	kind     Kind
	title    string
	notes    string
	whenAt   time.Time
}

func (d Details) normalize() (normalized, error) {
	n := normalized{
		clientID: strings.TrimSpace(d.ClientID),
		title:    strings.TrimSpace(d.Title),
		notes:    strings.TrimSpace(d.Notes),
		whenAt:   d.WhenAt,
	}
	if d.OrderID != nil {
		if id := strings.TrimSpace(*d.OrderID); id != "" {
			n.orderID = &id
		}
	}

	var violations shared.Violations
	if n.clientID == "" {
		violations.Add("client_id", "client is required")
	}
	if n.title == "" {
		violations.Add("title", "title is required")
	}
	if n.whenAt.IsZero() {
		violations.Add("when_at", "date and time are required")
	}
	kind, ok := ParseKind(d.Kind)
	if !ok {
		violations.Add("kind", "unknown follow-up kind: "+d.Kind)
	}
	n.kind = kind
	return n, violations.Err("followup", nil)
}

// Schedule creates an open follow-up.
func Schedule(d Details) (*FollowUp, error) {
	n, err := d.normalize()
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate follow-up ID: %w", err)
	}

	now := time.Now()
	f := &FollowUp{
		id:        id.String(),
		createdAt: now,
		isNew:     true,
	}
	f.apply(n, now)
	f.events.Record(NewFollowUpScheduledEvent(f.id, f.kind, f.whenAt))
	return f, nil
}

// Update replaces the editable fields and keeps the done flag.
func (f *FollowUp) Update(d Details) error {
	n, err := d.normalize()
	if err != nil {
		return err
	}
	f.apply(n, time.Now())
	return nil
}

func (f *FollowUp) apply(n normalized, now time.Time) {
	f.clientID = n.clientID
	f.orderID = n.orderID
	f.kind = n.kind
	f.title = n.title
	f.notes = n.notes
	f.whenAt = n.whenAt
	f.updatedAt = now
}

// MarkDone closes the follow-up and reports whether it was open.
func (f *FollowUp) MarkDone() bool {
	if f.done {
		return false
	}
	f.done = true
	f.updatedAt = time.Now()
	f.events.Record(NewFollowUpDoneEvent(f.id))
	return true
}

// Reopen reports whether the follow-up was done.
func (f *FollowUp) Reopen() bool {
	if !f.done {
		return false
	}
	f.done = false
	f.updatedAt = time.Now()
	return true
}

// Toggle flips the done flag.
func (f *FollowUp) Toggle() {
	if !f.MarkDone() {
		f.Reopen()
	}
}

func (f *FollowUp) IsNew() bool { return f.isNew }

func (f *FollowUp) MarkSaved() {
	if !f.isNew {
		f.version++
	}
	f.isNew = false
}

func (f *FollowUp) ID() string                       { return f.id }
func (f *FollowUp) ClientID() string                 { return f.clientID }
func (f *FollowUp) Kind() Kind                       { return f.kind }
func (f *FollowUp) Title() string                    { return f.title }
func (f *FollowUp) Notes() string                    { return f.notes }
func (f *FollowUp) WhenAt() time.Time                { return f.whenAt }
func (f *FollowUp) Done() bool                       { return f.done }
func (f *FollowUp) Version() int                     { return f.version }
func (f *FollowUp) CreatedAt() time.Time             { return f.createdAt }
func (f *FollowUp) UpdatedAt() time.Time             { return f.updatedAt }
func (f *FollowUp) PullEvents() []shared.DomainEvent { return f.events.PullEvents() }

func (f *FollowUp) OrderID() *string {
	if f.orderID == nil {
		return nil
	}
	id := *f.orderID
	return &id
}

// ReconstructionDTO is for repository use only.
type ReconstructionDTO struct {
	ID        string
	ClientID  string
	OrderID   *string
	Kind      Kind
	Title     string
	Notes     string
	WhenAt    time.Time
	Done      bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func RebuildFromDTO(dto ReconstructionDTO) *FollowUp {
	return &FollowUp{
		id:        dto.ID,
		clientID:  dto.ClientID,
		orderID:   dto.OrderID,
		kind:      dto.Kind,
		title:     dto.Title,
		notes:     dto.Notes,
		whenAt:    dto.WhenAt,
		done:      dto.Done,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

var _ shared.AggregateRoot = (*FollowUp)(nil)
