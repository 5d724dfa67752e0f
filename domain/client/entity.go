/*
Package client is the client roster. A client is never physically removed:
orders and quotes keep pointing at it after it is deleted, it just stops
being offered for new documents.
*/
package client

import (
	"fmt"
	"strings"
	"time"

	"backoffice/domain/shared"

	"github.com/google/uuid"
)

// Client aggregate root. It owns no child entities.
type Client struct {
	id        string
	firstName string
	lastName  string
	email     Email
	phone     string
	company   string
	address   string
	notes     string
	isDeleted bool
	version   int
	createdAt time.Time
	updatedAt time.Time

	events shared.EventRecorder
	isNew  bool
}

// Details is the editable part of a client.
type Details struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Address   string
	Notes     string
}

func (d Details) normalize() (Details, Email, error) {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Company = strings.TrimSpace(d.Company)
	d.Address = strings.TrimSpace(d.Address)
	d.Notes = strings.TrimSpace(d.Notes)

	var violations shared.Violations
	if d.FirstName == "" {
		violations.Add("first_name", "first name is required")
	}
	if d.LastName == "" {
		violations.Add("last_name", "last name is required")
	}
	email, err := NewEmail(d.Email)
	if err != nil {
		if strings.TrimSpace(d.Email) == "" {
			violations.Add("email", "email is required")
		} else {
			violations.Add("email", err.Error())
		}
	}
	return d, email, violations.Err("client", nil)
}

func NewClient(d Details) (*Client, error) {
	d, email, err := d.normalize()
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client ID: %w", err)
	}

	now := time.Now()
	c := &Client{
		id:        id.String(),
		firstName: d.FirstName,
		lastName:  d.LastName,
		email:     email,
		phone:     d.Phone,
		company:   d.Company,
		address:   d.Address,
		notes:     d.Notes,
		createdAt: now,
		updatedAt: now,
		isNew:     true,
	}
	c.events.Record(NewClientRegisteredEvent(c.id, email.Value()))
	return c, nil
}

// Update replaces every editable field. Deleted clients cannot be edited.
func (c *Client) Update(d Details) error {
	if c.isDeleted {
		return shared.NewConflictError("client", "client "+c.id+" is deleted")
	}
	d, email, err := d.normalize()
	if err != nil {
		return err
	}

	c.firstName = d.FirstName
	c.lastName = d.LastName
	c.email = email
	c.phone = d.Phone
	c.company = d.Company
	c.address = d.Address
	c.notes = d.Notes
	c.updatedAt = time.Now()
	c.events.Record(NewClientUpdatedEvent(c.id))
	return nil
}

// SoftDelete hides the client from listings and selection. It reports
// whether anything changed.
func (c *Client) SoftDelete() bool {
	if c.isDeleted {
		return false
	}
	c.isDeleted = true
	c.updatedAt = time.Now()
	c.events.Record(NewClientDeletedEvent(c.id))
	return true
}

// IsSelectable reports whether new orders or quotes may reference the client.
func (c *Client) IsSelectable() bool { return !c.isDeleted }

func (c *Client) FullName() string { return c.firstName + " " + c.lastName }

func (c *Client) IsNew() bool { return c.isNew }

func (c *Client) MarkSaved() {
	if !c.isNew {
		c.version++
	}
	c.isNew = false
}

func (c *Client) ID() string                       { return c.id }
func (c *Client) FirstName() string                { return c.firstName }
func (c *Client) LastName() string                 { return c.lastName }
func (c *Client) Email() Email                     { return c.email }
func (c *Client) Phone() string                    { return c.phone }
func (c *Client) Company() string                  { return c.company }
func (c *Client) Address() string                  { return c.address }
func (c *Client) Notes() string                    { return c.notes }
func (c *Client) IsDeleted() bool                  { return c.isDeleted }
func (c *Client) Version() int                     { return c.version }
func (c *Client) CreatedAt() time.Time             { return c.createdAt }
func (c *Client) UpdatedAt() time.Time             { return c.updatedAt }
func (c *Client) PullEvents() []shared.DomainEvent { return c.events.PullEvents() }

// ReconstructionDTO is for repository use only.
type ReconstructionDTO struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Address   string
	Notes     string
	IsDeleted bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO is for repository use only.
func RebuildFromDTO(dto ReconstructionDTO) *Client {
	return &Client{
		id:        dto.ID,
		firstName: dto.FirstName,
		lastName:  dto.LastName,
		email:     Email{value: dto.Email},
		phone:     dto.Phone,
		company:   dto.Company,
		address:   dto.Address,
		notes:     dto.Notes,
		isDeleted: dto.IsDeleted,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

var _ shared.AggregateRoot = (*Client)(nil)
