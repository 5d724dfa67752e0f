// Package client manages the client roster.
package client

import (
	"context"
	"time"

	"backoffice/application/lineitem"
	"backoffice/application/listing"
	"backoffice/domain/client"
	"backoffice/domain/shared"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
)

type ClientRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Company   string `json:"company" form:"company"`
	Address   string `json:"address" form:"address"`
	Notes     string `json:"notes" form:"notes"`
}

func (r ClientRequest) details() client.Details {
	return client.Details{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Address:   r.Address,
		Notes:     r.Notes,
	}
}

type ClientResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
		FullName:  c.FullName(),
		Email:     c.Email().Value(),
		Phone:     c.Phone(),
		Company:   c.Company(),
		Address:   c.Address(),
		Notes:     c.Notes(),
		IsDeleted: c.IsDeleted(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

type Service struct {
	clientRepo client.Repository
	uowFactory shared.UnitOfWorkFactory
}

func NewService(clientRepo client.Repository, uowFactory shared.UnitOfWorkFactory) *Service {
	return &Service{clientRepo: clientRepo, uowFactory: uowFactory}
}

// CreateClient fails with a DuplicateKeyError when the email is taken.
func (s *Service) CreateClient(ctx context.Context, req ClientRequest) (*ClientResponse, error) {
	var c *client.Client
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		created, err := client.NewClient(req.details())
		if err != nil {
			return lineitem.WithInput(err, req)
		}
		if err := s.clientRepo.Save(ctx, created); err != nil {
			return lineitem.WithInput(err, req)
		}
		uow.RegisterNew(created)
		c = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Client registered", zap.String("client_id", c.ID()))
	return ToClientResponse(c), nil
}

func (s *Service) UpdateClient(ctx context.Context, clientID string, req ClientRequest) (*ClientResponse, error) {
	var c *client.Client
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		loaded, err := s.clientRepo.FindByID(ctx, clientID)
		if err != nil {
			return err
		}
		if err := loaded.Update(req.details()); err != nil {
			return lineitem.WithInput(err, req)
		}
		if err := s.clientRepo.Save(ctx, loaded); err != nil {
			return lineitem.WithInput(err, req)
		}
		uow.RegisterDirty(loaded)
		c = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// DeleteClient only flags the client; its orders and quotes keep pointing
// at it. Deleting an already deleted client is a no-op.
func (s *Service) DeleteClient(ctx context.Context, clientID string) error {
	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		c, err := s.clientRepo.FindByID(ctx, clientID)
		if err != nil {
			return err
		}
		if !c.SoftDelete() {
			return nil
		}
		if err := s.clientRepo.Save(ctx, c); err != nil {
			return err
		}
		uow.RegisterRemoved(c)
		return nil
	})
}

func (s *Service) GetClient(ctx context.Context, clientID string) (*ClientResponse, error) {
	c, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(c), nil
}

// ListClients skips soft-deleted clients.
func (s *Service) ListClients(ctx context.Context, criteria shared.ListCriteria) (listing.Page[*ClientResponse], error) {
	clients, total, err := s.clientRepo.List(ctx, criteria)
	if err != nil {
		return listing.Page[*ClientResponse]{}, err
	}
	return listing.New(clients, total, criteria, ToClientResponse), nil
}
