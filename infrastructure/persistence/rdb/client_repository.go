package rdb

import (
	"context"
	"errors"
	"strings"

	"backoffice/domain/client"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/rdb/po"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Save relies on the unique index on email; the caller's transaction is
// rolled back by the unit of work when it fires.
func (r *ClientRepository) Save(ctx context.Context, c *client.Client) error {
	clientPO := po.FromClientDomain(c)
	db := dbFrom(ctx, r.db)

	var err error
	if c.IsNew() {
		err = db.Create(clientPO).Error
	} else {
		result := db.Model(&po.ClientPO{}).
			Where("id = ? AND version = ?", c.ID(), c.Version()).
			Updates(map[string]any{
				"first_name": clientPO.FirstName,
				"last_name":  clientPO.LastName,
				"email":      clientPO.Email,
				"phone":      clientPO.Phone,
				"company":    clientPO.Company,
				"address":    clientPO.Address,
				"notes":      clientPO.Notes,
				"is_deleted": clientPO.IsDeleted,
				"version":    c.Version() + 1,
				"updated_at": clientPO.UpdatedAt,
			})
		err = checkVersionedUpdate(db, result, &po.ClientPO{}, c.ID(), client.NewClientNotFoundError, "client")
	}
	if err != nil {
		return translateWriteError(err, "client", "email", clientPO.Email)
	}

	c.MarkSaved()
	return nil
}

// FindByID also returns soft-deleted clients.
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	var clientPO po.ClientPO
	if err := dbFrom(ctx, r.db).First(&clientPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.NewClientNotFoundError(id)
		}
		return nil, err
	}
	return clientPO.ToDomain(), nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var clientPO po.ClientPO
	if err := dbFrom(ctx, r.db).First(&clientPO, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.NewClientNotFoundError(email)
		}
		return nil, err
	}
	return clientPO.ToDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*client.Client, int64, error) {
	c := criteria.Normalize()

	q := dbFrom(ctx, r.db).Model(&po.ClientPO{}).Where("is_deleted = ?", false)
	if strings.TrimSpace(c.Search) != "" {
		like := likePattern(c.Search)
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(company) LIKE ?",
			like, like, like, like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clientPOs []po.ClientPO
	if err := paginate(q.Order("created_at DESC").Order("id DESC"), c).Find(&clientPOs).Error; err != nil {
		return nil, 0, err
	}

	clients := make([]*client.Client, len(clientPOs))
	for i := range clientPOs {
		clients[i] = clientPOs[i].ToDomain()
	}
	return clients, total, nil
}

var _ client.Repository = (*ClientRepository)(nil)
