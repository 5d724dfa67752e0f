package po

import (
	"time"

	"backoffice/domain/client"
)

type ClientPO struct {
	ID        string `gorm:"primaryKey;size:64"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Phone     string `gorm:"size:30"`
	Company   string `gorm:"size:150"`
	Address   string `gorm:"size:255"`
	Notes     string `gorm:"type:text"`
	IsDeleted bool   `gorm:"index;not null;default:false"`
	Version   int    `gorm:"default:0;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClientPO) TableName() string {
	return "clients"
}

func FromClientDomain(c *client.Client) *ClientPO {
	return &ClientPO{
		ID:        c.ID(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
		Email:     c.Email().Value(),
		Phone:     c.Phone(),
		Company:   c.Company(),
		Address:   c.Address(),
		Notes:     c.Notes(),
		IsDeleted: c.IsDeleted(),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func (po *ClientPO) ToDomain() *client.Client {
	return client.RebuildFromDTO(client.ReconstructionDTO{
		ID:        po.ID,
		FirstName: po.FirstName,
		LastName:  po.LastName,
		Email:     po.Email,
		Phone:     po.Phone,
		Company:   po.Company,
		Address:   po.Address,
		Notes:     po.Notes,
		IsDeleted: po.IsDeleted,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
