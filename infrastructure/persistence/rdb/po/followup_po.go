package po

import (
	"time"

	"backoffice/domain/followup"
)

type FollowUpPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ClientID  string    `gorm:"size:64;index;not null"`
	OrderID   *string   `gorm:"size:64;index"`
	Kind      string    `gorm:"size:20;not null"`
	Title     string    `gorm:"size:200;not null"`
	Notes     string    `gorm:"type:text"`
	WhenAt    time.Time `gorm:"index;not null"`
	Done      bool      `gorm:"not null;default:false"`
	Version   int       `gorm:"default:0;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FollowUpPO) TableName() string {
	return "followups"
}

func FromFollowUpDomain(f *followup.FollowUp) *FollowUpPO {
	return &FollowUpPO{
		ID:        f.ID(),
		ClientID:  f.ClientID(),
		OrderID:   f.OrderID(),
		Kind:      string(f.Kind()),
		Title:     f.Title(),
		Notes:     f.Notes(),
		WhenAt:    f.WhenAt(),
		Done:      f.Done(),
		Version:   f.Version(),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	}
}

func (po *FollowUpPO) ToDomain() *followup.FollowUp {
	return followup.RebuildFromDTO(followup.ReconstructionDTO{
		ID:        po.ID,
		ClientID:  po.ClientID,
		OrderID:   po.OrderID,
		Kind:      followup.Kind(po.Kind),
		Title:     po.Title,
		Notes:     po.Notes,
		WhenAt:    po.WhenAt,
		Done:      po.Done,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
