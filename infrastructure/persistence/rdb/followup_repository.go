package rdb

import (
	"context"
	"errors"
	"time"

	"backoffice/domain/followup"
	"backoffice/infrastructure/persistence/rdb/po"

	"gorm.io/gorm"
)

type FollowUpRepository struct {
	db *gorm.DB
}

func NewFollowUpRepository(db *gorm.DB) *FollowUpRepository {
	return &FollowUpRepository{db: db}
}

func (r *FollowUpRepository) Save(ctx context.Context, f *followup.FollowUp) error {
	followUpPO := po.FromFollowUpDomain(f)
	db := dbFrom(ctx, r.db)

	if f.IsNew() {
		if err := db.Create(followUpPO).Error; err != nil {
			return err
		}
	} else {
		result := db.Model(&po.FollowUpPO{}).
			Where("id = ? AND version = ?", f.ID(), f.Version()).
			Updates(map[string]any{
				"client_id":  followUpPO.ClientID,
				"order_id":   followUpPO.OrderID,
				"kind":       followUpPO.Kind,
				"title":      followUpPO.Title,
				"notes":      followUpPO.Notes,
				"when_at":    followUpPO.WhenAt,
				"done":       followUpPO.Done,
				"version":    f.Version() + 1,
				"updated_at": followUpPO.UpdatedAt,
			})
		if err := checkVersionedUpdate(db, result, &po.FollowUpPO{}, f.ID(), followup.NewFollowUpNotFoundError, "followup"); err != nil {
			return err
		}
	}

	f.MarkSaved()
	return nil
}

func (r *FollowUpRepository) FindByID(ctx context.Context, id string) (*followup.FollowUp, error) {
	var followUpPO po.FollowUpPO
	if err := dbFrom(ctx, r.db).First(&followUpPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, followup.NewFollowUpNotFoundError(id)
		}
		return nil, err
	}
	return followUpPO.ToDomain(), nil
}

func (r *FollowUpRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*followup.FollowUp, error) {
	q := dbFrom(ctx, r.db).Model(&po.FollowUpPO{})
	if !from.IsZero() {
		q = q.Where("when_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("when_at < ?", to)
	}

	var followUpPOs []po.FollowUpPO
	if err := q.Order("when_at ASC").Order("id ASC").Find(&followUpPOs).Error; err != nil {
		return nil, err
	}
	return toFollowUps(followUpPOs), nil
}

func (r *FollowUpRepository) FindByOrderID(ctx context.Context, orderID string) ([]*followup.FollowUp, error) {
	var followUpPOs []po.FollowUpPO
	if err := dbFrom(ctx, r.db).Where("order_id = ?", orderID).
		Order("when_at ASC").Find(&followUpPOs).Error; err != nil {
		return nil, err
	}
	return toFollowUps(followUpPOs), nil
}

func (r *FollowUpRepository) Remove(ctx context.Context, id string) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&po.FollowUpPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return followup.NewFollowUpNotFoundError(id)
	}
	return nil
}

func (r *FollowUpRepository) RemoveByOrderID(ctx context.Context, orderID string) (int64, error) {
	result := dbFrom(ctx, r.db).Where("order_id = ?", orderID).Delete(&po.FollowUpPO{})
	return result.RowsAffected, result.Error
}

func toFollowUps(followUpPOs []po.FollowUpPO) []*followup.FollowUp {
	out := make([]*followup.FollowUp, len(followUpPOs))
	for i := range followUpPOs {
		out[i] = followUpPOs[i].ToDomain()
	}
	return out
}

var _ followup.Repository = (*FollowUpRepository)(nil)
