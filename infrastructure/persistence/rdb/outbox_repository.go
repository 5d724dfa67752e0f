package rdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/rdb/po"

	"gorm.io/gorm"
)

// ErrEventNotClaimable is returned when another worker claimed the event first.
var ErrEventNotClaimable = errors.New("outbox event not found or already being processed")

// OutboxRepository GORM implementation of the transactional outbox.
// Timestamps are written from Go rather than NOW() so that the same
// statements run on sqlite.
type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// SaveEvent uses the unit of work transaction from ctx when present and
// its own transaction otherwise.
func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return fmt.Errorf("invalid domain event: %w", err)
	}

	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		outboxPO, err := po.FromDomainEvent(event)
		if err != nil {
			return fmt.Errorf("failed to convert domain event: %w", err)
		}
		if err := tx.Create(outboxPO).Error; err != nil {
			return fmt.Errorf("failed to save event to outbox: %w", err)
		}
		return nil
	})
}

// GetPendingEvents returns the oldest pending events first.
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO
	err := dbFrom(ctx, r.db).
		Where("status = ?", string(po.EventStatusPending)).
		Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

// MarkEventProcessing claims a pending event; the status guard keeps two
// workers from publishing the same event.
func (r *OutboxRepository) MarkEventProcessing(ctx context.Context, eventID string) error {
	result := dbFrom(ctx, r.db).Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, string(po.EventStatusPending)).
		Updates(map[string]any{
			"status":     string(po.EventStatusProcessing),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrEventNotClaimable, eventID)
	}
	return nil
}

func (r *OutboxRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	result := dbFrom(ctx, r.db).Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":     string(po.EventStatusPublished),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}
	return nil
}

// MarkEventFailed puts the event back to pending until maxRetries attempts
// have failed, then parks it as failed.
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error {
	db := dbFrom(ctx, r.db)

	var event po.OutboxEventPO
	if err := db.First(&event, "id = ?", eventID).Error; err != nil {
		return fmt.Errorf("failed to find event: %w", err)
	}

	newRetryCount := event.RetryCount + 1
	newStatus := string(po.EventStatusFailed)
	if newRetryCount < maxRetries {
		newStatus = string(po.EventStatusPending)
	}

	return db.Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":      newStatus,
			"retry_count": newRetryCount,
			"updated_at":  time.Now(),
		}).Error
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
