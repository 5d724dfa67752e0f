package rdb

import (
	"context"
	"errors"
	"strings"
	"time"

	"backoffice/domain/quote"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/rdb/po"

	"gorm.io/gorm"
)

// QuoteRepository GORM implementation of quote.Repository. It follows the
// order save strategy: versioned row update, then item rows replaced.
type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	quotePO, itemPOs := po.FromQuoteDomain(q)

	err := inTx(ctx, r.db, func(tx *gorm.DB) error {
		if q.IsNew() {
			if err := tx.Create(quotePO).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&po.QuotePO{}).
				Where("id = ? AND version = ?", q.ID(), q.Version()).
				Updates(map[string]any{
					"client_id":   quotePO.ClientID,
					"status":      quotePO.Status,
					"valid_until": quotePO.ValidUntil,
					"total":       quotePO.Total,
					"notes":       quotePO.Notes,
					"version":     q.Version() + 1,
					"updated_at":  quotePO.UpdatedAt,
				})
			if err := checkVersionedUpdate(tx, result, &po.QuotePO{}, q.ID(), quote.NewQuoteNotFoundError, "quote"); err != nil {
				return err
			}
		}

		if err := tx.Where("quote_id = ?", q.ID()).Delete(&po.QuoteItemPO{}).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	q.MarkSaved()
	return nil
}

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*quote.Quote, error) {
	db := dbFrom(ctx, r.db)

	var quotePO po.QuotePO
	if err := db.First(&quotePO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, quote.NewQuoteNotFoundError(id)
		}
		return nil, err
	}

	quotes, err := r.hydrate(db, []po.QuotePO{quotePO})
	if err != nil {
		return nil, err
	}
	return quotes[0], nil
}

func (r *QuoteRepository) FindByClientID(ctx context.Context, clientID string) ([]*quote.Quote, error) {
	db := dbFrom(ctx, r.db)

	var quotePOs []po.QuotePO
	if err := db.Where("client_id = ?", clientID).
		Order("created_at DESC").Order("id DESC").
		Find(&quotePOs).Error; err != nil {
		return nil, err
	}
	return r.hydrate(db, quotePOs)
}

func (r *QuoteRepository) List(ctx context.Context, criteria shared.ListCriteria) ([]*quote.Quote, int64, error) {
	db := dbFrom(ctx, r.db)
	c := criteria.Normalize()

	q := db.Model(&po.QuotePO{})
	if status := strings.TrimSpace(c.Status); status != "" {
		q = q.Where("quotes.status = ?", status)
	}
	if strings.TrimSpace(c.Search) != "" {
		like := likePattern(c.Search)
		q = q.Joins("JOIN clients ON clients.id = quotes.client_id").
			Where("LOWER(clients.first_name) LIKE ? OR LOWER(clients.last_name) LIKE ? OR LOWER(clients.email) LIKE ?", like, like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotePOs []po.QuotePO
	if err := paginate(q.Select("quotes.*").Order("quotes.created_at DESC").Order("quotes.id DESC"), c).
		Find(&quotePOs).Error; err != nil {
		return nil, 0, err
	}

	quotes, err := r.hydrate(db, quotePOs)
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// FindExpirable returns draft or sent quotes whose validity date is before
// day, oldest validity first.
func (r *QuoteRepository) FindExpirable(ctx context.Context, day time.Time, limit int) ([]*quote.Quote, error) {
	db := dbFrom(ctx, r.db)
	cutoff := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var quotePOs []po.QuotePO
	if err := db.Where("status IN ? AND valid_until IS NOT NULL AND valid_until < ?",
		[]string{string(quote.StatusDraft), string(quote.StatusSent)}, cutoff).
		Order("valid_until").Order("id").
		Limit(limit).
		Find(&quotePOs).Error; err != nil {
		return nil, err
	}
	return r.hydrate(db, quotePOs)
}

func (r *QuoteRepository) hydrate(db *gorm.DB, quotePOs []po.QuotePO) ([]*quote.Quote, error) {
	if len(quotePOs) == 0 {
		return []*quote.Quote{}, nil
	}
	ids := make([]string, len(quotePOs))
	for i, q := range quotePOs {
		ids[i] = q.ID
	}

	var itemPOs []po.QuoteItemPO
	if err := db.Where("quote_id IN ?", ids).Order("quote_id").Order("position").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	itemsByQuote := make(map[string][]po.QuoteItemPO, len(ids))
	for _, item := range itemPOs {
		itemsByQuote[item.QuoteID] = append(itemsByQuote[item.QuoteID], item)
	}

	quotes := make([]*quote.Quote, len(quotePOs))
	for i := range quotePOs {
		quotes[i] = quotePOs[i].ToDomain(itemsByQuote[quotePOs[i].ID])
	}
	return quotes, nil
}

func (r *QuoteRepository) Remove(ctx context.Context, id string) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&po.QuoteItemPO{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&po.QuotePO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return quote.NewQuoteNotFoundError(id)
		}
		return nil
	})
}

var _ quote.Repository = (*QuoteRepository)(nil)
