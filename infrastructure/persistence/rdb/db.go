package rdb

import (
	"context"
	"strings"

	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence"

	"gorm.io/gorm"
)

// dbFrom returns the unit of work transaction from ctx when there is one.
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// inTx runs fn inside the unit of work transaction when there is one and
// opens a short transaction otherwise, so multi-statement writes stay
// atomic when a repository is used on its own.
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// paginate applies criteria (already normalized) to a query.
func paginate(q *gorm.DB, c shared.ListCriteria) *gorm.DB {
	return q.Offset(c.Offset()).Limit(c.PageSize)
}
