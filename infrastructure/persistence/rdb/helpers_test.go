package rdb

import (
	"context"
	"strings"
	"testing"

	"backoffice/domain/client"
	"backoffice/domain/document"
	"backoffice/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database with the full schema.
// One connection keeps every statement on the same shared-cache handle.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedClient(t *testing.T, db *gorm.DB, first, last, email string) *client.Client {
	t.Helper()
	c, err := client.NewClient(client.Details{FirstName: first, LastName: last, Email: email})
	require.NoError(t, err)
	require.NoError(t, NewClientRepository(db).Save(context.Background(), c))
	return c
}

func lineItem(desc, qty, price string) document.LineItem {
	return document.NewLineItem(desc, decimal.RequireFromString(qty), shared.MustMoney(price), nil)
}
