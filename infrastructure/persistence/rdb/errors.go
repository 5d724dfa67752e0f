package rdb

import (
	"errors"
	"strings"

	"backoffice/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isDuplicateKey recognizes unique violations on every supported driver,
// whether or not GORM translated them.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateWriteError maps a unique violation on field to a domain
// DuplicateKeyError and leaves anything else untouched.
func translateWriteError(err error, entity, field, value string) error {
	if isDuplicateKey(err) {
		return shared.NewDuplicateKeyError(entity, field, value)
	}
	return err
}

// checkVersionedUpdate turns a zero-row versioned update into either a
// not-found or a lost optimistic lock, depending on whether the row exists.
func checkVersionedUpdate(tx *gorm.DB, result *gorm.DB, model any, id string, notFound func(string) error, entity string) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound(id)
	}
	return shared.NewConcurrentModificationError(entity, id)
}
