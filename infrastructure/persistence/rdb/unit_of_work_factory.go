package rdb

import (
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per use case call; a
// UnitOfWork keeps registration state and must not be shared.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		retryConfig: retryConfig,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
