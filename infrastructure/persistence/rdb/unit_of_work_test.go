package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/domain/order"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/rdb/po"
	"backoffice/infrastructure/persistence/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = retry.Config{
	Enabled:       true,
	MaxAttempts:   3,
	InitialDelay:  time.Millisecond,
	MaxDelay:      5 * time.Millisecond,
	BackoffFactor: 2,

	RetryOnConcurrentModification: true,
}

func TestUnitOfWork_CommitWritesEventsToOutbox(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedClient(t, db, "Ada", "Lovelace", "ada@example.com")
	repo := NewOrderRepository(db)
	uow := NewUnitOfWorkFactory(db, fastRetry).New()

	var created *order.Order
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := order.NewOrder(order.PostOptions{ClientID: c.ID(), Items: nil})
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		created = o
		return nil
	})
	require.NoError(t, err)

	var events []po.OutboxEventPO
	require.NoError(t, db.Where("aggregate_id = ?", created.ID()).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventType)
	assert.Equal(t, string(po.EventStatusPending), events[0].Status)

	data, err := events[0].ToEventData()
	require.NoError(t, err)
	assert.Equal(t, created.ID(), data["aggregate_id"])
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedClient(t, db, "Ada", "Lovelace", "ada@example.com")
	repo := NewOrderRepository(db)
	uow := NewUnitOfWork(db)
	boom := errors.New("boom")

	var id string
	err := uow.Execute(ctx, func(ctx context.Context) error {
		o, err := order.NewOrder(order.PostOptions{ClientID: c.ID()})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, o))
		uow.RegisterNew(o)
		id = o.ID()
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	var n int64
	require.NoError(t, db.Model(&po.OutboxEventPO{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUnitOfWork_PanicRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c := seedClient(t, db, "Ada", "Lovelace", "ada@example.com")
	repo := NewOrderRepository(db)
	uow := NewUnitOfWork(db)

	var id string
	require.PanicsWithValue(t, "boom", func() {
		_ = uow.Execute(ctx, func(ctx context.Context) error {
			o, err := order.NewOrder(order.PostOptions{ClientID: c.ID()})
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, o))
			id = o.ID()
			panic("boom")
		})
	})

	// The single pooled connection is free again and the insert is gone.
	_, err := repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestUnitOfWork_RetriesConcurrentModification(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uow := NewUnitOfWorkFactory(db, fastRetry).New()

	attempts := 0
	err := uow.Execute(ctx, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return shared.NewConcurrentModificationError("order", "o-1")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	attempts = 0
	err = uow.Execute(ctx, func(ctx context.Context) error {
		attempts++
		return shared.NewValidationError("order", "client_id", "client is required")
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Equal(t, 1, attempts)
}
