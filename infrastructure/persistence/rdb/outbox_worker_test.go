package rdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/domain/client"
	"backoffice/infrastructure/persistence/rdb/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	fail      bool
	published []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, _ string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, eventType)
	return nil
}

func storeEvents(t *testing.T, repo *OutboxRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.SaveEvent(context.Background(), client.NewClientRegisteredEvent("c-1", "ada@example.com")))
	}
}

func TestNewOutboxWorker_Validation(t *testing.T) {
	repo := NewOutboxRepository(nil)
	pub := &recordingPublisher{}

	_, err := NewOutboxWorker(nil, pub, time.Second, 1, 1)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, nil, time.Second, 1, 1)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, pub, 0, 1, 1)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, pub, time.Second, 0, 1)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, pub, time.Second, 1, 0)
	assert.Error(t, err)
}

func TestOutboxWorker_PublishesPendingEvents(t *testing.T) {
	db := newTestDB(t)
	repo := NewOutboxRepository(db)
	storeEvents(t, repo, 3)

	pub := &recordingPublisher{}
	worker, err := NewOutboxWorker(repo, pub, time.Second, 2, 3)
	require.NoError(t, err)

	n, err := worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = worker.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"client.registered", "client.registered", "client.registered"}, pub.published)

	var published int64
	require.NoError(t, db.Model(&po.OutboxEventPO{}).Where("status = ?", string(po.EventStatusPublished)).Count(&published).Error)
	assert.EqualValues(t, 3, published)
}

func TestOutboxWorker_FailedEventsParkAfterMaxRetries(t *testing.T) {
	db := newTestDB(t)
	repo := NewOutboxRepository(db)
	storeEvents(t, repo, 1)

	worker, err := NewOutboxWorker(repo, &recordingPublisher{fail: true}, time.Second, 10, 2)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = worker.ProcessBatch(ctx)
	require.NoError(t, err)
	var event po.OutboxEventPO
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, string(po.EventStatusPending), event.Status)
	assert.Equal(t, 1, event.RetryCount)

	_, err = worker.ProcessBatch(ctx)
	require.NoError(t, err)
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, string(po.EventStatusFailed), event.Status)
	assert.Equal(t, 2, event.RetryCount)

	n, err := worker.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOutboxRepository_ClaimIsExclusive(t *testing.T) {
	db := newTestDB(t)
	repo := NewOutboxRepository(db)
	storeEvents(t, repo, 1)
	ctx := context.Background()

	events, err := repo.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.NoError(t, repo.MarkEventProcessing(ctx, events[0].ID))
	assert.ErrorIs(t, repo.MarkEventProcessing(ctx, events[0].ID), ErrEventNotClaimable)
}
