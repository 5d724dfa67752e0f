package rdb

import (
	"context"
	"testing"
	"time"

	"backoffice/domain/document"
	"backoffice/domain/quote"
	"backoffice/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSavedQuote(t *testing.T, repo *QuoteRepository, clientID string, validUntil *time.Time, items ...document.LineItem) *quote.Quote {
	t.Helper()
	q, err := quote.NewQuote(quote.PostOptions{ClientID: clientID, ValidUntil: validUntil, Items: items})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), q))
	return q
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestQuoteRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()
	c := seedClient(t, db, "Grace", "Hopper", "grace@example.com")

	q := newSavedQuote(t, repo, c.ID(), day(2026, time.March, 31),
		lineItem("Design", "2", "150.00"), lineItem("Hosting", "12", "5.00"))

	loaded, err := repo.FindByID(ctx, q.ID())
	require.NoError(t, err)
	assert.Equal(t, quote.StatusDraft, loaded.Status())
	assert.Equal(t, "360.00", loaded.Total().String())
	require.NotNil(t, loaded.ValidUntil())
	assert.Equal(t, "2026-03-31", loaded.ValidUntil().Format(time.DateOnly))
	require.Len(t, loaded.Items(), 2)
	assert.Equal(t, "Design", loaded.Items()[0].Description())

	require.NoError(t, loaded.ReplaceItems([]document.LineItem{lineItem("Audit", "1", "99.99")}))
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, q.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Version())
	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "99.99", reloaded.Total().String())

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, quote.ErrQuoteNotFound)
}

func TestQuoteRepository_FindExpirable(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()
	c := seedClient(t, db, "Grace", "Hopper", "grace@example.com")

	older := newSavedQuote(t, repo, c.ID(), day(2026, time.January, 10), lineItem("A", "1", "1"))
	newer := newSavedQuote(t, repo, c.ID(), day(2026, time.January, 14), lineItem("B", "1", "1"))
	newSavedQuote(t, repo, c.ID(), day(2026, time.January, 15), lineItem("C", "1", "1"))
	newSavedQuote(t, repo, c.ID(), nil, lineItem("D", "1", "1"))
	accepted := newSavedQuote(t, repo, c.ID(), day(2026, time.January, 1), lineItem("E", "1", "1"))
	require.NoError(t, accepted.UpdateDetails(c.ID(), "accepted", "", accepted.ValidUntil()))
	require.NoError(t, repo.Save(ctx, accepted))

	found, err := repo.FindExpirable(ctx, time.Date(2026, time.January, 15, 18, 30, 0, 0, time.UTC), 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, older.ID(), found[0].ID())
	assert.Equal(t, newer.ID(), found[1].ID())

	limited, err := repo.FindExpirable(ctx, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, older.ID(), limited[0].ID())
}

func TestQuoteRepository_ListAndRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db)
	ctx := context.Background()
	grace := seedClient(t, db, "Grace", "Hopper", "grace@example.com")
	linus := seedClient(t, db, "Linus", "Torvalds", "linus@example.com")

	q1 := newSavedQuote(t, repo, grace.ID(), nil, lineItem("A", "1", "1"))
	newSavedQuote(t, repo, linus.ID(), nil, lineItem("B", "1", "1"))

	quotes, total, err := repo.List(ctx, shared.ListCriteria{Search: "hopper"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, quotes, 1)
	assert.Equal(t, q1.ID(), quotes[0].ID())

	byClient, err := repo.FindByClientID(ctx, linus.ID())
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	drafts, total, err := repo.List(ctx, shared.ListCriteria{Status: "draft"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, drafts, 2)

	require.NoError(t, repo.Remove(ctx, q1.ID()))
	assert.ErrorIs(t, repo.Remove(ctx, q1.ID()), shared.ErrNotFound)

	var count int64
	require.NoError(t, db.Table("quote_items").Where("quote_id = ?", q1.ID()).Count(&count).Error)
	assert.Zero(t, count)
}
