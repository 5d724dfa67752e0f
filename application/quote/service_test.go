package quote

import (
	"context"
	"testing"
	"time"

	"backoffice/domain/client"
	"backoffice/domain/document"
	"backoffice/domain/quote"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service  *Service
	quotes   *mocks.MockQuoteRepository
	orders   *mocks.MockOrderRepository
	uow      *mocks.MockUnitOfWorkFactory
	clientID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clients := mocks.NewMockClientRepository()
	f := &fixture{
		quotes: mocks.NewMockQuoteRepository(clients),
		orders: mocks.NewMockOrderRepository(clients),
		uow:    mocks.NewMockUnitOfWorkFactory(),
	}
	f.service = NewService(f.quotes, f.orders, clients, mocks.NewMockProductRepository(), f.uow)

	c, err := client.NewClient(client.Details{FirstName: "Luis", LastName: "Pérez", Email: "luis@example.com"})
	require.NoError(t, err)
	require.NoError(t, clients.Save(context.Background(), c))
	f.clientID = c.ID()
	return f
}

func row(desc, qty, price string) document.ItemRow {
	return document.ItemRow{Description: desc, Quantity: qty, UnitPrice: price}
}

func (f *fixture) create(t *testing.T, validUntil string, rows ...document.ItemRow) *QuoteResponse {
	t.Helper()
	resp, err := f.service.CreateQuote(context.Background(), CreateQuoteRequest{
		ClientID:   f.clientID,
		ValidUntil: validUntil,
		Items:      rows,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateQuote(t *testing.T) {
	f := newFixture(t)

	resp := f.create(t, "2026-03-31T10:00", row("Design", "2", "150"), row("Hosting", "1", "0.5"))
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "300.50", resp.Total.String())
	require.NotNil(t, resp.ValidUntil)
	assert.Equal(t, "2026-03-31", *resp.ValidUntil)
	assert.Equal(t, []string{"quote.created"}, f.uow.Sink.Names())
}

func TestCreateQuote_UnreadableValidUntilIsDropped(t *testing.T) {
	f := newFixture(t)

	resp := f.create(t, "next week", row("Design", "1", "10"))
	assert.Nil(t, resp.ValidUntil)
}

func TestCreateQuote_RequiresDescribedItem(t *testing.T) {
	f := newFixture(t)
	req := CreateQuoteRequest{ClientID: f.clientID, Items: []document.ItemRow{row("", "", "")}}

	_, err := f.service.CreateQuote(context.Background(), req)
	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items", ve.Violations[0].Field)
	assert.Equal(t, req, ve.Input)
}

func TestUpdateQuoteAndReplaceItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, "", row("Design", "1", "100"))

	updated, err := f.service.UpdateQuote(ctx, created.ID, UpdateQuoteRequest{
		ClientID:   f.clientID,
		Status:     "sent",
		ValidUntil: "2026-06-01",
		Items:      []document.ItemRow{row("Design", "2", "100")},
	})
	require.NoError(t, err)
	assert.Equal(t, "sent", updated.Status)
	assert.Equal(t, "200.00", updated.Total.String())
	assert.Equal(t, 1, updated.Version)

	_, err = f.service.ReplaceItems(ctx, created.ID, ReplaceItemsRequest{})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	replaced, err := f.service.ReplaceItems(ctx, created.ID, ReplaceItemsRequest{Items: []document.ItemRow{row("Audit", "0.1", "0.2")}})
	require.NoError(t, err)
	assert.Equal(t, "0.02", replaced.Total.String())
}

func TestConvertToOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.create(t, "", row("Design", "2", "150"), row("Hosting", "1", "0.5"))

	o, err := f.service.ConvertToOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", o.Status)
	assert.Equal(t, f.clientID, o.ClientID)
	assert.Equal(t, created.Total.String(), o.Total.String())
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Design", o.Items[0].Description)

	q, err := f.service.GetQuote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(quote.StatusAccepted), q.Status)

	stored, err := f.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "300.50", stored.Total().String())

	_, err = f.service.ReplaceItems(ctx, created.ID, ReplaceItemsRequest{Items: []document.ItemRow{row("Other", "1", "1")}})
	require.NoError(t, err)
	stored, err = f.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design", stored.Items()[0].Description())

	again, err := f.service.ConvertToOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, o.ID, again.ID)
	assert.Contains(t, f.uow.Sink.Names(), "quote.converted")
	assert.Contains(t, f.uow.Sink.Names(), "order.placed")
}

func TestConvertToOrder_UnknownQuote(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ConvertToOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, quote.ErrQuoteNotFound)
}

func TestConvertToOrder_EmptyQuote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.quotes.Seed(quote.RebuildFromDTO(quote.ReconstructionDTO{
		ID:       "q-empty",
		ClientID: f.clientID,
		Status:   quote.StatusSent,
		Total:    shared.Zero(),
		Version:  1,
	}))

	o, err := f.service.ConvertToOrder(ctx, "q-empty")
	assert.Nil(t, o)
	require.ErrorIs(t, err, quote.ErrNoItems)

	orders, total, err := f.orders.List(ctx, shared.ListCriteria{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Zero(t, total)

	q, err := f.service.GetQuote(ctx, "q-empty")
	require.NoError(t, err)
	assert.Equal(t, string(quote.StatusSent), q.Status)
	assert.Empty(t, f.uow.Sink.Names())
}

func TestExpireOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := f.create(t, "2026-01-10", row("A", "1", "1"))
	older := f.create(t, "2026-01-05", row("B", "1", "1"))
	today := f.create(t, "2026-02-01", row("C", "1", "1"))
	open := f.create(t, "", row("D", "1", "1"))

	_, err := f.service.UpdateQuote(ctx, older.ID, UpdateQuoteRequest{
		ClientID: f.clientID, Status: "rejected", ValidUntil: "2026-01-05",
		Items: []document.ItemRow{row("B", "1", "1")},
	})
	require.NoError(t, err)

	at := time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC)
	n, err := f.service.ExpireOverdue(ctx, at, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	statuses := map[string]string{}
	for _, id := range []string{past.ID, older.ID, today.ID, open.ID} {
		q, err := f.service.GetQuote(ctx, id)
		require.NoError(t, err)
		statuses[id] = q.Status
	}
	assert.Equal(t, "expired", statuses[past.ID])
	assert.Equal(t, "rejected", statuses[older.ID])
	assert.Equal(t, "draft", statuses[today.ID])
	assert.Equal(t, "draft", statuses[open.ID])

	n, err = f.service.ExpireOverdue(ctx, at, 10)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteAndListQuotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.create(t, "", row("A", "1", "1"))
	f.create(t, "", row("B", "1", "1"))

	page, err := f.service.ListQuotes(ctx, shared.ListCriteria{Search: "luis"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	require.NoError(t, f.service.DeleteQuote(ctx, first.ID))
	_, err = f.service.GetQuote(ctx, first.ID)
	assert.ErrorIs(t, err, quote.ErrQuoteNotFound)

	byClient, err := f.service.GetClientQuotes(ctx, f.clientID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)
	assert.Contains(t, f.uow.Sink.Names(), "quote.deleted")
}
