package followup

import (
	"context"
	"testing"
	"time"

	"backoffice/domain/client"
	"backoffice/domain/followup"
	"backoffice/domain/order"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service  *Service
	uow      *mocks.MockUnitOfWorkFactory
	clientID string
	orderID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	clients := mocks.NewMockClientRepository()
	orders := mocks.NewMockOrderRepository(clients)
	f := &fixture{uow: mocks.NewMockUnitOfWorkFactory()}
	f.service = NewService(mocks.NewMockFollowUpRepository(), clients, orders, f.uow)

	c, err := client.NewClient(client.Details{FirstName: "Ana", LastName: "García", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NoError(t, clients.Save(ctx, c))
	o, err := order.NewOrder(order.PostOptions{ClientID: c.ID()})
	require.NoError(t, err)
	require.NoError(t, orders.Save(ctx, o))

	f.clientID, f.orderID = c.ID(), o.ID()
	return f
}

func (f *fixture) schedule(t *testing.T, req FollowUpRequest) *FollowUpResponse {
	t.Helper()
	if req.ClientID == "" {
		req.ClientID = f.clientID
	}
	resp, err := f.service.Schedule(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func TestSchedule(t *testing.T) {
	f := newFixture(t)

	resp := f.schedule(t, FollowUpRequest{OrderID: f.orderID, Kind: "delivery", Title: " Drop off ", WhenAt: "2026-04-02T09:30"})
	assert.Equal(t, "delivery", resp.Kind)
	assert.Equal(t, "Drop off", resp.Title)
	assert.Equal(t, time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC), resp.WhenAt)
	require.NotNil(t, resp.OrderID)
	assert.Equal(t, f.orderID, *resp.OrderID)
	assert.False(t, resp.Done)
	assert.Equal(t, []string{"followup.scheduled"}, f.uow.Sink.Names())
}

func TestSchedule_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := FollowUpRequest{ClientID: f.clientID, Title: "Call", WhenAt: "soon"}
	_, err := f.service.Schedule(ctx, req)
	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "when_at", ve.Violations[0].Field)
	assert.Equal(t, req, ve.Input)

	_, err = f.service.Schedule(ctx, FollowUpRequest{ClientID: f.clientID, Kind: "party", WhenAt: "2026-04-02T09:30"})
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 2)

	_, err = f.service.Schedule(ctx, FollowUpRequest{ClientID: "ghost", OrderID: "ghost-order", Title: "Call", WhenAt: "2026-04-02T09:30"})
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 2)
}

func TestUpdate_BlankWhenAtKeepsDate(t *testing.T) {
	f := newFixture(t)
	created := f.schedule(t, FollowUpRequest{Title: "Call", WhenAt: "2026-04-02T09:30"})

	updated, err := f.service.Update(context.Background(), created.ID, FollowUpRequest{
		ClientID: f.clientID,
		Kind:     "collection",
		Title:    "Collect balance",
	})
	require.NoError(t, err)
	assert.Equal(t, created.WhenAt, updated.WhenAt)
	assert.Equal(t, "collection", updated.Kind)
	assert.Nil(t, updated.OrderID)
	assert.Equal(t, 1, updated.Version)
}

func TestDoneReopenToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.schedule(t, FollowUpRequest{Title: "Call", WhenAt: "2026-04-02T09:30"})

	done, err := f.service.MarkDone(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Done)

	reopened, err := f.service.Reopen(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Done)

	toggled, err := f.service.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Done)

	_, err = f.service.Toggle(ctx, "missing")
	assert.ErrorIs(t, err, followup.ErrFollowUpNotFound)
}

func TestCalendar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before := f.schedule(t, FollowUpRequest{Title: "Too early", WhenAt: "2026-03-31T23:59"})
	first := f.schedule(t, FollowUpRequest{Title: "Morning", WhenAt: "2026-04-01T08:00"})
	last := f.schedule(t, FollowUpRequest{OrderID: f.orderID, Kind: "delivery", Title: "Late", WhenAt: "2026-04-07T23:30"})
	f.schedule(t, FollowUpRequest{Title: "Too late", WhenAt: "2026-04-08T00:00"})

	_, err := f.service.MarkDone(ctx, first.ID)
	require.NoError(t, err)

	events, err := f.service.Calendar(ctx, "2026-04-01", "2026-04-07T00:00:00Z")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, doneColor, events[0].BackgroundColor)
	assert.Equal(t, last.ID, events[1].ID)
	assert.Equal(t, "[Order "+f.orderID+"] Late", events[1].Title)
	assert.Equal(t, "#28a745", events[1].BorderColor)

	all, err := f.service.Calendar(ctx, "", "garbage")
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, before.ID, all[0].ID)
}

func TestDeleteAndForOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	attached := f.schedule(t, FollowUpRequest{OrderID: f.orderID, Title: "Deliver", WhenAt: "2026-04-02T09:30"})
	f.schedule(t, FollowUpRequest{Title: "Call", WhenAt: "2026-04-03T09:30"})

	forOrder, err := f.service.ForOrder(ctx, f.orderID)
	require.NoError(t, err)
	require.Len(t, forOrder, 1)
	assert.Equal(t, attached.ID, forOrder[0].ID)

	require.NoError(t, f.service.Delete(ctx, attached.ID))
	_, err = f.service.Get(ctx, attached.ID)
	assert.ErrorIs(t, err, followup.ErrFollowUpNotFound)
	assert.ErrorIs(t, f.service.Delete(ctx, attached.ID), shared.ErrNotFound)
}
