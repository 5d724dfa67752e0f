package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/domain/client"
	"backoffice/domain/document"
	"backoffice/domain/followup"
	"backoffice/domain/order"
	"backoffice/domain/product"
	"backoffice/domain/shared"
	"backoffice/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service   *Service
	clients   *mocks.MockClientRepository
	products  *mocks.MockProductRepository
	orders    *mocks.MockOrderRepository
	followUps *mocks.MockFollowUpRepository
	uow       *mocks.MockUnitOfWorkFactory
	clientID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clients:   mocks.NewMockClientRepository(),
		products:  mocks.NewMockProductRepository(),
		followUps: mocks.NewMockFollowUpRepository(),
		uow:       mocks.NewMockUnitOfWorkFactory(),
	}
	f.orders = mocks.NewMockOrderRepository(f.clients)
	f.service = NewService(f.orders, f.clients, f.products, f.followUps, f.uow)

	c, err := client.NewClient(client.Details{FirstName: "Ana", LastName: "García", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NoError(t, f.clients.Save(context.Background(), c))
	f.clientID = c.ID()
	return f
}

func rows(rs ...document.ItemRow) []document.ItemRow { return rs }

func row(desc, qty, price string) document.ItemRow {
	return document.ItemRow{Description: desc, Quantity: qty, UnitPrice: price}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		ClientID: f.clientID,
		Notes:    "  deliver monday ",
		Items:    rows(row("Widget", "0.1", "0.2"), row("", "", ""), row("Bolt", "3", "1.5")),
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "deliver monday", resp.Notes)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "0.02", resp.Items[0].Amount.String())
	assert.Equal(t, "4.52", resp.Total.String())
	assert.Equal(t, "4.52", resp.Balance.String())
	assert.True(t, resp.PaidTotal.IsZero())
	assert.Equal(t, []string{"order.placed"}, f.uow.Sink.Names())
}

func TestCreateOrder_EmptyItemsAllowed(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{ClientID: f.clientID})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
}

func TestCreateOrder_ValidationEchoesInput(t *testing.T) {
	f := newFixture(t)
	req := CreateOrderRequest{
		ClientID: f.clientID,
		Items:    rows(row("Widget", "-1", "2")),
	}

	_, err := f.service.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	var ve *shared.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, req, ve.Input)
	assert.Equal(t, "items[0].quantity", ve.Violations[0].Field)

	all, _, err := f.orders.List(context.Background(), shared.ListCriteria{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateOrder_UnknownReferences(t *testing.T) {
	f := newFixture(t)
	missing := "0190a1b2-0000-7000-8000-000000000001"

	_, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		ClientID: "no-such-client",
		Items:    rows(document.ItemRow{ProductID: missing, Quantity: "1", UnitPrice: "5"}),
	})
	var ve *shared.ValidationError
	require.True(t, errors.As(err, &ve))

	fields := make([]string, len(ve.Violations))
	for i, v := range ve.Violations {
		fields[i] = v.Field
	}
	assert.Contains(t, fields, "client_id")
	assert.Contains(t, fields, "items.product_id")
}

func TestCreateOrder_WithProductReference(t *testing.T) {
	f := newFixture(t)
	p, err := product.NewProduct(product.Details{SKU: "w-1", Name: "Widget", Price: shared.MustMoney("9.99")})
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))

	resp, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		ClientID: f.clientID,
		Items:    rows(document.ItemRow{ProductID: p.ID(), Quantity: "2", UnitPrice: "9.99"}),
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.NotNil(t, resp.Items[0].ProductID)
	assert.Equal(t, p.ID(), *resp.Items[0].ProductID)
	assert.Equal(t, "19.98", resp.Total.String())
}

func TestUpdateOrder_KeepsDeletedClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ClientID: f.clientID, Items: rows(row("A", "1", "10"))})
	require.NoError(t, err)

	c, err := f.clients.FindByID(ctx, f.clientID)
	require.NoError(t, err)
	require.True(t, c.SoftDelete())
	require.NoError(t, f.clients.Save(ctx, c))

	updated, err := f.service.UpdateOrder(ctx, created.ID, UpdateOrderRequest{
		ClientID: f.clientID,
		Status:   "shipped",
		Items:    rows(row("A", "2", "10")),
	})
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, "20.00", updated.Total.String())
	assert.Equal(t, 1, updated.Version)
}

func TestReplaceItemsAndChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ClientID: f.clientID, Items: rows(row("A", "1", "10"))})
	require.NoError(t, err)

	replaced, err := f.service.ReplaceItems(ctx, created.ID, ReplaceItemsRequest{Items: rows(row("B", "3", "0.1"))})
	require.NoError(t, err)
	assert.Equal(t, "0.30", replaced.Total.String())

	changed, err := f.service.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", changed.Status)

	_, err = f.service.ChangeStatus(ctx, created.ID, ChangeStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = f.service.ReplaceItems(ctx, "missing", ReplaceItemsRequest{})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestDeleteOrder_CascadesFollowUps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ClientID: f.clientID, Items: rows(row("A", "1", "10"))})
	require.NoError(t, err)

	o, err := f.orders.FindByID(ctx, created.ID)
	require.NoError(t, err)
	p, err := o.RecordPayment(order.PaymentInput{Amount: shared.MustMoney("5")})
	require.NoError(t, err)
	require.NoError(t, f.orders.AddPayment(ctx, p))

	orderID := created.ID
	fu, err := followup.Schedule(followup.Details{
		ClientID: f.clientID,
		OrderID:  &orderID,
		Title:    "Call back",
		WhenAt:   time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, f.followUps.Save(ctx, fu))

	require.NoError(t, f.service.DeleteOrder(ctx, created.ID))

	_, err = f.service.GetOrder(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = f.orders.FindPaymentByID(ctx, p.ID())
	assert.ErrorIs(t, err, order.ErrPaymentNotFound)
	remaining, err := f.followUps.FindByOrderID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Contains(t, f.uow.Sink.Names(), "order.deleted")

	assert.ErrorIs(t, f.service.DeleteOrder(ctx, created.ID), order.ErrOrderNotFound)
}

func TestListOrdersAndClientOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.service.CreateOrder(ctx, CreateOrderRequest{ClientID: f.clientID})
		require.NoError(t, err)
	}

	page, err := f.service.ListOrders(ctx, shared.ListCriteria{Page: 1, PageSize: 2, Search: "garcía"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages())

	byClient, err := f.service.GetClientOrders(ctx, f.clientID)
	require.NoError(t, err)
	assert.Len(t, byClient, 3)
}
