package order

import (
	"errors"
	"testing"
	"time"

	"backoffice/domain/document"
	"backoffice/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(desc, qty, price string) document.LineItem {
	return document.NewLineItem(desc, decimal.RequireFromString(qty), shared.MustMoney(price), nil)
}

func newTestOrder(t *testing.T, items ...document.LineItem) *Order {
	t.Helper()
	o, err := NewOrder(PostOptions{ClientID: "client-1", Items: items})
	require.NoError(t, err)
	return o
}

func eventNames(events []shared.DomainEvent) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName()
	}
	return names
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t, item("Widget", "2", "3.50"), item("Bolt", "10", "0.25"))

	assert.NotEmpty(t, o.ID())
	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, "9.50", o.Total().String())
	assert.True(t, o.IsNew())
	assert.Equal(t, []string{"order.placed"}, eventNames(o.PullEvents()))
	assert.Empty(t, o.PullEvents())
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := NewOrder(PostOptions{ClientID: " ", Status: "lost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	var ve *shared.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Violations, 2)
}

func TestNewOrder_EmptyItemsAllowed(t *testing.T) {
	o := newTestOrder(t)
	assert.True(t, o.Total().IsZero())
	assert.Empty(t, o.Items())
}

func TestReplaceItems_RecomputesTotal(t *testing.T) {
	o := newTestOrder(t, item("Widget", "1", "100"))
	o.PullEvents()

	o.ReplaceItems([]document.LineItem{item("Tiny", "0.1", "0.2"), item("Other", "3", "1.10")})
	assert.Equal(t, "3.32", o.Total().String())
	assert.Len(t, o.Items(), 2)
	assert.Equal(t, []string{"order.items_replaced"}, eventNames(o.PullEvents()))

	o.ReplaceItems(nil)
	assert.True(t, o.Total().IsZero())
}

func TestRecomputeTotal_NoFloatDrift(t *testing.T) {
	items := make([]document.LineItem, 10)
	for i := range items {
		items[i] = item("tiny", "0.1", "0.2")
	}
	o := newTestOrder(t, items...)
	for i := 0; i < 10; i++ {
		assert.Equal(t, "0.20", o.RecomputeTotal().String())
	}
}

func TestItemsAreCopies(t *testing.T) {
	src := []document.LineItem{item("Widget", "1", "5")}
	o := newTestOrder(t, src...)
	src[0] = item("Changed", "9", "9")

	assert.Equal(t, "Widget", o.Items()[0].Description())
	assert.Equal(t, "5.00", o.Total().String())
}

func TestChangeStatus_Unconstrained(t *testing.T) {
	o := newTestOrder(t)
	o.PullEvents()

	for _, next := range []string{"delivered", "pending", "cancelled", "processing"} {
		require.NoError(t, o.ChangeStatus(next))
		assert.Equal(t, Status(next), o.Status())
	}
	assert.Len(t, o.PullEvents(), 4)

	require.NoError(t, o.ChangeStatus("processing"))
	assert.Empty(t, o.PullEvents())

	assert.True(t, errors.Is(o.ChangeStatus("teleported"), shared.ErrInvalidInput))
}

func TestUpdateDetails(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.UpdateDetails("client-2", "shipped", "  leave at door "))
	assert.Equal(t, "client-2", o.ClientID())
	assert.Equal(t, StatusShipped, o.Status())
	assert.Equal(t, "leave at door", o.Notes())

	assert.Error(t, o.UpdateDetails("", "shipped", ""))
	assert.Equal(t, "client-2", o.ClientID())
}

func TestRecordPayment(t *testing.T) {
	o := newTestOrder(t, item("Widget", "4", "25"))
	o.PullEvents()

	p, err := o.RecordPayment(PaymentInput{Amount: shared.MustMoney("30"), Method: "transfer", Reference: "TX-1"})
	require.NoError(t, err)
	assert.Equal(t, o.ID(), p.OrderID())
	assert.Equal(t, MethodTransfer, p.Method())
	assert.False(t, p.PaidAt().IsZero())

	paidAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err = o.RecordPayment(PaymentInput{Amount: shared.MustMoney("80"), PaidAt: paidAt})
	require.NoError(t, err)

	assert.Equal(t, "100.00", o.Total().String())
	assert.Equal(t, "110.00", o.PaidTotal().String())
	assert.Equal(t, "-10.00", o.Balance().String())
	assert.Equal(t, []string{"payment.recorded", "payment.recorded"}, eventNames(o.PullEvents()))
	assert.Equal(t, MethodCash, o.Payments()[1].Method())
	assert.Equal(t, paidAt, o.Payments()[1].PaidAt())
}

func TestRecordPayment_InvalidAmount(t *testing.T) {
	o := newTestOrder(t, item("Widget", "1", "10"))
	o.PullEvents()

	for _, amount := range []string{"0", "-5", "0.001", "10000000000"} {
		p, err := o.RecordPayment(PaymentInput{Amount: shared.MustMoney(amount)})
		assert.Nil(t, p)
		assert.Truef(t, errors.Is(err, ErrInvalidAmount), "amount %s", amount)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	}
	assert.Empty(t, o.Payments())
	assert.Empty(t, o.PullEvents())
	assert.Equal(t, "10.00", o.Balance().String())
}

func TestRecordPayment_UnknownMethod(t *testing.T) {
	o := newTestOrder(t)
	_, err := o.RecordPayment(PaymentInput{Amount: shared.MustMoney("1"), Method: "barter"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestRemovePayment(t *testing.T) {
	o := newTestOrder(t, item("Widget", "1", "50"))
	p, err := o.RecordPayment(PaymentInput{Amount: shared.MustMoney("20")})
	require.NoError(t, err)
	o.PullEvents()

	removed, err := o.RemovePayment(p.ID())
	require.NoError(t, err)
	assert.Equal(t, p, removed)
	assert.Equal(t, "50.00", o.Balance().String())
	assert.Equal(t, "50.00", o.Total().String())
	assert.Equal(t, []string{"payment.removed"}, eventNames(o.PullEvents()))

	_, err = o.RemovePayment(p.ID())
	assert.True(t, errors.Is(err, ErrPaymentNotFound))
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestMarkSaved_Versioning(t *testing.T) {
	o := newTestOrder(t)
	o.MarkSaved()
	assert.False(t, o.IsNew())
	assert.Equal(t, 0, o.Version())
	o.MarkSaved()
	assert.Equal(t, 1, o.Version())
}
