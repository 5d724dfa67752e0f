package order

import (
	"backoffice/domain/shared"
)

type OrderPlacedEvent struct {
	shared.BaseEvent
	clientID string
	total    shared.Money
}

func NewOrderPlacedEvent(orderID, clientID string, total shared.Money) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseEvent: shared.NewBaseEvent("order.placed", orderID),
		clientID:  clientID,
		total:     total,
	}
}

func (e *OrderPlacedEvent) ClientID() string    { return e.clientID }
func (e *OrderPlacedEvent) Total() shared.Money { return e.total }
func (e *OrderPlacedEvent) Payload() map[string]any {
	return map[string]any{"client_id": e.clientID, "total": e.total.String()}
}

type OrderItemsReplacedEvent struct {
	shared.BaseEvent
	itemCount int
	total     shared.Money
}

func NewOrderItemsReplacedEvent(orderID string, itemCount int, total shared.Money) *OrderItemsReplacedEvent {
	return &OrderItemsReplacedEvent{
		BaseEvent: shared.NewBaseEvent("order.items_replaced", orderID),
		itemCount: itemCount,
		total:     total,
	}
}

func (e *OrderItemsReplacedEvent) Payload() map[string]any {
	return map[string]any{"item_count": e.itemCount, "total": e.total.String()}
}

type OrderStatusChangedEvent struct {
	shared.BaseEvent
	from Status
	to   Status
}

func NewOrderStatusChangedEvent(orderID string, from, to Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: shared.NewBaseEvent("order.status_changed", orderID),
		from:      from,
		to:        to,
	}
}

func (e *OrderStatusChangedEvent) From() Status { return e.from }
func (e *OrderStatusChangedEvent) To() Status   { return e.to }
func (e *OrderStatusChangedEvent) Payload() map[string]any {
	return map[string]any{"from": string(e.from), "to": string(e.to)}
}

type OrderDeletedEvent struct {
	shared.BaseEvent
}

func NewOrderDeletedEvent(orderID string) *OrderDeletedEvent {
	return &OrderDeletedEvent{BaseEvent: shared.NewBaseEvent("order.deleted", orderID)}
}

type PaymentRecordedEvent struct {
	shared.BaseEvent
	paymentID string
	amount    shared.Money
	method    Method
}

func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseEvent: shared.NewBaseEvent("payment.recorded", p.orderID),
		paymentID: p.id,
		amount:    p.amount,
		method:    p.method,
	}
}

func (e *PaymentRecordedEvent) PaymentID() string { return e.paymentID }
func (e *PaymentRecordedEvent) Payload() map[string]any {
	return map[string]any{"payment_id": e.paymentID, "amount": e.amount.String(), "method": string(e.method)}
}

type PaymentRemovedEvent struct {
	shared.BaseEvent
	paymentID string
	amount    shared.Money
}

func NewPaymentRemovedEvent(p *Payment) *PaymentRemovedEvent {
	return &PaymentRemovedEvent{
		BaseEvent: shared.NewBaseEvent("payment.removed", p.orderID),
		paymentID: p.id,
		amount:    p.amount,
	}
}

func (e *PaymentRemovedEvent) Payload() map[string]any {
	return map[string]any{"payment_id": e.paymentID, "amount": e.amount.String()}
}
