package quote

import "backoffice/domain/shared"

type QuoteCreatedEvent struct {
	shared.BaseEvent
	clientID string
	total    shared.Money
}

func NewQuoteCreatedEvent(quoteID, clientID string, total shared.Money) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseEvent: shared.NewBaseEvent("quote.created", quoteID),
		clientID:  clientID,
		total:     total,
	}
}

func (e *QuoteCreatedEvent) Payload() map[string]any {
	return map[string]any{"client_id": e.clientID, "total": e.total.String()}
}

type QuoteItemsReplacedEvent struct {
	shared.BaseEvent
	itemCount int
	total     shared.Money
}

func NewQuoteItemsReplacedEvent(quoteID string, itemCount int, total shared.Money) *QuoteItemsReplacedEvent {
	return &QuoteItemsReplacedEvent{
		BaseEvent: shared.NewBaseEvent("quote.items_replaced", quoteID),
		itemCount: itemCount,
		total:     total,
	}
}

func (e *QuoteItemsReplacedEvent) Payload() map[string]any {
	return map[string]any{"item_count": e.itemCount, "total": e.total.String()}
}

// QuoteConvertedEvent is recorded on every conversion, including repeats.
type QuoteConvertedEvent struct {
	shared.BaseEvent
	orderID string
}

func NewQuoteConvertedEvent(quoteID, orderID string) *QuoteConvertedEvent {
	return &QuoteConvertedEvent{
		BaseEvent: shared.NewBaseEvent("quote.converted", quoteID),
		orderID:   orderID,
	}
}

func (e *QuoteConvertedEvent) OrderID() string { return e.orderID }
func (e *QuoteConvertedEvent) Payload() map[string]any {
	return map[string]any{"order_id": e.orderID}
}

type QuoteExpiredEvent struct {
	shared.BaseEvent
}

func NewQuoteExpiredEvent(quoteID string) *QuoteExpiredEvent {
	return &QuoteExpiredEvent{BaseEvent: shared.NewBaseEvent("quote.expired", quoteID)}
}

type QuoteDeletedEvent struct {
	shared.BaseEvent
}

func NewQuoteDeletedEvent(quoteID string) *QuoteDeletedEvent {
	return &QuoteDeletedEvent{BaseEvent: shared.NewBaseEvent("quote.deleted", quoteID)}
}
