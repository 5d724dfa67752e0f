package product

import "backoffice/domain/shared"

type ProductCreatedEvent struct {
	shared.BaseEvent
	sku   string
	price shared.Money
}

func NewProductCreatedEvent(productID, sku string, price shared.Money) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseEvent: shared.NewBaseEvent("product.created", productID),
		sku:       sku,
		price:     price,
	}
}

func (e *ProductCreatedEvent) Payload() map[string]any {
	return map[string]any{"sku": e.sku, "price": e.price.String()}
}

type ProductUpdatedEvent struct {
	shared.BaseEvent
	sku   string
	price shared.Money
}

func NewProductUpdatedEvent(productID, sku string, price shared.Money) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseEvent: shared.NewBaseEvent("product.updated", productID),
		sku:       sku,
		price:     price,
	}
}

func (e *ProductUpdatedEvent) Payload() map[string]any {
	return map[string]any{"sku": e.sku, "price": e.price.String()}
}

type ProductDeletedEvent struct {
	shared.BaseEvent
}

func NewProductDeletedEvent(productID string) *ProductDeletedEvent {
	return &ProductDeletedEvent{BaseEvent: shared.NewBaseEvent("product.deleted", productID)}
}
