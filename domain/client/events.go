package client

import "backoffice/domain/shared"

type ClientRegisteredEvent struct {
	shared.BaseEvent
	email string
}

func NewClientRegisteredEvent(clientID, email string) *ClientRegisteredEvent {
	return &ClientRegisteredEvent{
		BaseEvent: shared.NewBaseEvent("client.registered", clientID),
		email:     email,
	}
}

func (e *ClientRegisteredEvent) Email() string { return e.email }
func (e *ClientRegisteredEvent) Payload() map[string]any {
	return map[string]any{"email": e.email}
}

type ClientUpdatedEvent struct {
	shared.BaseEvent
}

func NewClientUpdatedEvent(clientID string) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{BaseEvent: shared.NewBaseEvent("client.updated", clientID)}
}

type ClientDeletedEvent struct {
	shared.BaseEvent
}

func NewClientDeletedEvent(clientID string) *ClientDeletedEvent {
	return &ClientDeletedEvent{BaseEvent: shared.NewBaseEvent("client.deleted", clientID)}
}
