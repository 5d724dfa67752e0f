package shared

import (
	"fmt"
	"time"
)

type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// PayloadProvider is implemented by events that carry data beyond the
// envelope. The outbox serializes the returned map as the event body.
type PayloadProvider interface {
	Payload() map[string]any
}

// BaseEvent provides the envelope fields shared by every domain event.
type BaseEvent struct {
	name        string
	aggregateID string
	occurredOn  time.Time
}

func NewBaseEvent(name, aggregateID string) BaseEvent {
	return BaseEvent{name: name, aggregateID: aggregateID, occurredOn: time.Now()}
}

func (e BaseEvent) EventName() string      { return e.name }
func (e BaseEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e BaseEvent) GetAggregateID() string { return e.aggregateID }

func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}
