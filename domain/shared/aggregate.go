package shared

// AggregateRoot is the entry point of a consistency boundary.
// Every mutation of the aggregate goes through its root, which also
// records the domain events produced by those mutations.
type AggregateRoot interface {
	// ID returns the globally unique identifier of the aggregate.
	ID() string

	// Version returns the persisted version used for optimistic locking.
	Version() int

	// PullEvents returns the recorded domain events and clears them.
	// The unit of work drains them into the outbox before commit.
	PullEvents() []DomainEvent
}

// Entity has an identity that outlives changes to its attributes.
type Entity interface {
	ID() string
}

// EventRecorder is embedded by aggregates to collect domain events.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event to the pending list.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents returns a copy of the pending events and clears the list.
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := make([]DomainEvent, len(r.events))
	copy(events, r.events)
	r.events = nil
	return events
}
