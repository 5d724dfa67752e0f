package mocks

import (
	"context"
	"sync"

	"backoffice/domain/shared"
)

// MockUnitOfWork runs fn without a transaction and keeps the events of
// registered aggregates in memory instead of an outbox table. Writes made
// by fn are not rolled back when it fails.
type MockUnitOfWork struct {
	aggregates []shared.AggregateRoot
	sink       *EventSink
}

func NewMockUnitOfWork(sink *EventSink) *MockUnitOfWork {
	if sink == nil {
		sink = &EventSink{}
	}
	return &MockUnitOfWork{
		aggregates: make([]shared.AggregateRoot, 0),
		sink:       sink,
	}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = make([]shared.AggregateRoot, 0)

	if err := fn(ctx); err != nil {
		return err
	}

	for _, agg := range u.aggregates {
		u.sink.add(agg.PullEvents()...)
	}
	return nil
}

func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)

// MockUnitOfWorkFactory hands out units of work that share one EventSink.
type MockUnitOfWorkFactory struct {
	Sink *EventSink
}

func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{Sink: &EventSink{}}
}

func (f *MockUnitOfWorkFactory) New() shared.UnitOfWork {
	return NewMockUnitOfWork(f.Sink)
}

var _ shared.UnitOfWorkFactory = (*MockUnitOfWorkFactory)(nil)

// EventSink collects committed domain events.
type EventSink struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (s *EventSink) add(events ...shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
}

func (s *EventSink) Events() []shared.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.DomainEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Names lists the committed event names in order.
func (s *EventSink) Names() []string {
	events := s.Events()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName()
	}
	return names
}
