package shared

import "context"

// UnitOfWork owns a transaction boundary and the events raised inside it.
// Repositories called from fn pick the transaction up from ctx; events of
// registered aggregates are written to the outbox before commit.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

type UnitOfWorkFactory interface {
	New() UnitOfWork
}

type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
