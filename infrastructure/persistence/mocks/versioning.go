package mocks

import (
	"backoffice/domain/shared"
)

type versioned interface {
	Version() int
}

// checkVersion mirrors the versioned UPDATE of the SQL repositories.
func checkVersion[T versioned](store map[string]T, id string, isNew bool, version int, notFound func(string) error, entity string) error {
	if isNew {
		return nil
	}
	stored, ok := store[id]
	if !ok {
		return notFound(id)
	}
	if stored.Version() != version {
		return shared.NewConcurrentModificationError(entity, id)
	}
	return nil
}
