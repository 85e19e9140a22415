package store

import "strings"

// MemoryDSN selects the in-process store.
const MemoryDSN = "memory"

// Store is everything a service needs from a backend.
type Store interface {
	LibraryStore
	BlogStore
	Close() error
}

// Open returns a MemoryStore for MemoryDSN and a GormStore otherwise.
func Open(dsn string, options ...GormStoreOption) (Store, error) {
	if strings.EqualFold(strings.TrimSpace(dsn), MemoryDSN) {
		return NewMemoryStore(), nil
	}
	return NewGormStore(dsn, options...)
}
