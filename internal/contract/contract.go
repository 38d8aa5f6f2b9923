// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/huangsam/cvsspop/schema"
)

// StoreManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetStateStore() StateStore
	GetHistoryStore() HistoryStore
}

// StateStore is the key-value store that holds the popup record.
// This allows mocking the store for testing.
type StateStore interface {
	// Get returns the value, its record version and its write timestamp.
	// A missing key yields a nil value and a nil error.
	Get(key string) ([]byte, int, int64, error)

	// Set upserts the value for key.
	Set(key string, value []byte, version int, timestamp int64) error

	// Delete removes key if present.
	Delete(key string) error

	// GetStatus returns status information about the state store
	GetStatus() (schema.StateStatus, error)

	// Close closes the underlying connection
	Close() error
}

// HistoryStore records successful evaluations.
type HistoryStore interface {
	// Record appends one entry
	Record(entry schema.HistoryEntry) error

	// List returns up to limit entries, newest first.
	// A limit of zero or less returns every entry.
	List(limit int) ([]schema.HistoryEntry, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
