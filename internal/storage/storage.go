// Package storage defines the Slot interface: the contract any durable
// key-value backend must satisfy to hold the employee collection.
//
// WHY A KEY-VALUE SLOT?
// ─────────────────────
// The record store never persists individual rows. After every change the
// whole collection is serialized and written over a single named key, so
// the backend only needs two operations: read a key and overwrite a key.
//
//   - Production uses the SQLite implementation (storage/sqlite).
//   - Tests use the in-memory implementation (storage/memory).
package storage

import "github.com/cockroachdb/errors"

// ErrSlotNotFound is returned by Read when the key has never been written.
var ErrSlotNotFound = errors.New("storage: slot not found")

// Slot is the durable storage contract.
type Slot interface {
	// Read returns the payload stored under key, or ErrSlotNotFound.
	Read(key string) ([]byte, error)

	// Write replaces the payload stored under key.
	Write(key string, payload []byte) error

	// Close releases the backend.
	Close() error
}
