// Package memory is an in-process storage.Slot used by tests and by
// callers that do not need durability.
package memory

import (
	"bytes"
	"sync"

	"github.com/aanand-mishra/employees-api/internal/storage"
	"github.com/cockroachdb/errors"
)

// Slot keeps payloads in a map.
type Slot struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int

	// FailWrites makes every Write return an error. Tests use it to
	// exercise save failures.
	FailWrites bool
}

var _ storage.Slot = (*Slot)(nil)

// New returns an empty slot store.
func New() *Slot {
	return &Slot{data: map[string][]byte{}}
}

func (s *Slot) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, ok := s.data[key]
	if !ok {
		return nil, errors.Wrapf(storage.ErrSlotNotFound, "key %q", key)
	}
	return bytes.Clone(payload), nil
}

func (s *Slot) Write(key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return errors.Newf("memory: write %q refused", key)
	}
	s.data[key] = bytes.Clone(payload)
	s.writes++
	return nil
}

// Writes returns how many successful writes the slot has seen.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Slot) Close() error { return nil }
