// Package persistence synchronizes the employee collection with one durable
// storage slot.
//
// Load runs once at startup and always yields a usable collection: a
// missing, empty or unreadable slot falls back to the seed set, which is
// written back immediately. Save serializes the whole collection and
// overwrites the slot; there is no incremental persistence.
package persistence

import (
	"encoding/json"
	"log/slog"

	"github.com/aanand-mishra/employees-api/internal/storage"
	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "employees"

// corruptSuffix names the slot that receives an unreadable payload before
// the seed set overwrites it.
const corruptSuffix = ".corrupt"

var errDuplicateID = errors.New("duplicate employee id")

// Adapter reads and writes the employee collection through a storage.Slot.
type Adapter struct {
	slot storage.Slot
	key  string
	log  *slog.Logger
	seed func() []types.Employee
}

// New builds an Adapter. An empty key selects DefaultKey; a nil logger
// selects slog.Default().
func New(slot storage.Slot, key string, log *slog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		slot: slot,
		key:  key,
		log:  log.With(slog.String("component", "persistence"), slog.String("key", key)),
		seed: types.SeedEmployees,
	}
}

// Key returns the slot name.
func (a *Adapter) Key() string { return a.key }

// Load materializes the collection from the slot.
//
//   - slot absent or zero-length: seed set, written back.
//   - payload decodes: the decoded collection, even if it is empty.
//   - payload malformed or holding duplicate ids: the payload is copied to
//     "<key>.corrupt", then the seed set is used and written back.
//   - slot unreadable: seed set, not written back, so a transient backend
//     error cannot clobber good data.
func (a *Adapter) Load() []types.Employee {
	payload, err := a.slot.Read(a.key)
	switch {
	case errors.Is(err, storage.ErrSlotNotFound):
		a.log.Info("durable slot absent, seeding")
		return a.reseed()
	case err != nil:
		a.log.Error("failed to read durable slot, using seed set",
			slog.String("error", err.Error()))
		return a.seed()
	case len(payload) == 0:
		a.log.Info("durable slot empty, seeding")
		return a.reseed()
	}

	employees, err := Decode(payload)
	if err != nil {
		a.log.Warn("durable slot is corrupt, falling back to seed set",
			slog.String("error", err.Error()))
		if werr := a.slot.Write(a.key+corruptSuffix, payload); werr != nil {
			a.log.Error("failed to back up corrupt payload",
				slog.String("error", werr.Error()))
		}
		return a.reseed()
	}

	a.log.Info("loaded employees from durable slot", slog.Int("count", len(employees)))
	return employees
}

// Save serializes the entire collection and overwrites the slot.
func (a *Adapter) Save(employees []types.Employee) error {
	payload, err := Encode(employees)
	if err != nil {
		return err
	}
	if err := a.slot.Write(a.key, payload); err != nil {
		return errors.Wrapf(err, "persistence: write slot %q", a.key)
	}
	return nil
}

func (a *Adapter) reseed() []types.Employee {
	employees := a.seed()
	if err := a.Save(employees); err != nil {
		a.log.Error("failed to persist seed set", slog.String("error", err.Error()))
	}
	return employees
}

// Encode serializes a collection in the durable format: a JSON array of
// employee objects, field names unchanged. A nil collection encodes as [].
func Encode(employees []types.Employee) ([]byte, error) {
	if employees == nil {
		employees = []types.Employee{}
	}
	payload, err := json.Marshal(employees)
	if err != nil {
		return nil, errors.Wrap(err, "persistence: encode")
	}
	return payload, nil
}

// Decode parses the durable format and rejects collections whose ids are
// not unique.
func Decode(payload []byte) ([]types.Employee, error) {
	var employees []types.Employee
	if err := json.Unmarshal(payload, &employees); err != nil {
		return nil, errors.Wrap(err, "persistence: decode")
	}
	if employees == nil {
		// "null" decodes to a nil slice.
		return nil, errors.New("persistence: decode: payload is not an array")
	}

	dups := lo.FindDuplicatesBy(employees, func(e types.Employee) int { return e.ID })
	if len(dups) > 0 {
		return nil, errors.Wrapf(errDuplicateID, "persistence: decode: id %d", dups[0].ID)
	}
	return employees, nil
}
