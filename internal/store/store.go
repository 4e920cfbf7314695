// Package store owns the authoritative, ordered collection of employee
// records.
//
// Every successful mutation saves the whole collection through the Saver
// before the call returns, then notifies subscribers. Unknown ids are not
// errors: Update and Delete simply report that nothing matched.
//
// The store does not validate field values; callers run the validation
// engine first.
package store

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/samber/lo"
)

// Saver persists a full snapshot of the collection.
type Saver interface {
	Save(employees []types.Employee) error
}

// Op names the kind of change a subscriber is told about.
type Op string

const (
	OpCreated  Op = "created"
	OpUpdated  Op = "updated"
	OpDeleted  Op = "deleted"
	OpReplaced Op = "replaced"
)

// Change describes one completed mutation. Employees is a snapshot of the
// collection after the change; ID is zero for OpReplaced.
type Change struct {
	Op        Op
	ID        int
	Employees []types.Employee
}

// Store is safe for concurrent use. Operations are serialized, and the save
// runs inside the critical section so the durable slot always reflects the
// latest mutation by the time it returns.
type Store struct {
	mu        sync.Mutex
	employees []types.Employee
	saver     Saver
	log       *slog.Logger

	subMu  sync.Mutex
	subs   map[int]func(Change)
	subSeq int
}

// New builds a store over initial, which is copied. A nil saver disables
// persistence; a nil logger selects slog.Default().
func New(initial []types.Employee, saver Saver, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		employees: clone(initial),
		saver:     saver,
		log:       log.With(slog.String("component", "store")),
		subs:      map[int]func(Change){},
	}
}

// List returns a snapshot of the collection in store order.
func (s *Store) List() []types.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.employees)
}

// Get looks up a record by id.
func (s *Store) Get(id int) (types.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Find(s.employees, func(e types.Employee) bool { return e.ID == id })
}

// Create assigns the next id (highest existing id + 1, or 1 when empty),
// appends the record and returns it. Any ID on fields is ignored.
func (s *Store) Create(fields types.Employee) types.Employee {
	s.mu.Lock()
	fields.ID = nextID(s.employees)
	s.employees = append(s.employees, fields)
	snapshot := s.commit()
	s.mu.Unlock()

	s.notify(Change{Op: OpCreated, ID: fields.ID, Employees: snapshot})
	return fields
}

// Update merges patch into the record with the given id and returns the
// result. Unknown ids are a no-op reported as false.
func (s *Store) Update(id int, patch types.EmployeePatch) (types.Employee, bool) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return types.Employee{}, false
	}
	updated := patch.Apply(s.employees[idx])
	s.employees[idx] = updated
	snapshot := s.commit()
	s.mu.Unlock()

	s.notify(Change{Op: OpUpdated, ID: id, Employees: snapshot})
	return updated, true
}

// Delete removes the record with the given id. Unknown ids are a no-op
// reported as false, so repeated deletes leave the same collection.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.employees = slices.Delete(s.employees, idx, idx+1)
	snapshot := s.commit()
	s.mu.Unlock()

	s.notify(Change{Op: OpDeleted, ID: id, Employees: snapshot})
	return true
}

// Replace swaps the whole collection, e.g. to restore the seed set.
func (s *Store) Replace(employees []types.Employee) {
	s.mu.Lock()
	s.employees = clone(employees)
	snapshot := s.commit()
	s.mu.Unlock()

	s.notify(Change{Op: OpReplaced, Employees: snapshot})
}

// Subscribe registers fn to receive every completed change. Callbacks run
// synchronously on the mutating goroutine, after the save and outside the
// store lock. The returned func unregisters fn.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.subSeq
	s.subSeq++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// commit saves the collection and returns a snapshot of it. Callers hold mu.
// A failed save is logged; the in-memory mutation stands.
func (s *Store) commit() []types.Employee {
	snapshot := clone(s.employees)
	if s.saver == nil {
		return snapshot
	}
	if err := s.saver.Save(snapshot); err != nil {
		s.log.Error("failed to persist employees",
			slog.Int("count", len(snapshot)),
			slog.String("error", err.Error()))
	}
	return snapshot
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	fns := lo.Values(s.subs)
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.employees, func(e types.Employee) bool { return e.ID == id })
}

func nextID(employees []types.Employee) int {
	ids := lo.Map(employees, func(e types.Employee, _ int) int { return e.ID })
	return lo.Max(append(ids, 0)) + 1
}

func clone(employees []types.Employee) []types.Employee {
	out := make([]types.Employee, len(employees))
	copy(out, employees)
	return out
}
