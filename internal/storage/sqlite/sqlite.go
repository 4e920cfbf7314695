// Package sqlite provides a SQLite-backed implementation of the
// storage.Slot interface using Go's standard database/sql package.
//
// The database holds a single table of named slots. Each slot is one
// opaque payload (the JSON-encoded employee collection), overwritten
// wholesale on every save.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/employees-api/internal/config"
	"github.com/aanand-mishra/employees-api/internal/storage"
	"github.com/cockroachdb/errors"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Slot.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Slot = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open opens (or creates) the SQLite database at path and creates the
// slots table if it does not already exist.
func Open(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrap(err, "sqlite.Open: create dirs")
		}
	}

	// sql.Open does NOT open a real connection yet: it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite.Open: open db")
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY between pool members.
	db.SetMaxOpenConns(1)

	// CREATE TABLE IF NOT EXISTS is idempotent: safe to run on every
	// startup.
	//
	// Schema:
	//   key:     slot name, e.g. "employees"
	//   payload: serialized collection
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key     TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "sqlite.Open: create table")
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Read fetches the payload stored under key.
// A key that was never written yields storage.ErrSlotNotFound.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Read(key string) ([]byte, error) {
	stmt, err := s.Db.Prepare("SELECT payload FROM slots WHERE key = ? LIMIT 1")
	if err != nil {
		return nil, errors.Wrap(err, "Read: prepare")
	}
	defer stmt.Close()

	var payload []byte
	err = stmt.QueryRow(key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(storage.ErrSlotNotFound, "key %q", key)
		}
		return nil, errors.Wrap(err, "Read: scan")
	}

	return payload, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Write overwrites the payload stored under key, inserting the row on first
// use. The UPSERT keeps the whole operation a single statement, so a reader
// never observes a missing slot between delete and insert.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Write(key string, payload []byte) error {
	stmt, err := s.Db.Prepare(`
		INSERT INTO slots (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload
	`)
	if err != nil {
		return errors.Wrap(err, "Write: prepare")
	}
	defer stmt.Close()

	if payload == nil {
		payload = []byte{}
	}
	if _, err := stmt.Exec(key, payload); err != nil {
		return errors.Wrap(err, "Write: exec")
	}

	return nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	if s.Db == nil {
		return nil
	}
	return s.Db.Close()
}
