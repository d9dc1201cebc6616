// Package store persists app metadata in a local SQLite database: saved
// connections, saved queries, and small key/value app state.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// ErrConnectionNotFound is returned when looking up a saved connection
// that does not exist.
var ErrConnectionNotFound = errors.New("connection not found")

// ErrSavedQueryNotFound is returned when looking up a saved query that
// does not exist.
var ErrSavedQueryNotFound = errors.New("saved query not found")

// SavedConnection is one persisted connection record. The password is
// stored encrypted; decryption happens just before connecting.
type SavedConnection struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Host              string `json:"host"`
	Port              int    `json:"port"`
	Database          string `json:"database"`
	User              string `json:"user"`
	EncryptedPassword string `json:"-"`
	CreatedAt         string `json:"created_at"`
}

// SavedQuery is one persisted ad-hoc query, optionally tied to a saved
// connection.
type SavedQuery struct {
	ID           string  `json:"id"`
	ConnectionID *string `json:"connection_id"`
	Name         string  `json:"name"`
	SQL          string  `json:"sql"`
	CreatedAt    string  `json:"created_at"`
}

// Store wraps the SQLite metadata database.
type Store struct {
	db   *sql.DB
	path string
}

// New creates a Store without opening it.
func New() *Store {
	return &Store{}
}

// Open creates a Store and opens the metadata database at path.
func Open(path string) (*Store, error) {
	s := New()
	if err := s.Open(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Open opens the metadata database at path and runs pending migrations.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	dsn := path
	if path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	} else {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open metadata database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping metadata database: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close closes the metadata database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying connection for tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ready() error {
	if s.db == nil {
		return fmt.Errorf("metadata database not opened")
	}
	return nil
}

func generateID() string {
	return uuid.New().String()
}
