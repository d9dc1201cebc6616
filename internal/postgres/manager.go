// Package postgres owns the single live PostgreSQL connection and turns
// database-native values into JSON-compatible results for the UI layer.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// maxPoolSize bounds the number of concurrent physical connections held by
// the active pool. Callers beyond this queue for a free slot.
const maxPoolSize = 5

// Manager owns the active connection pool and its identity. Exactly one
// pool is live at a time; Connect replaces it, Disconnect clears it.
//
// Connect and Disconnect take the write path and exclude everything else.
// Query, introspection, pagination, and explain take the read path and may
// run concurrently; each snapshots the pool on entry, so a statement that
// is already running keeps its pool even if a concurrent Connect swaps in
// a new one.
type Manager struct {
	mu     sync.RWMutex
	db     *sql.DB
	connID string

	// connMu serializes Connect calls end to end. The dial happens
	// outside mu, so without it two racing Connects could install over
	// each other and leak the losing pool.
	connMu sync.Mutex

	logger *slog.Logger

	// open is swappable so tests can install a mock database.
	open func(dsn string) (*sql.DB, error)
}

// NewManager creates a Manager with no active connection.
// If logger is nil, a discard logger is used.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		logger: logger,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("pgx", dsn)
		},
	}
}

// Connect establishes a new pool against the target database and installs
// it as the active connection. Any existing pool is closed first; the new
// pool and identity only become visible once the connection has been
// verified with a ping.
func (m *Manager) Connect(ctx context.Context, connID, host string, port int, database, user, password string) error {
	m.connMu.Lock()
	defer m.connMu.Unlock()

	m.Disconnect()

	db, err := m.open(buildDSN(host, port, database, user, password))
	if err != nil {
		return &ConnectionError{Err: err}
	}
	db.SetMaxOpenConns(maxPoolSize)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &ConnectionError{Err: err}
	}

	m.mu.Lock()
	m.db = db
	m.connID = connID
	m.mu.Unlock()

	m.logger.Debug("connected to postgres",
		slog.String("host", host),
		slog.String("database", database),
		slog.String("connection_id", connID))
	return nil
}

// Disconnect closes the active pool and clears the connection identity.
// It is idempotent; disconnecting with no active pool is a no-op.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	db := m.db
	m.db = nil
	m.connID = ""
	m.mu.Unlock()

	if db != nil {
		// sql.DB.Close waits for in-flight statements to finish.
		if err := db.Close(); err != nil {
			m.logger.Warn("error closing connection pool", slog.String("error", err.Error()))
		}
	}
}

// ConnectionID returns the identity of the active connection, or false if
// disconnected.
func (m *Manager) ConnectionID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.db == nil {
		return "", false
	}
	return m.connID, true
}

// TestConnection runs a trivial round-trip statement against the active
// pool to verify it is still usable.
func (m *Manager) TestConnection(ctx context.Context) (bool, error) {
	db, err := m.acquire()
	if err != nil {
		return false, err
	}

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return false, &QueryError{Err: err}
	}
	return true, nil
}

// acquire snapshots the active pool for the duration of one statement.
func (m *Manager) acquire() (*sql.DB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.db == nil {
		return nil, ErrNoActiveConnection
	}
	return m.db, nil
}

// buildDSN constructs a key=value connection string for the pgx driver.
func buildDSN(host string, port int, database, user, password string) string {
	if host == "" {
		host = "localhost"
	}
	if port == 0 {
		port = 5432
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s", host, port, database)
	if user != "" {
		dsn += fmt.Sprintf(" user=%s", user)
	}
	if password != "" {
		dsn += fmt.Sprintf(" password=%s", password)
	}
	return dsn
}
