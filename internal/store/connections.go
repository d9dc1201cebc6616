package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const savedConnectionColumns = `id, name, host, port, database, user, encrypted_password, created_at`

// CreateConnection persists a new saved connection and returns the record.
func (s *Store) CreateConnection(name, host string, port int, database, user, encryptedPassword string) (*SavedConnection, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	conn := &SavedConnection{
		ID:                generateID(),
		Name:              name,
		Host:              host,
		Port:              port,
		Database:          database,
		User:              user,
		EncryptedPassword: encryptedPassword,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
	}

	_, err := s.db.Exec(
		`INSERT INTO connections (`+savedConnectionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		conn.ID, conn.Name, conn.Host, conn.Port, conn.Database, conn.User, conn.EncryptedPassword, conn.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	return conn, nil
}

// ListConnections returns all saved connections, newest first.
func (s *Store) ListConnections() ([]SavedConnection, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT ` + savedConnectionColumns + ` FROM connections ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var connections []SavedConnection
	for rows.Next() {
		var c SavedConnection
		if err := rows.Scan(&c.ID, &c.Name, &c.Host, &c.Port, &c.Database, &c.User, &c.EncryptedPassword, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		connections = append(connections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return connections, nil
}

// GetConnection looks up one saved connection by id.
func (s *Store) GetConnection(id string) (*SavedConnection, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var c SavedConnection
	err := s.db.QueryRow(
		`SELECT `+savedConnectionColumns+` FROM connections WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Host, &c.Port, &c.Database, &c.User, &c.EncryptedPassword, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	return &c, nil
}

// UpdateConnection rewrites a saved connection. The password is only
// replaced when encryptedPassword is non-nil.
func (s *Store) UpdateConnection(id, name, host string, port int, database, user string, encryptedPassword *string) (*SavedConnection, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var err error
	if encryptedPassword != nil {
		_, err = s.db.Exec(
			`UPDATE connections
			 SET name = ?, host = ?, port = ?, database = ?, user = ?, encrypted_password = ?
			 WHERE id = ?`,
			name, host, port, database, user, *encryptedPassword, id,
		)
	} else {
		_, err = s.db.Exec(
			`UPDATE connections
			 SET name = ?, host = ?, port = ?, database = ?, user = ?
			 WHERE id = ?`,
			name, host, port, database, user, id,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update connection: %w", err)
	}
	return s.GetConnection(id)
}

// DeleteConnection removes a saved connection.
func (s *Store) DeleteConnection(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM connections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	return nil
}
