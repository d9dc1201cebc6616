package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateSavedQuery persists an ad-hoc query for later reuse.
func (s *Store) CreateSavedQuery(connectionID *string, name, sqlText string) (*SavedQuery, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	q := &SavedQuery{
		ID:           generateID(),
		ConnectionID: connectionID,
		Name:         name,
		SQL:          sqlText,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	_, err := s.db.Exec(
		`INSERT INTO saved_queries (id, connection_id, name, sql, created_at) VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.ConnectionID, q.Name, q.SQL, q.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save query: %w", err)
	}
	return q, nil
}

// GetSavedQuery looks up a saved query by id.
func (s *Store) GetSavedQuery(id string) (*SavedQuery, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var q SavedQuery
	err := s.db.QueryRow(
		`SELECT id, connection_id, name, sql, created_at FROM saved_queries WHERE id = ?`, id,
	).Scan(&q.ID, &q.ConnectionID, &q.Name, &q.SQL, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSavedQueryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load saved query: %w", err)
	}
	return &q, nil
}

// ListSavedQueries returns all saved queries, newest first.
func (s *Store) ListSavedQueries() ([]SavedQuery, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT id, connection_id, name, sql, created_at FROM saved_queries ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved queries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var queries []SavedQuery
	for rows.Next() {
		var q SavedQuery
		if err := rows.Scan(&q.ID, &q.ConnectionID, &q.Name, &q.SQL, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved query: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}

// DeleteSavedQuery removes a saved query.
func (s *Store) DeleteSavedQuery(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM saved_queries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete saved query: %w", err)
	}
	return nil
}
