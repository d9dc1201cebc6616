package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// App state keys used by the client.
const (
	StateLastConnectionID = "last_connection_id"
	StateEditorContent    = "editor_content"
)

// GetState returns the value for key, or "" and false when unset.
func (s *Store) GetState(key string) (string, bool, error) {
	if err := s.ready(); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read app state: %w", err)
	}
	return value, true, nil
}

// SetState stores the value for key, replacing any previous value.
func (s *Store) SetState(key, value string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.Exec(
		`INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)`, key, value,
	); err != nil {
		return fmt.Errorf("failed to write app state: %w", err)
	}
	return nil
}
