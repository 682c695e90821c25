// Package session persists the access gate's authenticated state across
// process restarts.
//
// The Store interface keeps the persistence mechanism out of the gate itself
// so tests can inject the in-memory implementation. The sqlite
// implementation stores a single JSON value keyed by a fixed application
// identifier, mirroring the shell's original localStorage slot.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/civicsense/backend/internal/models"
)

// AppKey is the fixed identifier the session is stored under.
const AppKey = "civicsense_auth"

// Store loads, saves and clears the persisted session. Load returns
// (nil, nil) when no session is stored; a corrupt stored value is treated
// the same way, never as a fatal error.
type Store interface {
	Load() (*models.Session, error)
	Save(models.Session) error
	Clear() error
}

// ---- sqlite-backed store ----

// SQLStore persists the session in the sqlite session table.
type SQLStore struct {
	DB *sql.DB
}

func (s *SQLStore) Load() (*models.Session, error) {
	var value string
	err := s.DB.QueryRow(`SELECT value FROM session WHERE key = ?`, AppKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		// Corrupt persisted state falls back to anonymous.
		return nil, nil
	}
	if sess.Role != models.RoleUser && sess.Role != models.RoleMunicipal {
		return nil, nil
	}
	return &sess, nil
}

func (s *SQLStore) Save(sess models.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.DB.Exec(
		`INSERT INTO session (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		AppKey, string(value),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLStore) Clear() error {
	if _, err := s.DB.Exec(`DELETE FROM session WHERE key = ?`, AppKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ---- in-memory store ----

// MemStore is the in-memory Store used by tests and database-less runs.
type MemStore struct {
	mu   sync.Mutex
	sess *models.Session
}

func (m *MemStore) Load() (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, nil
	}
	copied := *m.sess
	return &copied, nil
}

func (m *MemStore) Save(sess models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &sess
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
