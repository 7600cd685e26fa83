package session

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hanoivibes/jobport/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore persists session state in a local SQLite database so it
// survives across CLI invocations.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens (creating if necessary) the session database at path
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrapf(err, "failed to create session directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open session database %s", path)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize session schema")
	}

	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an existing database handle. The schema must already
// exist; used by tests.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read session key %s", key)
	}
	return value, nil
}

func (s *SQLiteStore) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO session (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to write session key %s", key)
	}
	return nil
}

// AccessToken returns the stored access token, empty when signed out
func (s *SQLiteStore) AccessToken() (string, error) {
	return s.get(KeyAccessToken)
}

// RefreshToken returns the stored refresh token, empty when signed out
func (s *SQLiteStore) RefreshToken() (string, error) {
	return s.get(KeyRefreshToken)
}

// SetTokens stores a token pair in one transaction
func (s *SQLiteStore) SetTokens(access, refresh string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin token update")
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		KeyAccessToken:  access,
		KeyRefreshToken: refresh,
	} {
		if _, err := tx.Exec(
			"INSERT INTO session (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, value,
		); err != nil {
			return errors.Wrapf(err, "failed to write session key %s", key)
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit token update")
}

// SessionID returns the captured session cookie value, empty if none
func (s *SQLiteStore) SessionID() (string, error) {
	return s.get(KeySessionID)
}

// SetSessionID stores the session cookie value
func (s *SQLiteStore) SetSessionID(id string) error {
	return s.set(KeySessionID, id)
}

// Profile returns the cached profile JSON, nil when absent
func (s *SQLiteStore) Profile() ([]byte, error) {
	value, err := s.get(KeyProfile)
	if err != nil || value == "" {
		return nil, err
	}
	return []byte(value), nil
}

// SetProfile caches the profile JSON blob
func (s *SQLiteStore) SetProfile(profile []byte) error {
	return s.set(KeyProfile, string(profile))
}

// Clear removes all session state atomically
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM session")
	return errors.Wrap(err, "failed to clear session")
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
