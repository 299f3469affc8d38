package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/SAINARENDRAPANGA/lecture-progress-tracker-wise/internal/domain"
	_ "modernc.org/sqlite"
)

const schemaProgress = `
CREATE TABLE IF NOT EXISTS progress (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteStore implements domain.ProgressStore on a single SQLite table.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex // Protects closed
	closed bool
}

// NewSQLiteStore opens (or creates) the database file at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout=5000", "PRAGMA journal_mode=WAL"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.Exec(schemaProgress); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *SQLiteStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *SQLiteStore) Get(key string) ([]byte, bool) {
	if s.isClosed() {
		return nil, false
	}
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM progress WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (s *SQLiteStore) Put(key string, value []byte) error {
	if s.isClosed() {
		return domain.ErrStoreClosed
	}
	_, err := s.db.Exec(`
		INSERT INTO progress (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}

func (s *SQLiteStore) Delete(key string) error {
	if s.isClosed() {
		return domain.ErrStoreClosed
	}
	_, err := s.db.Exec(`DELETE FROM progress WHERE key = ?`, key)
	return err
}

// DeletePrefix removes every key starting with prefix
func (s *SQLiteStore) DeletePrefix(prefix string) error {
	if s.isClosed() {
		return domain.ErrStoreClosed
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	_, err := s.db.Exec(`DELETE FROM progress WHERE key LIKE ? ESCAPE '\'`, escaped+"%")
	return err
}
