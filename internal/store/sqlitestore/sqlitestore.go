// Package sqlitestore keeps preferences in a SQLite table, one row per
// (namespace, key). The schema is managed by embedded migrations.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/tally/internal/store"
)

const (
	kindString = "string"
	kindInt    = "int"
)

// Store is a store.Store over a SQLite database.
type Store struct {
	db        *sql.DB
	namespace string
}

// Open opens (or creates) the database at path, migrates it and scopes the
// returned Store to namespace.
func Open(path, namespace string) (*Store, error) {
	if namespace == "" {
		return nil, errors.New("sqlitestore: empty namespace")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir db dir: %w", store.ErrUnavailable, err)
	}
	// Single connection; the busy timeout waits out other processes.
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %w", store.ErrUnavailable, err)
	}
	db.SetMaxOpenConns(1)
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %w", store.ErrUnavailable, err)
	}
	return &Store{db: db, namespace: namespace}, nil
}

func (s *Store) get(key string) (kind string, str sql.NullString, num sql.NullInt64, found bool, err error) {
	row := s.db.QueryRow(
		`SELECT kind, str_value, int_value FROM prefs WHERE namespace = ? AND key = ?`,
		s.namespace, key,
	)
	if err = row.Scan(&kind, &str, &num); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", str, num, false, nil
		}
		return "", str, num, false, fmt.Errorf("%w: query %q: %w", store.ErrUnavailable, key, err)
	}
	return kind, str, num, true, nil
}

func (s *Store) GetString(key, def string) (string, error) {
	kind, str, _, found, err := s.get(key)
	if err != nil || !found {
		return def, err
	}
	if kind != kindString {
		return def, fmt.Errorf("%w: %q is %s", store.ErrTypeMismatch, key, kind)
	}
	return str.String, nil
}

func (s *Store) GetInt(key string, def int) (int, error) {
	kind, _, num, found, err := s.get(key)
	if err != nil || !found {
		return def, err
	}
	if kind != kindInt {
		return def, fmt.Errorf("%w: %q is %s", store.ErrTypeMismatch, key, kind)
	}
	return int(num.Int64), nil
}

func (s *Store) Edit() store.Editor {
	return store.NewBatch(s.commit)
}

const upsertSQL = `
INSERT INTO prefs (namespace, key, kind, str_value, int_value, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (namespace, key) DO UPDATE SET
    kind = excluded.kind,
    str_value = excluded.str_value,
    int_value = excluded.int_value,
    updated_at = excluded.updated_at`

func (s *Store) commit(b *store.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	if err := s.upsert(b); err != nil {
		return fmt.Errorf("%w: commit: %w", store.ErrUnavailable, err)
	}
	return nil
}

// upsert writes every staged key in one transaction, stamped with the same
// second-resolution UTC time.
func (s *Store) upsert(b *store.Batch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // no-op after Commit

	stmt, err := tx.Prepare(upsertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	ts := time.Now().UTC().Truncate(time.Second)
	for k, v := range b.Strings {
		if _, err := stmt.Exec(s.namespace, k, kindString, v, nil, ts); err != nil {
			return fmt.Errorf("put %q: %w", k, err)
		}
	}
	for k, v := range b.Ints {
		if _, err := stmt.Exec(s.namespace, k, kindInt, nil, v, ts); err != nil {
			return fmt.Errorf("put %q: %w", k, err)
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
