// Package memstore is an in-memory store.Store. It backs the "memory"
// backend and stands in for real storage in tests.
package memstore

import (
	"fmt"

	"github.com/idilsaglam/tally/internal/store"
)

// Store keeps values in a map. It is not safe for concurrent use.
type Store struct {
	values map[string]any

	// ReadErr and WriteErr, when set, make reads or commits fail with
	// store.ErrUnavailable wrapping them.
	ReadErr  error
	WriteErr error

	// Commits counts successful commits.
	Commits int
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: map[string]any{}}
}

// Seed sets values directly, bypassing the editor.
func (s *Store) Seed(values map[string]any) *Store {
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Snapshot returns a copy of the stored values.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *Store) GetString(key, def string) (string, error) {
	if s.ReadErr != nil {
		return def, fmt.Errorf("%w: %w", store.ErrUnavailable, s.ReadErr)
	}
	v, ok := s.values[key]
	if !ok {
		return def, nil
	}
	str, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("%w: %q is %T", store.ErrTypeMismatch, key, v)
	}
	return str, nil
}

func (s *Store) GetInt(key string, def int) (int, error) {
	if s.ReadErr != nil {
		return def, fmt.Errorf("%w: %w", store.ErrUnavailable, s.ReadErr)
	}
	v, ok := s.values[key]
	if !ok {
		return def, nil
	}
	n, ok := v.(int)
	if !ok {
		return def, fmt.Errorf("%w: %q is %T", store.ErrTypeMismatch, key, v)
	}
	return n, nil
}

func (s *Store) Edit() store.Editor {
	return store.NewBatch(s.commit)
}

func (s *Store) commit(b *store.Batch) error {
	if s.WriteErr != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, s.WriteErr)
	}
	for k, v := range b.Strings {
		s.values[k] = v
	}
	for k, v := range b.Ints {
		s.values[k] = v
	}
	s.Commits++
	return nil
}

func (s *Store) Close() error { return nil }
