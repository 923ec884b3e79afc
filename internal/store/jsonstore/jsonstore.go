package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tally/internal/store"
)

// JSON-backed storage. One human-readable file per namespace.
// No locking; a single local user and a single writer.

const fileExt = ".json"

// errCorrupt marks a file that exists but does not hold a JSON object.
var errCorrupt = errors.New("corrupt preferences file")

// Store reads and writes <dir>/<namespace>.json.
type Store struct {
	path string
	log  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report a replaced corrupt file.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open returns a Store for namespace under dir, creating dir if needed.
// The file itself is created on the first commit.
func Open(dir, namespace string, opts ...Option) (*Store, error) {
	if namespace == "" {
		return nil, errors.New("jsonstore: empty namespace")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir: %w", store.ErrUnavailable, err)
	}
	s := &Store{
		path: filepath.Join(dir, namespace+fileExt),
		log:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Path is the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) load() (map[string]any, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("%w: read file: %w", store.ErrUnavailable, err)
	}
	values := map[string]any{}
	if len(bytes.TrimSpace(b)) == 0 {
		return values, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", store.ErrUnavailable, errCorrupt, err)
	}
	// A literal null decodes to a nil map.
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

func (s *Store) GetString(key, def string) (string, error) {
	values, err := s.load()
	if err != nil {
		return def, err
	}
	v, ok := values[key]
	if !ok {
		return def, nil
	}
	str, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("%w: %q in %s", store.ErrTypeMismatch, key, s.path)
	}
	return str, nil
}

func (s *Store) GetInt(key string, def int) (int, error) {
	values, err := s.load()
	if err != nil {
		return def, err
	}
	v, ok := values[key]
	if !ok {
		return def, nil
	}
	num, ok := v.(json.Number)
	if !ok {
		return def, fmt.Errorf("%w: %q in %s", store.ErrTypeMismatch, key, s.path)
	}
	n, err := num.Int64()
	if err != nil {
		return def, fmt.Errorf("%w: %q in %s: %w", store.ErrTypeMismatch, key, s.path, err)
	}
	return int(n), nil
}

func (s *Store) Edit() store.Editor {
	return store.NewBatch(s.commit)
}

// commit merges the batch into the current file and replaces it through a
// temp file, so readers see either the old or the new contents. A file that
// cannot be parsed is overwritten with the batch alone.
func (s *Store) commit(b *store.Batch) error {
	values, err := s.load()
	if errors.Is(err, errCorrupt) {
		s.log.Warn("replacing unreadable preferences file", "path", s.path, "err", err)
		values, err = map[string]any{}, nil
	}
	if err != nil {
		return err
	}
	for k, v := range b.Strings {
		values[k] = v
	}
	for k, v := range b.Ints {
		values[k] = v
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: write file: %w", store.ErrUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: rename: %w", store.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
