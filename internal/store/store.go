// Package store defines the persistent key-value preferences store the
// counter screen reads on start and writes on exit.
//
// A Store is scoped to one namespace. Reads take a default that is returned
// when the key is absent; writes are staged on an Editor and applied in a
// single atomic Commit.
package store

import "errors"

var (
	// ErrUnavailable reports that the backing medium could not be read or written.
	ErrUnavailable = errors.New("store unavailable")
	// ErrTypeMismatch reports a key holding a value of another type.
	ErrTypeMismatch = errors.New("stored value has a different type")
)

// Store is a namespaced key-value store.
type Store interface {
	GetString(key, def string) (string, error)
	GetInt(key string, def int) (int, error)
	Edit() Editor
	Close() error
}

// Editor stages writes until Commit.
type Editor interface {
	PutString(key, value string) Editor
	PutInt(key string, value int) Editor
	// Commit applies every staged write at once. Nothing is written on error.
	Commit() error
}

// Batch is a reusable Editor that keeps the latest staged value per key.
// Backends create one with NewBatch and supply the commit function.
type Batch struct {
	Strings map[string]string
	Ints    map[string]int
	commit  func(*Batch) error
}

// NewBatch returns a Batch that hands itself to commit on Commit.
func NewBatch(commit func(*Batch) error) *Batch {
	return &Batch{
		Strings: map[string]string{},
		Ints:    map[string]int{},
		commit:  commit,
	}
}

func (b *Batch) PutString(key, value string) Editor {
	delete(b.Ints, key)
	b.Strings[key] = value
	return b
}

func (b *Batch) PutInt(key string, value int) Editor {
	delete(b.Strings, key)
	b.Ints[key] = value
	return b
}

func (b *Batch) Commit() error { return b.commit(b) }

// Len is the number of staged keys.
func (b *Batch) Len() int { return len(b.Strings) + len(b.Ints) }
