// Package store reads and writes whole named JSON documents.
//
// A Store sits in front of a Backend (files, a database table or memory) and
// owns two things the backends do not: JSON encoding and per-document
// serialization. Every read-modify-write cycle on one name runs under that
// name's lock, so concurrent requests against the same document queue
// instead of losing each other's updates.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrNotFound is returned by a Backend when the named document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrInvalidName is returned for document names that could escape the store.
var ErrInvalidName = errors.New("invalid document name")

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Backend persists raw document bytes by name.
type Backend interface {
	// Load returns the stored bytes, or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the named document in full.
	Save(ctx context.Context, name string, data []byte) error
}

// Store is safe for concurrent use.
type Store struct {
	backend Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store over backend.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Read decodes the named document into doc. doc should already hold the
// caller's fallback: when the document does not exist doc is left untouched
// and nothing is created.
func (s *Store) Read(ctx context.Context, name string, doc interface{}) error {
	unlock, err := s.lock(name)
	if err != nil {
		return err
	}
	defer unlock()

	return s.read(ctx, name, doc)
}

// Write encodes doc and replaces the named document.
func (s *Store) Write(ctx context.Context, name string, doc interface{}) error {
	unlock, err := s.lock(name)
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(ctx, name, doc)
}

// Update runs a read-modify-write cycle while holding the document's lock.
// doc is read as in Read, then mutate is called; it reports whether doc
// changed. Unchanged documents are not rewritten.
func (s *Store) Update(ctx context.Context, name string, doc interface{}, mutate func() (bool, error)) error {
	unlock, err := s.lock(name)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.read(ctx, name, doc); err != nil {
		return err
	}

	changed, err := mutate()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return s.write(ctx, name, doc)
}

func (s *Store) read(ctx context.Context, name string, doc interface{}) error {
	data, err := s.backend.Load(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, name string, doc interface{}) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.backend.Save(ctx, name, data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// lock acquires the mutex for name. The set of names is small and fixed, so
// mutexes are never reclaimed.
func (s *Store) lock(name string) (func(), error) {
	if !validName.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	s.mu.Lock()
	m, ok := s.locks[name]
	if !ok {
		m = &sync.Mutex{}
		s.locks[name] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

// Encode renders doc as pretty-printed JSON with a two space indent.
// HTML characters are left unescaped so documents match what browsers write.
func Encode(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
