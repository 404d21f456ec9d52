// Package memory implements an in-memory DocumentStore. Documents live only
// as long as the Store value; it backs the "memory" backend and gives tests
// an isolated store per instance.
package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// Compile-time interface check.
var _ types.Backend = (*Store)(nil)

type entry struct {
	id  string
	doc types.Document
}

// Store keeps documents in insertion order.
type Store struct {
	mu       sync.RWMutex
	entries  []entry
	detached bool
}

// New returns an empty, attached Store.
func New() *Store {
	return &Store{}
}

// Attach checks that config selects the memory backend and reattaches a
// detached Store. A Store from New is already attached; Attach on it only
// validates config.
func (s *Store) Attach(config types.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendMemory {
		return fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = false
	return nil
}

// Detach discards every document. Until the next Attach, operations return
// types.ErrStoreDetached. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.detached = true
	return nil
}

// Insert stores a copy of doc under a new UUID v7 identifier.
func (s *Store) Insert(doc types.Document) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return "", types.ErrStoreDetached
	}
	s.entries = append(s.entries, entry{id: id.String(), doc: doc.Clone()})
	return id.String(), nil
}

// All returns copies of every document in insertion order.
func (s *Store) All() ([]types.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detached {
		return nil, types.ErrStoreDetached
	}

	out := make([]types.Document, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.doc.Clone())
	}
	return out, nil
}

// FindOne returns the first document matching p.
func (s *Store) FindOne(p types.Predicate) (string, types.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detached {
		return "", nil, types.ErrStoreDetached
	}

	for _, e := range s.entries {
		if p.Match(e.doc) {
			return e.id, e.doc.Clone(), nil
		}
	}
	return "", nil, types.ErrNotFound
}

// Update merges patch into the document with the given id.
func (s *Store) Update(id string, patch types.Document) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return types.ErrStoreDetached
	}

	i := s.index(id)
	if i < 0 {
		return types.ErrNotFound
	}
	for k, v := range patch {
		s.entries[i].doc[k] = v
	}
	return nil
}

// Remove deletes the document with the given id.
func (s *Store) Remove(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return types.ErrStoreDetached
	}

	i := s.index(id)
	if i < 0 {
		return types.ErrNotFound
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// index returns the position of id, or -1. The caller must hold s.mu.
func (s *Store) index(id string) int {
	return slices.IndexFunc(s.entries, func(e entry) bool { return e.id == id })
}
