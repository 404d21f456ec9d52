// Package contacts implements the contact record store: create, read,
// update and delete over a types.DocumentStore, keyed by email.
//
// Every field written to the document store passes through the validate
// package first, and every mutation is all-or-nothing: a rejected field
// aborts the operation before the document store is touched.
package contacts

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/crm/internal/logging"
	"github.com/mesh-intelligence/crm/internal/validate"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// Store enforces one record per email on top of a DocumentStore.
type Store struct {
	// mu serializes the lookup-then-write sequences below.
	mu   sync.Mutex
	docs types.DocumentStore
	log  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output. Emails are masked.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Store backed by docs.
func New(docs types.DocumentStore, opts ...Option) *Store {
	s := &Store{docs: docs, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts c as a new record.
// Returns types.ErrDuplicate if a record with the same email exists.
func (s *Store) Create(c types.Contact) error {
	c, err := normalize(c)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.find(c.Email); err == nil {
		s.log.Debug("create rejected: duplicate", logging.Email(c.Email))
		return fmt.Errorf("create %s: %w", c.Email, types.ErrDuplicate)
	} else if !isNotFound(err) {
		return fmt.Errorf("create %s: %w", c.Email, err)
	}

	if _, err := s.docs.Insert(c.Document()); err != nil {
		return fmt.Errorf("create %s: %w", c.Email, err)
	}
	s.log.Debug("contact created", logging.Email(c.Email))
	return nil
}

// ReadAll returns every stored record in the document store's iteration
// order. The result is a snapshot.
func (s *Store) ReadAll() ([]types.Document, error) {
	docs, err := s.docs.All()
	if err != nil {
		return nil, fmt.Errorf("read all: %w", err)
	}
	return docs, nil
}

// Get returns the record for email.
// Returns types.ErrNotFound if there is none.
func (s *Store) Get(email string) (types.Contact, error) {
	_, doc, err := s.docs.FindOne(types.Where(types.FieldEmail, strings.ToLower(email)))
	if err != nil {
		return types.Contact{}, fmt.Errorf("get %s: %w", email, err)
	}
	return types.ContactFromDocument(doc), nil
}

// Update applies a partial update to the record for email. Each key in
// fields is validated and normalized for its field; keys outside the
// contact schema fail with types.ErrUnknownField. Nothing is written unless
// every key is accepted. fields is not modified.
//
// Returns types.ErrNotFound if no record matches email, and
// types.ErrDuplicate if the update would move the record onto an email held
// by another record.
func (s *Store) Update(email string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.find(email)
	if err != nil {
		return fmt.Errorf("update %s: %w", email, err)
	}

	patch, err := buildPatch(fields)
	if err != nil {
		s.log.Debug("update rejected", logging.Email(email), zap.Error(err))
		return fmt.Errorf("update %s: %w", email, err)
	}
	if len(patch) == 0 {
		return nil
	}

	if newEmail, ok := patch[types.FieldEmail]; ok && newEmail != ref.doc[types.FieldEmail] {
		other, err := s.find(newEmail)
		switch {
		case err == nil && other.id != ref.id:
			return fmt.Errorf("update %s: %w", email, types.ErrDuplicate)
		case err != nil && !isNotFound(err):
			return fmt.Errorf("update %s: %w", email, err)
		}
	}

	if err := s.docs.Update(ref.id, patch); err != nil {
		return fmt.Errorf("update %s: %w", email, err)
	}
	s.log.Debug("contact updated", logging.Email(email), zap.Int("fields", len(patch)))
	return nil
}

// Delete removes the record for email.
// Returns types.ErrNotFound if there is none.
func (s *Store) Delete(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.find(email)
	if err != nil {
		return fmt.Errorf("delete %s: %w", email, err)
	}
	if err := s.docs.Remove(ref.id); err != nil {
		return fmt.Errorf("delete %s: %w", email, err)
	}
	s.log.Debug("contact deleted", logging.Email(email))
	return nil
}

// docRef is a document together with its store identifier.
type docRef struct {
	id  string
	doc types.Document
}

// find looks up the document whose email equals the lowercased argument.
func (s *Store) find(email string) (docRef, error) {
	id, doc, err := s.docs.FindOne(types.Where(types.FieldEmail, strings.ToLower(email)))
	if err != nil {
		return docRef{}, err
	}
	return docRef{id: id, doc: doc}, nil
}

// buildPatch normalizes every recognized key of fields, in schema order,
// then rejects any key outside the schema.
func buildPatch(fields map[string]string) (types.Document, error) {
	patch := make(types.Document, len(fields))
	for _, key := range types.FieldNames {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		v, err := validate.Field(key, raw)
		if err != nil {
			return nil, err
		}
		patch[key] = v
	}
	for key := range fields {
		if !types.IsField(key) {
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownField, key)
		}
	}
	return patch, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}
