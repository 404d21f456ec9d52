package types

import "slices"

// Document field names. A persisted contact document carries exactly these
// five keys, all string-valued.
const (
	FieldEmail       = "email"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldPhoneNumber = "phone_number"
	FieldAddress     = "address"
)

// FieldNames lists the document keys in their canonical order.
var FieldNames = []string{
	FieldEmail,
	FieldFirstName,
	FieldLastName,
	FieldPhoneNumber,
	FieldAddress,
}

// IsField reports whether key is one of the five contact document keys.
func IsField(key string) bool {
	return slices.Contains(FieldNames, key)
}

// Document is a flat, schemaless string mapping as held by a DocumentStore.
type Document map[string]string

// Clone returns a copy of d. A nil Document clones to an empty one.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Predicate selects documents whose Field equals Value exactly.
type Predicate struct {
	Field string
	Value string
}

// Where builds an equality predicate on a document field.
func Where(field, value string) Predicate {
	return Predicate{Field: field, Value: value}
}

// Match reports whether doc satisfies the predicate. A document without the
// field never matches.
func (p Predicate) Match(doc Document) bool {
	v, ok := doc[p.Field]
	return ok && v == p.Value
}

// DocumentStore is the persistence contract used by the record store.
// Implementations assign an opaque identifier to each inserted document and
// iterate documents in insertion order.
type DocumentStore interface {
	// Insert stores doc as a new document and returns its identifier.
	Insert(doc Document) (string, error)

	// All returns a snapshot of every document. Mutating the result does
	// not affect the store.
	All() ([]Document, error)

	// FindOne returns the first document matching p, with its identifier.
	// Returns ErrNotFound if no document matches.
	FindOne(p Predicate) (string, Document, error)

	// Update merges patch into the document with the given identifier,
	// leaving keys absent from patch untouched.
	// Returns ErrNotFound if the identifier is unknown.
	Update(id string, patch Document) error

	// Remove deletes the document with the given identifier.
	// Returns ErrNotFound if the identifier is unknown.
	Remove(id string) error
}

// Backend is a DocumentStore with an attach/detach lifecycle. Attach opens
// the store described by a Config; Detach flushes pending writes and
// releases resources. Operations on a detached backend return
// ErrStoreDetached.
type Backend interface {
	DocumentStore
	Attach(config Config) error
	Detach() error
}
