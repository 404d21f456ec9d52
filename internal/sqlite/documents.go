package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// Insert stores doc under a new UUID v7 identifier.
func (b *Backend) Insert(doc types.Document) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrStoreDetached
	}

	id, err := newDocID()
	if err != nil {
		return "", err
	}
	body, err := encodeDocument(doc)
	if err != nil {
		return "", err
	}
	err = b.mutateLocked(func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO documents (doc_id, body) VALUES (?, ?)", id, body); err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// All returns every document in insertion order.
func (b *Backend) All() ([]types.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query("SELECT body FROM documents ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("fetching documents: %w", err)
	}
	defer rows.Close()

	docs := []types.Document{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc, err := decodeDocument(body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// FindOne returns the earliest inserted document whose field equals the
// predicate value.
func (b *Backend) FindOne(p types.Predicate) (string, types.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return "", nil, types.ErrStoreDetached
	}
	if strings.ContainsRune(p.Field, '"') {
		return "", nil, types.ErrNotFound
	}

	var id, body string
	err := b.db.QueryRow(
		"SELECT doc_id, body FROM documents WHERE json_extract(body, ?) = ? ORDER BY seq LIMIT 1",
		jsonPath(p.Field), p.Value,
	).Scan(&id, &body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, types.ErrNotFound
		}
		return "", nil, fmt.Errorf("finding document: %w", err)
	}

	doc, err := decodeDocument(body)
	if err != nil {
		return "", nil, err
	}
	return id, doc, nil
}

// Update merge-patches the document body with SQLite's json_patch.
func (b *Backend) Update(id string, patch types.Document) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	body, err := encodeDocument(patch)
	if err != nil {
		return err
	}
	return b.mutateLocked(func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE documents SET body = json_patch(body, ?) WHERE doc_id = ?", body, id)
		if err != nil {
			return fmt.Errorf("updating document %s: %w", id, err)
		}
		return requireOneRow(res)
	})
}

// Remove deletes the document with the given identifier.
func (b *Backend) Remove(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	return b.mutateLocked(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM documents WHERE doc_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting document %s: %w", id, err)
		}
		return requireOneRow(res)
	})
}

// requireOneRow maps a statement that touched no rows to ErrNotFound.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// jsonPath builds the SQLite JSON path selecting a top-level key.
func jsonPath(field string) string {
	return `$."` + field + `"`
}

func encodeDocument(doc types.Document) (string, error) {
	if doc == nil {
		doc = types.Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling document: %w", err)
	}
	return string(data), nil
}

func decodeDocument(body string) (types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("parsing document body: %w", err)
	}
	return doc, nil
}
