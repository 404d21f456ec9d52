package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// loadJSONL reads contacts.jsonl and inserts each record into the documents
// table in file order. Loading is transactional: all records load or the
// table stays empty. Lines that are not flat string objects are skipped.
// Emails are lowercased, and a line whose email was already loaded is
// skipped so the table holds at most one record per email.
func loadJSONL(db *sql.DB, path string) error {
	lines, err := readJSONL(path)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO documents (doc_id, body) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		var doc types.Document
		if err := json.Unmarshal(line, &doc); err != nil || doc == nil {
			continue
		}
		if email, ok := doc[types.FieldEmail]; ok {
			email = strings.ToLower(email)
			if seen[email] {
				continue
			}
			seen[email] = true
			doc[types.FieldEmail] = email
		}
		body, err := encodeDocument(doc)
		if err != nil {
			return err
		}
		id, err := newDocID()
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(id, body); err != nil {
			return fmt.Errorf("loading document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
