// Package sqlite implements the SQLite document store for contact records.
// SQLite is the query engine; contacts.jsonl in the data directory is the
// source of truth and is reloaded on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.DocumentStore on SQLite with JSONL persistence.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB

	// dirty is set when a mutation has not yet been written to
	// contacts.jsonl (on_close sync strategy).
	dirty bool
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the backend. It creates DataDir if needed, recreates the
// SQLite database file, and loads contacts.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The JSONL file is authoritative; the database is rebuilt from it.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	jsonlPath := filepath.Join(dataDir, contactsJSONL)
	if err := ensureJSONL(jsonlPath); err != nil {
		db.Close()
		return err
	}
	if err := loadJSONL(db, jsonlPath); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.dirty = false
	b.attached = true
	return nil
}

// Detach writes any deferred changes to contacts.jsonl and closes the
// database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.dirty {
		if err := b.writeJSONLLocked(); err != nil {
			return fmt.Errorf("flush pending writes: %w", err)
		}
	}

	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	return nil
}

// JSONLPath returns the path of the contacts file backing this store.
func (b *Backend) JSONLPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.contactsFile()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// mutateLocked runs fn in a transaction and persists the result according
// to the sync strategy. With immediate sync the transaction commits only
// after contacts.jsonl has been rewritten, so a failed write leaves the
// database unchanged. The caller must hold b.mu for writing.
func (b *Backend) mutateLocked(fn func(tx *sql.Tx) error) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if b.config.GetSyncStrategy() == types.SyncOnClose {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing transaction: %w", err)
		}
		b.dirty = true
		return nil
	}

	if err := writeDocumentsJSONL(tx, b.contactsFile()); err != nil {
		return fmt.Errorf("persisting %s: %w", contactsJSONL, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// writeJSONLLocked rewrites contacts.jsonl from the documents table.
func (b *Backend) writeJSONLLocked() error {
	if err := writeDocumentsJSONL(b.db, b.contactsFile()); err != nil {
		return err
	}
	b.dirty = false
	return nil
}

// contactsFile is the path of contacts.jsonl. The caller must hold b.mu.
func (b *Backend) contactsFile() string {
	return filepath.Join(b.dataDir, contactsJSONL)
}

// writeDocumentsJSONL writes every document body read through q to path,
// in insertion order.
func writeDocumentsJSONL(q querier, path string) error {
	rows, err := q.Query("SELECT body FROM documents ORDER BY seq")
	if err != nil {
		return fmt.Errorf("querying documents for JSONL: %w", err)
	}
	defer rows.Close()

	var lines [][]byte
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("scanning document for JSONL: %w", err)
		}
		lines = append(lines, []byte(body))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating documents for JSONL: %w", err)
	}
	return writeJSONL(path, lines)
}

// newDocID generates a UUID v7 document identifier.
func newDocID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
