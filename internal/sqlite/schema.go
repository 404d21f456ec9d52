package sqlite

// Schema DDL. Documents are stored as a JSON object in body; seq preserves
// insertion order across the lifetime of the database file.
const createDocuments = `CREATE TABLE documents (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    doc_id TEXT NOT NULL UNIQUE,
    body TEXT NOT NULL CHECK (json_valid(body))
);`

// schemaDDL lists all statements executed on Attach.
var schemaDDL = []string{
	createDocuments,
}

// File names inside the data directory.
const (
	dbFileName    = "contacts.db"
	contactsJSONL = "contacts.jsonl"
)
