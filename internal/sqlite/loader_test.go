package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), dbFileName))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	for _, ddl := range schemaDDL {
		_, err := db.Exec(ddl)
		require.NoError(t, err)
	}
	return db
}

func TestLoadJSONL(t *testing.T) {
	tests := []struct {
		name      string
		jsonl     string
		wantRows  int
		wantFirst string
	}{
		{
			name:      "records load in file order",
			jsonl:     "{\"email\":\"a@b.co\",\"first_name\":\"Al\"}\n{\"email\":\"c@d.co\",\"first_name\":\"Cy\"}\n",
			wantRows:  2,
			wantFirst: "a@b.co",
		},
		{
			name:      "unknown keys are kept",
			jsonl:     "{\"email\":\"a@b.co\",\"first_name\":\"Al\",\"nickname\":\"Big Al\"}\n",
			wantRows:  1,
			wantFirst: "a@b.co",
		},
		{
			name:      "non-string values skip the line",
			jsonl:     "{\"email\":\"a@b.co\",\"age\":42}\n{\"email\":\"c@d.co\",\"first_name\":\"Cy\"}\n",
			wantRows:  1,
			wantFirst: "c@d.co",
		},
		{
			name:      "null and array lines are skipped",
			jsonl:     "null\n[1,2]\n{\"email\":\"a@b.co\",\"first_name\":\"Al\"}\n",
			wantRows:  1,
			wantFirst: "a@b.co",
		},
		{
			name:      "repeated email keeps the first line",
			jsonl:     "{\"email\":\"a@b.co\",\"first_name\":\"Al\"}\n{\"email\":\"a@b.co\",\"first_name\":\"Bo\"}\n",
			wantRows:  1,
			wantFirst: "a@b.co",
		},
		{
			name:      "email case folded before the repeat check",
			jsonl:     "{\"email\":\"A@B.co\",\"first_name\":\"Al\"}\n{\"email\":\"a@b.CO\",\"first_name\":\"Bo\"}\n",
			wantRows:  1,
			wantFirst: "a@b.co",
		},
		{
			name:     "empty file",
			jsonl:    "",
			wantRows: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			path := filepath.Join(t.TempDir(), contactsJSONL)
			require.NoError(t, os.WriteFile(path, []byte(tt.jsonl), 0o644))

			require.NoError(t, loadJSONL(db, path))

			var count int
			require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count))
			assert.Equal(t, tt.wantRows, count)
			if tt.wantRows == 0 {
				return
			}

			var first string
			require.NoError(t, db.QueryRow(
				"SELECT json_extract(body, '$.email') FROM documents ORDER BY seq LIMIT 1").Scan(&first))
			assert.Equal(t, tt.wantFirst, first)
		})
	}
}

func TestLoadJSONLKeepsUnknownKeysInBody(t *testing.T) {
	db := openTestDB(t)
	path := filepath.Join(t.TempDir(), contactsJSONL)
	require.NoError(t, os.WriteFile(path, []byte("{\"email\":\"a@b.co\",\"nickname\":\"Big Al\"}\n"), 0o644))

	require.NoError(t, loadJSONL(db, path))

	var nickname string
	require.NoError(t, db.QueryRow("SELECT json_extract(body, '$.nickname') FROM documents").Scan(&nickname))
	assert.Equal(t, "Big Al", nickname)
}

func TestLoadJSONLKeepsFirstOfRepeatedEmail(t *testing.T) {
	db := openTestDB(t)
	path := filepath.Join(t.TempDir(), contactsJSONL)
	content := "{\"email\":\"a@b.co\",\"first_name\":\"Al\"}\n" +
		"{\"email\":\"c@d.co\",\"first_name\":\"Cy\"}\n" +
		"{\"email\":\"A@b.co\",\"first_name\":\"Bo\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, loadJSONL(db, path))

	var first string
	require.NoError(t, db.QueryRow(
		"SELECT json_extract(body, '$.first_name') FROM documents WHERE json_extract(body, '$.email') = 'a@b.co'").Scan(&first))
	assert.Equal(t, "Al", first)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count))
	assert.Equal(t, 2, count)
}
