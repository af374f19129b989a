package db

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDBCounter atomic.Int64

// NewTestDB creates a fresh in-memory SQLite database with the schema
// applied. It is closed when the test ends.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := Open(dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	path := t.TempDir() + "/test.db"

	db, err := Open(path, nil)
	require.NoError(t, err)
	defer db.Close()

	for _, tbl := range []string{"kv", "sessions", "sync_journal"} {
		var name string
		err := db.Get(&name, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, tbl)
		assert.NoError(t, err, "table %q", tbl)
	}

	// Migrations are IF NOT EXISTS, so a second Open is harmless.
	db2, err := Open(path, nil)
	require.NoError(t, err)
	db2.Close()
}

func TestJournalRejectsUnknownOp(t *testing.T) {
	db := NewTestDB(t)
	_, err := db.Exec(`INSERT INTO sync_journal (kind, id, op) VALUES ('users', 'u1', 'merge')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO sync_journal (kind, id, op) VALUES ('users', 'u1', 'put')`)
	assert.NoError(t, err)
}
