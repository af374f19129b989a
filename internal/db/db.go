// Package db opens the device-local SQLite database and applies its schema.
//
// ────────────────────────────────────────────────────────────────────
// LEARNING NOTE — why modernc.org/sqlite instead of go-sqlite3?
// ────────────────────────────────────────────────────────────────────
// go-sqlite3 is a CGo binding and needs a C toolchain on the build
// machine. modernc.org/sqlite is a pure-Go port: no CGo, cross-compiles
// cleanly, and the driver registers itself as "sqlite".
//
// The local database is the fallback store every device always has, so
// it must start on any machine the binary runs on.
package db

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	// Blank import: the modernc driver registers itself with
	// database/sql under the name "sqlite" when this package loads.
	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at dsn and runs all migrations.
//
// Recommended DSN formats for modernc.org/sqlite:
//   - Production file: "ecolearn.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
//   - Tests:           "file:testXYZ?mode=memory&cache=shared"
//
// LEARNING NOTE — sqlx
// sqlx wraps *sql.DB and adds struct scanning (Get/Select with `db:`
// tags) and named parameters. The underlying pool is the same one
// database/sql would give us.
func Open(dsn string, log *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite allows one writer at a time. A single connection serialises
	// writers in the pool instead of surfacing SQLITE_BUSY to callers.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if log != nil {
		log.Info("local database ready", "dsn", dsn)
	}
	return db, nil
}

// migrate runs each DDL statement in the schema individually.
//
// LEARNING NOTE — why not one big Exec(schema)?
// The SQLite drivers execute only the FIRST statement of a
// multi-statement string. Splitting on ";" and looping runs all of them.
func migrate(db *sqlx.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w\nstatement: %s", err, stmt)
		}
	}
	return nil
}

// schema contains every CREATE TABLE statement for the local store.
//
// LEARNING NOTE — schema design choices
//
//	kv            : one row per entity collection ("ecolearn_users",
//	                "ecolearn_lessons", ...). The value is the whole
//	                collection as a JSON array. Collections are small
//	                and always read whole, so one blob per key keeps the
//	                local store a plain key→JSON map.
//
//	sessions      : who is logged in on this device. A row per session
//	                id (the token's jti) holding a snapshot of the user.
//	                Never sent to the remote store.
//
//	sync_journal  : records that only the local store holds because the
//	                remote store was unreachable when they were written.
//	                PRIMARY KEY (kind, id) collapses repeated writes to
//	                the same record into one pending entry; version
//	                bumps on each so a replay only clears what it saw.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    snapshot   TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

CREATE TABLE IF NOT EXISTS sync_journal (
    kind      TEXT NOT NULL,
    id        TEXT NOT NULL,
    op        TEXT NOT NULL CHECK(op IN ('put','delete')),
    version   INTEGER NOT NULL DEFAULT 1,
    queued_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (kind, id)
);
`
