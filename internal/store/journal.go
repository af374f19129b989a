package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Op is the kind of write a journal entry stands for.
type Op string

const (
	OpPut    Op = "put"
	OpDelete Op = "delete"
)

// JournalEntry marks a record whose latest write reached only the local
// store.
type JournalEntry struct {
	Kind     Kind      `db:"kind"`
	ID       string    `db:"id"`
	Op       Op        `db:"op"`
	Version  int64     `db:"version"`
	QueuedAt time.Time `db:"queued_at"`
}

// Journal is the sync journal kept next to the local store. One entry per
// (kind, id); a later write to the same record replaces the earlier entry.
type Journal struct {
	db *sqlx.DB
}

// NewJournal wraps the local database.
func NewJournal(db *sqlx.DB) *Journal {
	return &Journal{db: db}
}

// Mark records that kind/id needs replaying to the remote store.
func (j *Journal) Mark(ctx context.Context, kind Kind, id string, op Op) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO sync_journal (kind, id, op, version, queued_at) VALUES (?, ?, ?, 1, ?)
		 ON CONFLICT(kind, id) DO UPDATE SET op = excluded.op, version = sync_journal.version + 1,
		     queued_at = excluded.queued_at`,
		string(kind), id, string(op), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("journal: mark %s %s: %w", kind, id, err)
	}
	return nil
}

// Pending returns outstanding entries, oldest first. An empty kind returns
// entries of every kind.
func (j *Journal) Pending(ctx context.Context, kind Kind) ([]JournalEntry, error) {
	var entries []JournalEntry
	var err error
	if kind == "" {
		err = j.db.SelectContext(ctx, &entries,
			`SELECT kind, id, op, version, queued_at FROM sync_journal ORDER BY queued_at, kind, id`)
	} else {
		err = j.db.SelectContext(ctx, &entries,
			`SELECT kind, id, op, version, queued_at FROM sync_journal WHERE kind = ? ORDER BY queued_at, id`, string(kind))
	}
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	return entries, nil
}

// Clear removes e, but only if no newer write to the same record has been
// journalled since e was read. That newer write keeps its entry.
func (j *Journal) Clear(ctx context.Context, e JournalEntry) error {
	_, err := j.db.ExecContext(ctx,
		`DELETE FROM sync_journal WHERE kind = ? AND id = ? AND version = ?`,
		string(e.Kind), e.ID, e.Version,
	)
	if err != nil {
		return fmt.Errorf("journal: clear %s %s: %w", e.Kind, e.ID, err)
	}
	return nil
}

// Lookup returns the outstanding entry for kind/id, if any.
func (j *Journal) Lookup(ctx context.Context, kind Kind, id string) (JournalEntry, bool, error) {
	var e JournalEntry
	err := j.db.GetContext(ctx, &e,
		`SELECT kind, id, op, version, queued_at FROM sync_journal WHERE kind = ? AND id = ?`,
		string(kind), id)
	if errors.Is(err, sql.ErrNoRows) {
		return JournalEntry{}, false, nil
	}
	if err != nil {
		return JournalEntry{}, false, fmt.Errorf("journal: lookup %s %s: %w", kind, id, err)
	}
	return e, true, nil
}

// Forget drops any entry for kind/id regardless of age. Used when a fresh
// remote write supersedes whatever was journalled.
func (j *Journal) Forget(ctx context.Context, kind Kind, id string) error {
	_, err := j.db.ExecContext(ctx,
		`DELETE FROM sync_journal WHERE kind = ? AND id = ?`, string(kind), id)
	if err != nil {
		return fmt.Errorf("journal: forget %s %s: %w", kind, id, err)
	}
	return nil
}

// Len returns the number of outstanding entries.
func (j *Journal) Len(ctx context.Context) (int, error) {
	var n int
	if err := j.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sync_journal`); err != nil {
		return 0, fmt.Errorf("journal: count: %w", err)
	}
	return n, nil
}
