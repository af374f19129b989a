package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

// keyPrefix namespaces the collection keys in the kv table.
const keyPrefix = "ecolearn_"

// Local is the device-local durable store: one JSON blob per collection in
// SQLite. It is always available, so it is both the only backend when no
// remote store is configured and the fallback when one is.
type Local struct {
	db *sqlx.DB

	// mu serialises read-modify-write cycles on a collection blob.
	mu sync.Mutex
}

// NewLocal wraps an open local database (see db.Open).
func NewLocal(db *sqlx.DB) *Local {
	return &Local{db: db}
}

func (l *Local) Name() string { return "local" }

func (l *Local) List(ctx context.Context, kind Kind, f Filter) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs, err := l.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if f.Match(r.Data) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *Local) Get(ctx context.Context, kind Kind, id string) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs, err := l.load(ctx, kind)
	if err != nil {
		return Record{}, err
	}
	for _, r := range recs {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, apperr.ErrNotFound
}

func (l *Local) Put(ctx context.Context, kind Kind, rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs, err := l.load(ctx, kind)
	if err != nil {
		return err
	}
	replaced := false
	for i := range recs {
		if recs[i].ID == rec.ID {
			recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, rec)
	}
	return l.save(ctx, kind, recs)
}

func (l *Local) Delete(ctx context.Context, kind Kind, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	recs, err := l.load(ctx, kind)
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, r := range recs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recs) {
		return nil
	}
	return l.save(ctx, kind, kept)
}

// load reads a collection blob. A missing key is an empty collection.
func (l *Local) load(ctx context.Context, kind Kind) ([]Record, error) {
	var blob string
	err := l.db.GetContext(ctx, &blob, `SELECT value FROM kv WHERE key = ?`, keyPrefix+string(kind))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("local: read %s: %w", kind, err)
	}
	var recs []Record
	if err := json.Unmarshal([]byte(blob), &recs); err != nil {
		return nil, fmt.Errorf("local: decode %s: %w", kind, err)
	}
	return recs, nil
}

func (l *Local) save(ctx context.Context, kind Kind, recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	blob, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("local: encode %s: %w", kind, err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		keyPrefix+string(kind), string(blob), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("local: write %s: %w", kind, err)
	}
	return nil
}
