package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

// Postgres is the shared remote store. Every collection lives in one table
// keyed by (kind, id) with the entity as JSONB, so field filters run
// server-side with ->> and new entity fields need no migration.
type Postgres struct {
	pool *pgxpool.Pool
}

const remoteSchema = `
CREATE TABLE IF NOT EXISTS ecolearn_records (
    kind       TEXT        NOT NULL,
    id         TEXT        NOT NULL,
    data       JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS idx_ecolearn_records_kind_created
    ON ecolearn_records (kind, created_at)`

// ConnectPostgres opens a pool to url and applies the schema. A non-empty
// key overrides the password in url; both values must be present for the
// remote store to count as configured.
func ConnectPostgres(ctx context.Context, url, key string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse url: %w", err)
	}
	if key != "" {
		cfg.ConnConfig.Password = key
	}
	if cfg.MaxConns == 0 {
		cfg.MaxConns = 10
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	p := &Postgres{pool: pool}
	if err := p.Migrate(ctx); err != nil {
		// The pool reconnects lazily, so an unreachable database at
		// startup is not fatal; the first call will simply fail over.
		return p, err
	}
	return p, nil
}

// Migrate creates the records table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, remoteSchema); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) List(ctx context.Context, kind Kind, f Filter) ([]Record, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if f.Field == "" {
		rows, err = p.pool.Query(ctx,
			`SELECT id, data, updated_at FROM ecolearn_records
			 WHERE kind = $1 ORDER BY created_at, id`, string(kind))
	} else {
		rows, err = p.pool.Query(ctx,
			`SELECT id, data, updated_at FROM ecolearn_records
			 WHERE kind = $1 AND data->>$2 = $3 ORDER BY created_at, id`, string(kind), f.Field, f.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: list %s: %w", kind, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r    Record
			data []byte
		)
		if err := rows.Scan(&r.ID, &data, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", kind, err)
		}
		r.Data = data
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list %s: %w", kind, err)
	}
	return out, nil
}

func (p *Postgres) Get(ctx context.Context, kind Kind, id string) (Record, error) {
	var (
		r    Record
		data []byte
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id, data, updated_at FROM ecolearn_records WHERE kind = $1 AND id = $2`,
		string(kind), id,
	).Scan(&r.ID, &data, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, apperr.ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("postgres: get %s %s: %w", kind, id, err)
	}
	r.Data = data
	return r, nil
}

func (p *Postgres) Put(ctx context.Context, kind Kind, rec Record) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO ecolearn_records (kind, id, data, updated_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (kind, id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		string(kind), rec.ID, []byte(rec.Data), rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: put %s %s: %w", kind, rec.ID, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, kind Kind, id string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM ecolearn_records WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return fmt.Errorf("postgres: delete %s %s: %w", kind, id, err)
	}
	return nil
}
