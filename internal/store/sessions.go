package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Session is one logged-in user on this device. User is the snapshot taken
// at login (or the last Refresh) and carries no password.
type Session struct {
	ID        string
	User      models.User
	CreatedAt time.Time
}

type sessionRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Snapshot  string    `db:"snapshot"`
	CreatedAt time.Time `db:"created_at"`
}

// Sessions keeps "who is logged in" in the local database only. It is a
// cache for this device, never the source of truth for the user record.
type Sessions struct {
	db *sqlx.DB
}

// NewSessions wraps the local database.
func NewSessions(db *sqlx.DB) *Sessions {
	return &Sessions{db: db}
}

// Start opens a session for u.
func (s *Sessions) Start(ctx context.Context, u models.User) (Session, error) {
	sess := Session{ID: uuid.NewString(), User: u.Sanitized(), CreatedAt: time.Now().UTC()}
	snap, err := json.Marshal(sess.User)
	if err != nil {
		return Session{}, fmt.Errorf("sessions: encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, snapshot, created_at) VALUES (?, ?, ?, ?)`,
		sess.ID, u.ID, string(snap), sess.CreatedAt,
	)
	if err != nil {
		return Session{}, fmt.Errorf("sessions: start: %w", err)
	}
	return sess, nil
}

// Get returns the session with id or apperr.ErrNotFound.
func (s *Sessions) Get(ctx context.Context, id string) (Session, error) {
	var row sessionRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, user_id, snapshot, created_at FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, apperr.ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("sessions: get: %w", err)
	}
	sess := Session{ID: row.ID, CreatedAt: row.CreatedAt}
	if err := json.Unmarshal([]byte(row.Snapshot), &sess.User); err != nil {
		return Session{}, fmt.Errorf("sessions: decode: %w", err)
	}
	return sess, nil
}

// Refresh rewrites the snapshot of every session belonging to u.
func (s *Sessions) Refresh(ctx context.Context, u models.User) error {
	snap, err := json.Marshal(u.Sanitized())
	if err != nil {
		return fmt.Errorf("sessions: encode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET snapshot = ? WHERE user_id = ?`, string(snap), u.ID); err != nil {
		return fmt.Errorf("sessions: refresh: %w", err)
	}
	return nil
}

// End closes one session. Ending an unknown session is not an error.
func (s *Sessions) End(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sessions: end: %w", err)
	}
	return nil
}

// EndAllFor closes every session of userID and returns how many there were.
func (s *Sessions) EndAllFor(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("sessions: end all: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
