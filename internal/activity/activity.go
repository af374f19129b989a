// Package activity is the append-only moderation log. It keeps the newest
// entries up to a fixed limit and evicts the oldest beyond it.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/store"
)

// DefaultLimit is how many entries are retained when no limit is given.
const DefaultLimit = 500

// Log records moderation actions.
type Log struct {
	st    *store.Store
	limit int
	log   *slog.Logger
	now   func() time.Time
}

// New builds a Log. A non-positive limit uses DefaultLimit.
func New(st *store.Store, limit int, log *slog.Logger) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Log{st: st, limit: limit, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Record appends an entry for action by actor against target (which may be
// nil). A failure to log never fails the action that was logged.
func (l *Log) Record(ctx context.Context, action models.ActivityAction, actor models.User, target *models.User, details string) {
	e := models.ActivityEntry{
		ID:        uuid.NewString(),
		Timestamp: l.now(),
		Action:    action,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		ActorRole: actor.Role,
		Details:   details,
	}
	if target != nil {
		e.TargetUserID = target.ID
		e.TargetUserName = target.Name
	}
	if err := l.st.Activity.Save(ctx, e); err != nil {
		l.log.Error("record activity", "action", action, "err", err)
		return
	}
	if err := l.trim(ctx); err != nil {
		l.log.Error("trim activity log", "err", err)
	}
}

// List returns entries newest first, at most limit of them (all when
// limit <= 0).
func (l *Log) List(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	entries, err := l.st.Activity.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	newestFirst(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (l *Log) trim(ctx context.Context) error {
	entries, err := l.st.Activity.All(ctx)
	if err != nil || len(entries) <= l.limit {
		return err
	}
	newestFirst(entries)
	for _, e := range entries[l.limit:] {
		if err := l.st.Activity.Delete(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

func newestFirst(entries []models.ActivityEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}
