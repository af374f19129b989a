package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Reconciler replays journalled local writes to the remote store once it
// is reachable again. Conflicts resolve last-write-wins on the records'
// UpdatedAt: a remote copy newer than the local one is kept and copied
// back to the local store instead.
type Reconciler struct {
	remote  Backend
	local   Backend
	journal *Journal
	timeout time.Duration
	log     *slog.Logger
}

// NewReconciler builds a Reconciler. A non-positive timeout uses
// DefaultRemoteTimeout per remote call.
func NewReconciler(remote, local Backend, journal *Journal, timeout time.Duration, log *slog.Logger) *Reconciler {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{remote: remote, local: local, journal: journal, timeout: timeout, log: log}
}

// Run replays every outstanding journal entry, collection by collection in
// Kinds order so users reach the remote before the records that name them.
// It stops at the first remote failure, leaving the rest for the next run.
func (r *Reconciler) Run(ctx context.Context) (models.SyncReport, error) {
	var report models.SyncReport

	entries, err := r.pending(ctx)
	if err != nil {
		return report, err
	}

	for _, e := range entries {
		replayed, err := r.replay(ctx, e)
		if err != nil {
			report.Failed++
			r.log.Warn("sync replay failed", "kind", e.Kind, "id", e.ID, "op", e.Op, "err", err)
			break
		}
		if err := r.journal.Clear(ctx, e); err != nil {
			return report, err
		}
		if replayed {
			report.Replayed++
		} else {
			report.Skipped++
		}
	}

	report.Pending, err = r.journal.Len(ctx)
	if err != nil {
		return report, err
	}
	if report.Replayed > 0 || report.Skipped > 0 {
		r.log.Info("sync journal replayed",
			"replayed", report.Replayed, "skipped", report.Skipped, "pending", report.Pending)
	}
	return report, nil
}

func (r *Reconciler) pending(ctx context.Context) ([]JournalEntry, error) {
	var entries []JournalEntry
	for _, kind := range Kinds() {
		es, err := r.journal.Pending(ctx, kind)
		if err != nil {
			return nil, err
		}
		entries = append(entries, es...)
	}
	return entries, nil
}

// replay pushes one entry. It reports false when the entry turned out to be
// superseded and nothing was written remotely.
func (r *Reconciler) replay(ctx context.Context, e JournalEntry) (bool, error) {
	rctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if e.Op == OpDelete {
		return true, r.remote.Delete(rctx, e.Kind, e.ID)
	}

	localRec, err := r.local.Get(ctx, e.Kind, e.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read local copy: %w", err)
	}

	remoteRec, err := r.remote.Get(rctx, e.Kind, e.ID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
	case err != nil:
		return false, err
	case remoteRec.UpdatedAt.After(localRec.UpdatedAt):
		if err := r.local.Put(ctx, e.Kind, remoteRec); err != nil {
			return false, fmt.Errorf("adopt remote copy: %w", err)
		}
		return false, nil
	}

	return true, r.remote.Put(rctx, e.Kind, localRec)
}
