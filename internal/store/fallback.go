package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

// DefaultRemoteTimeout bounds each remote call before the local store
// takes over.
const DefaultRemoteTimeout = 3 * time.Second

// Fallback tries the remote backend first and serves the call from the
// local one when the remote fails. Callers only see an error when both
// fail.
//
// Writes that only reached the local store are recorded in the journal.
// Until the Reconciler replays them, remote reads are overlaid with the
// journalled local records so this device keeps seeing its own writes.
// Successful remote writes are mirrored locally so the local copy stays a
// usable fallback.
type Fallback struct {
	remote  Backend
	local   Backend
	journal *Journal
	timeout time.Duration
	log     *slog.Logger
}

// NewFallback decorates remote with local. A non-positive timeout uses
// DefaultRemoteTimeout.
func NewFallback(remote, local Backend, journal *Journal, timeout time.Duration, log *slog.Logger) *Fallback {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fallback{remote: remote, local: local, journal: journal, timeout: timeout, log: log}
}

func (f *Fallback) Name() string {
	return f.remote.Name() + "+" + f.local.Name()
}

// try runs one remote call under the remote timeout. It reports whether the
// caller should fall back: a not-found answer is a real answer, and a
// cancelled caller context is the caller's problem, not the remote's.
func try[T any](ctx context.Context, f *Fallback, op string, kind Kind, call func(context.Context) (T, error)) (T, bool, error) {
	rctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	v, err := call(rctx)
	if err == nil || errors.Is(err, apperr.ErrNotFound) || ctx.Err() != nil {
		return v, false, err
	}
	f.log.Warn("remote store failed, using local store",
		"op", op, "kind", kind, "backend", f.remote.Name(), "err", err)
	return v, true, err
}

func (f *Fallback) List(ctx context.Context, kind Kind, filter Filter) ([]Record, error) {
	recs, fallback, err := try(ctx, f, "list", kind, func(c context.Context) ([]Record, error) {
		return f.remote.List(c, kind, filter)
	})
	if fallback {
		return f.local.List(ctx, kind, filter)
	}
	if err != nil {
		return nil, err
	}
	return f.overlay(ctx, kind, filter, recs), nil
}

// overlay applies the journalled local writes of kind on top of recs.
func (f *Fallback) overlay(ctx context.Context, kind Kind, filter Filter, recs []Record) []Record {
	pending, err := f.journal.Pending(ctx, kind)
	if err != nil {
		f.log.Error("read sync journal", "kind", kind, "err", err)
		return recs
	}
	if len(pending) == 0 {
		return recs
	}

	drop := map[string]bool{}
	local := map[string]Record{}
	for _, e := range pending {
		drop[e.ID] = true
		if e.Op != OpPut {
			continue
		}
		r, err := f.local.Get(ctx, kind, e.ID)
		if err != nil {
			continue
		}
		if filter.Match(r.Data) {
			local[e.ID] = r
		}
	}

	out := make([]Record, 0, len(recs)+len(local))
	for _, r := range recs {
		if !drop[r.ID] {
			out = append(out, r)
			continue
		}
		if lr, ok := local[r.ID]; ok {
			out = append(out, lr)
			delete(local, r.ID)
		}
	}
	// Records created while offline are unknown to the remote store.
	for _, e := range pending {
		if lr, ok := local[e.ID]; ok {
			out = append(out, lr)
		}
	}
	return out
}

func (f *Fallback) Get(ctx context.Context, kind Kind, id string) (Record, error) {
	if e, ok, err := f.journal.Lookup(ctx, kind, id); err == nil && ok {
		if e.Op == OpDelete {
			return Record{}, apperr.ErrNotFound
		}
		return f.local.Get(ctx, kind, id)
	}

	rec, fallback, err := try(ctx, f, "get", kind, func(c context.Context) (Record, error) {
		return f.remote.Get(c, kind, id)
	})
	if fallback {
		return f.local.Get(ctx, kind, id)
	}
	return rec, err
}

func (f *Fallback) Put(ctx context.Context, kind Kind, rec Record) error {
	_, fallback, err := try(ctx, f, "put", kind, func(c context.Context) (struct{}, error) {
		return struct{}{}, f.remote.Put(c, kind, rec)
	})
	if !fallback && err != nil {
		return err
	}
	if lerr := f.local.Put(ctx, kind, rec); lerr != nil {
		if fallback {
			return fmt.Errorf("both stores failed: remote: %v; local: %w", err, lerr)
		}
		f.log.Warn("mirror write to local store", "kind", kind, "id", rec.ID, "err", lerr)
	}
	f.settle(ctx, kind, rec.ID, OpPut, fallback)
	return nil
}

func (f *Fallback) Delete(ctx context.Context, kind Kind, id string) error {
	_, fallback, err := try(ctx, f, "delete", kind, func(c context.Context) (struct{}, error) {
		return struct{}{}, f.remote.Delete(c, kind, id)
	})
	if !fallback && err != nil {
		return err
	}
	if lerr := f.local.Delete(ctx, kind, id); lerr != nil {
		if fallback {
			return fmt.Errorf("both stores failed: remote: %v; local: %w", err, lerr)
		}
		f.log.Warn("mirror delete to local store", "kind", kind, "id", id, "err", lerr)
	}
	f.settle(ctx, kind, id, OpDelete, fallback)
	return nil
}

// settle journals a local-only write, or clears any stale entry once the
// remote store has the latest version.
func (f *Fallback) settle(ctx context.Context, kind Kind, id string, op Op, localOnly bool) {
	var err error
	if localOnly {
		err = f.journal.Mark(ctx, kind, id, op)
	} else {
		err = f.journal.Forget(ctx, kind, id)
	}
	if err != nil {
		f.log.Error("update sync journal", "kind", kind, "id", id, "err", err)
	}
}
