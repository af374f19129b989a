package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

func newReconciler(h *harness) *Reconciler {
	return NewReconciler(h.remote, h.local, h.journal, time.Second, quietLogger())
}

func TestReconcilerReplaysLastWriteWins(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, h.store.Users.Save(ctx, user("u2", "Asha", base)))

	h.remote.down.Store(true)
	require.NoError(t, h.store.Users.Save(ctx, user("u1", "Rahul", base.Add(time.Minute))))
	require.NoError(t, h.store.Users.Save(ctx, user("u2", "Asha (offline edit)", base.Add(time.Minute))))
	require.NoError(t, h.store.Lessons.Delete(ctx, "lesson-9"))

	// A different device edits u2 later than our offline edit.
	h.remote.down.Store(false)
	newer, err := encode(user("u2", "Asha (other device)", base.Add(time.Hour)))
	require.NoError(t, err)
	require.NoError(t, h.remote.Backend.Put(ctx, KindUsers, newer))

	report, err := newReconciler(h).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Replayed, "u1 put and lesson delete")
	assert.Equal(t, 1, report.Skipped, "u2 lost to the newer remote copy")
	assert.Zero(t, report.Failed)
	assert.Zero(t, report.Pending)

	remoteU1, err := h.remote.Backend.Get(ctx, KindUsers, "u1")
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Minute), remoteU1.UpdatedAt.UTC())

	got, err := h.store.Users.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Asha (other device)", got.Name)

	localU2, err := h.local.Get(ctx, KindUsers, "u2")
	require.NoError(t, err)
	assert.Equal(t, base.Add(time.Hour), localU2.UpdatedAt.UTC(), "local copy adopted the winner")

	// Nothing left to do.
	report, err = newReconciler(h).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Replayed+report.Skipped+report.Failed)
}

func TestReconcilerStopsWhileRemoteDown(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.remote.down.Store(true)

	require.NoError(t, h.store.Users.Save(ctx, user("u1", "Rahul", time.Now().UTC())))
	require.NoError(t, h.store.Users.Save(ctx, user("u2", "Asha", time.Now().UTC())))

	report, err := newReconciler(h).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.Pending)

	h.remote.down.Store(false)
	report, err = newReconciler(h).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Replayed)
	assert.Zero(t, report.Pending)

	_, err = h.remote.Backend.Get(ctx, KindUsers, "u2")
	assert.NoError(t, err)
}

func TestReconcilerDropsEntriesForVanishedRecords(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.journal.Mark(ctx, KindSubmissions, "gone", OpPut))

	report, err := newReconciler(h).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)

	_, err = h.remote.Backend.Get(ctx, KindSubmissions, "gone")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReconcilerReplaysUsersFirst(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.journal.Mark(ctx, KindSubmissions, "s1", OpPut))
	require.NoError(t, h.journal.Mark(ctx, KindActivity, "a1", OpPut))
	require.NoError(t, h.journal.Mark(ctx, KindUsers, "u1", OpPut))

	entries, err := newReconciler(h).pending(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []Kind{KindUsers, KindSubmissions, KindActivity},
		[]Kind{entries[0].Kind, entries[1].Kind, entries[2].Kind})
}

func TestJournalClearKeepsNewerWrite(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(newTestDB(t))

	require.NoError(t, j.Mark(ctx, KindUsers, "u1", OpPut))
	seen, err := j.Pending(ctx, "")
	require.NoError(t, err)
	require.Len(t, seen, 1)

	require.NoError(t, j.Mark(ctx, KindUsers, "u1", OpDelete))
	require.NoError(t, j.Clear(ctx, seen[0]))

	e, ok, err := j.Lookup(ctx, KindUsers, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, OpDelete, e.Op)
	assert.Equal(t, int64(2), e.Version)

	require.NoError(t, j.Clear(ctx, e))
	n, err := j.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
