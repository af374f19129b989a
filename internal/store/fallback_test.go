package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

func ids[T Entity](items []T) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.Key()
	}
	return out
}

func TestFallbackSaveWhileRemoteUnreachable(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.remote.down.Store(true)

	require.NoError(t, h.store.Users.Save(ctx, user("u1", "Rahul", time.Now().UTC())))

	users, err := h.store.Users.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids(users))

	got, err := h.store.Users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Rahul", got.Name)

	pending, err := h.journal.Pending(ctx, KindUsers)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, OpPut, pending[0].Op)
}

func TestFallbackMirrorsRemoteWrites(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.store.Users.Save(ctx, user("u1", "Rahul", time.Now().UTC())))

	_, err := h.remote.Backend.Get(ctx, KindUsers, "u1")
	assert.NoError(t, err, "written remotely")
	_, err = h.local.Get(ctx, KindUsers, "u1")
	assert.NoError(t, err, "mirrored locally")

	n, err := h.journal.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// With the remote gone the mirrored copy still answers.
	h.remote.down.Store(true)
	got, err := h.store.Users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Rahul", got.Name)
}

func TestFallbackOverlaysOfflineWritesAfterRecovery(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	now := time.Now().UTC()

	require.NoError(t, h.store.Users.Save(ctx, user("u1", "Rahul", now)))

	h.remote.down.Store(true)
	renamed := user("u1", "Rahul K.", now.Add(time.Minute))
	require.NoError(t, h.store.Users.Save(ctx, renamed))
	require.NoError(t, h.store.Users.Save(ctx, user("u2", "Asha", now)))

	// Another device writes u3 directly to the remote store meanwhile.
	h.remote.down.Store(false)
	rec, err := encode(user("u3", "Vikram", now))
	require.NoError(t, err)
	require.NoError(t, h.remote.Backend.Put(ctx, KindUsers, rec))

	users, err := h.store.Users.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, ids(users))
	for _, u := range users {
		if u.ID == "u1" {
			assert.Equal(t, "Rahul K.", u.Name, "local write wins until replayed")
		}
	}

	got, err := h.store.Users.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
}

func TestFallbackOfflineDeleteStaysDeleted(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.store.Users.Save(ctx, user("u1", "Rahul", time.Now().UTC())))

	h.remote.down.Store(true)
	require.NoError(t, h.store.Users.Delete(ctx, "u1"))
	h.remote.down.Store(false)

	_, err := h.store.Users.Get(ctx, "u1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	users, err := h.store.Users.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFallbackFilteredOverlay(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	now := time.Now().UTC()

	u := user("u1", "Rahul", now)
	require.NoError(t, h.store.Users.Save(ctx, u))

	h.remote.down.Store(true)
	u.SchoolID = "school-2"
	u.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, h.store.Users.Save(ctx, u))
	h.remote.down.Store(false)

	school1, err := h.store.Users.Where(ctx, Filter{Field: "schoolId", Value: "school-1"})
	require.NoError(t, err)
	assert.Empty(t, school1, "the remote copy is stale")

	school2, err := h.store.Users.Where(ctx, Filter{Field: "schoolId", Value: "school-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids(school2))
}

func TestFallbackNotFoundIsAnAnswer(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	// Only the local store knows u1; the remote answers authoritatively.
	rec, err := encode(user("u1", "Ghost", time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, h.local.Put(ctx, KindUsers, rec))

	_, err = h.store.Users.Get(ctx, "u1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFallbackBothDown(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.remote.down.Store(true)
	require.NoError(t, h.local.db.Close())

	err := h.store.Users.Save(ctx, user("u1", "Rahul", time.Now().UTC()))
	assert.Error(t, err)
}
