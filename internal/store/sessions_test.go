package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

func TestSessionsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSessions(newTestDB(t))

	u := user("u1", "Rahul", time.Now().UTC())
	u.Password = "secret-hash"

	first, err := s.Start(ctx, u)
	require.NoError(t, err)
	second, err := s.Start(ctx, u)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.User.ID)
	assert.Empty(t, got.User.Password, "snapshots never hold the hash")

	u.Name = "Rahul Kumar"
	require.NoError(t, s.Refresh(ctx, u))
	got, err = s.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahul Kumar", got.User.Name)

	require.NoError(t, s.End(ctx, first.ID))
	_, err = s.Get(ctx, first.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	n, err := s.EndAllFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = s.Get(ctx, second.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
