package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

// livePostgres connects to TEST_POSTGRES_URL and returns a collection name
// no other run uses. Its rows are removed when the test ends.
func livePostgres(t *testing.T) (*Postgres, Kind) {
	t.Helper()
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("set TEST_POSTGRES_URL to run against PostgreSQL")
	}
	ctx := context.Background()
	p, err := ConnectPostgres(ctx, url, "")
	require.NoError(t, err)
	kind := Kind("test-" + uuid.NewString())
	t.Cleanup(func() {
		_, _ = p.pool.Exec(context.Background(), `DELETE FROM ecolearn_records WHERE kind = $1`, string(kind))
		p.Close()
	})
	return p, kind
}

func TestPostgresCRUD(t *testing.T) {
	p, kind := livePostgres(t)
	ctx := context.Background()
	require.NoError(t, p.Ping(ctx))

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"a", "b"} {
		require.NoError(t, p.Put(ctx, kind, Record{ID: id, UpdatedAt: at, Data: []byte(`{"id":"` + id + `","role":"student"}`)}))
	}
	require.NoError(t, p.Put(ctx, kind, Record{ID: "b", UpdatedAt: at.Add(time.Minute), Data: []byte(`{"id":"b","role":"teacher"}`)}))

	recs, err := p.List(ctx, kind, All)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"a", "b"}, []string{recs[0].ID, recs[1].ID}, "upsert keeps position")

	teachers, err := p.List(ctx, kind, Filter{Field: "role", Value: "teacher"})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.JSONEq(t, `{"id":"b","role":"teacher"}`, string(teachers[0].Data))

	got, err := p.Get(ctx, kind, "b")
	require.NoError(t, err)
	assert.True(t, at.Add(time.Minute).Equal(got.UpdatedAt))

	require.NoError(t, p.Delete(ctx, kind, "a"))
	require.NoError(t, p.Delete(ctx, kind, "missing"))
	_, err = p.Get(ctx, kind, "a")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostgresBehindFallback(t *testing.T) {
	p, _ := livePostgres(t)
	ctx := context.Background()
	local := NewLocal(newTestDB(t))
	st := New(NewFallback(p, local, NewJournal(newTestDB(t)), time.Second, quietLogger()))

	id := "pg-" + uuid.NewString()
	t.Cleanup(func() { _ = p.Delete(context.Background(), KindUsers, id) })
	require.NoError(t, st.Users.Save(ctx, user(id, "Rahul", time.Now().UTC())))

	rec, err := p.Get(ctx, KindUsers, id)
	require.NoError(t, err)
	assert.Contains(t, string(rec.Data), "Rahul")
}
