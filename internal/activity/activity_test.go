package activity

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/db"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/store"
)

var testDBCounter atomic.Int64

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	conn, err := db.Open(fmt.Sprintf("file:activitytest%d?mode=memory&cache=shared", testDBCounter.Add(1)), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return store.New(store.NewLocal(conn))
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	l := New(newTestStore(t), 10, nil)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	admin := models.User{ID: "a1", Name: "Rajesh", Role: models.RoleAdmin}
	teacher := models.User{ID: "t1", Name: "Priya", Role: models.RoleTeacher}

	l.Record(ctx, models.ActionApproveTeacher, admin, &teacher, "")
	l.Record(ctx, models.ActionGenerateAdminCode, admin, nil, "Green Valley")

	entries, err := l.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionGenerateAdminCode, entries[0].Action, "newest first")
	assert.Empty(t, entries[0].TargetUserID)
	assert.Equal(t, "t1", entries[1].TargetUserID)
	assert.Equal(t, "Priya", entries[1].TargetUserName)
	assert.Equal(t, models.RoleAdmin, entries[1].ActorRole)

	one, err := l.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestOldestEntriesAreEvicted(t *testing.T) {
	ctx := context.Background()
	l := New(newTestStore(t), 3, nil)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	actor := models.User{ID: "sa", Name: "Super", Role: models.RoleSuperAdmin}
	for i := 0; i < 5; i++ {
		l.Record(ctx, models.ActionDisableUser, actor, nil, fmt.Sprint(i))
	}

	entries, err := l.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"4", "3", "2"}, []string{entries[0].Details, entries[1].Details, entries[2].Details})
}
