package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/catalog"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

type countingHasher struct{ calls int }

func (h *countingHasher) Hash(plain string) (string, error) {
	h.calls++
	return "hashed:" + plain, nil
}

func TestBootstrapFirstRun(t *testing.T) {
	ctx := context.Background()
	st := New(NewLocal(newTestDB(t)))
	hasher := &countingHasher{}

	require.NoError(t, Bootstrap(ctx, st, hasher, "password123", quietLogger()))

	users, err := st.Users.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{catalog.DemoSuperAdminID, catalog.DemoStudentID, catalog.DemoTeacherID, catalog.DemoAdminID},
		ids(users))
	for _, u := range users {
		assert.Equal(t, "hashed:password123", u.Password)
	}
	assert.Equal(t, 1, hasher.calls, "default password is hashed once")

	counts := map[string]func(context.Context) (int, error){
		"lessons":    st.Lessons.Count,
		"quizzes":    st.Quizzes.Count,
		"challenges": st.Challenges.Count,
	}
	want := map[string]int{"lessons": 5, "quizzes": 3, "challenges": 8}
	for kind, count := range counts {
		n, err := count(ctx)
		require.NoError(t, err)
		assert.Equal(t, want[kind], n, kind)
	}

	// A second run changes nothing.
	require.NoError(t, Bootstrap(ctx, st, hasher, "password123", quietLogger()))
	again, err := st.Users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 4)
	n, err := st.Lessons.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestBootstrapExistingUsers(t *testing.T) {
	ctx := context.Background()
	st := New(NewLocal(newTestDB(t)))
	now := time.Now().UTC()

	legacy := user("legacy", "Old Account", now)
	withPassword := user("kept", "Has Password", now)
	withPassword.Password = "existing-hash"
	require.NoError(t, st.Users.Save(ctx, legacy))
	require.NoError(t, st.Users.Save(ctx, withPassword))

	require.NoError(t, Bootstrap(ctx, st, &countingHasher{}, "password123", quietLogger()))

	got, err := st.Users.Get(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "hashed:password123", got.Password)

	got, err = st.Users.Get(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, "existing-hash", got.Password)

	users, err := st.Users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3, "no demo users, one new super admin")

	sa, err := st.UserByEmail(ctx, catalog.SuperAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, sa.Role)
	assert.Equal(t, models.PlatformSchoolID, sa.SchoolID)
}

func TestBootstrapNormalizesSuperAdmins(t *testing.T) {
	ctx := context.Background()
	st := New(NewLocal(newTestDB(t)))

	sa := user("sa", "Platform Owner", time.Now().UTC())
	sa.Role = models.RoleSuperAdmin
	sa.Password = "h"
	require.NoError(t, st.Users.Save(ctx, sa))

	require.NoError(t, Bootstrap(ctx, st, &countingHasher{}, "password123", quietLogger()))

	users, err := st.Users.All(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1, "an existing super admin is enough")
	assert.Equal(t, models.PlatformSchoolID, users[0].SchoolID)
	assert.Equal(t, models.PlatformSchoolName, users[0].SchoolName)
}
