package submissions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Elizabethomito/ecolearn/internal/activity"
	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/auth"
	"github.com/Elizabethomito/ecolearn/internal/catalog"
	"github.com/Elizabethomito/ecolearn/internal/db"
	"github.com/Elizabethomito/ecolearn/internal/learning"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/store"
)

var testDBCounter atomic.Int64

// flakyProgress fails until healed, then delegates.
type flakyProgress struct {
	next   Progress
	broken atomic.Bool
}

func (f *flakyProgress) CompleteChallenge(ctx context.Context, userID string, c models.Challenge) (models.ProgressOutcome, error) {
	if f.broken.Load() {
		return models.ProgressOutcome{}, errors.New("store unavailable")
	}
	return f.next.CompleteChallenge(ctx, userID, c)
}

type fixture struct {
	m        *Manager
	st       *store.Store
	progress *flakyProgress
	act      *activity.Log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(fmt.Sprintf("file:submissionstest%d?mode=memory&cache=shared", testDBCounter.Add(1)), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(store.NewLocal(conn))
	require.NoError(t, store.Bootstrap(ctx, st, auth.BcryptHasher{Cost: bcrypt.MinCost}, "password123", log))

	progress := &flakyProgress{next: learning.New(st, nil, log)}
	act := activity.New(st, 0, log)
	m := New(st, progress, act, log)

	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { clock = clock.Add(time.Minute); return clock }
	return &fixture{m: m, st: st, progress: progress, act: act}
}

func (f *fixture) user(t *testing.T, id string) models.User {
	t.Helper()
	u, err := f.st.Users.Get(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) reviewer(t *testing.T) models.User {
	t.Helper()
	u := f.user(t, catalog.DemoTeacherID)
	u.Status = models.StatusActive
	return u
}

var proof = models.CreateSubmissionRequest{Description: "Planted a neem tree", PhotoURL: "/uploads/p.jpg"}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rahul := f.user(t, catalog.DemoStudentID)

	_, err := f.m.Create(ctx, rahul, "challenge-2", models.CreateSubmissionRequest{Description: "  ", PhotoURL: "/x.jpg"})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.m.Create(ctx, rahul, "challenge-2", models.CreateSubmissionRequest{Description: "done"})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "photoUrl", verr.Field)

	_, err = f.m.Create(ctx, f.reviewer(t), "challenge-2", proof)
	assert.True(t, apperr.IsPolicy(err))

	_, err = f.m.Create(ctx, rahul, "challenge-404", proof)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	sub, err := f.m.Create(ctx, rahul, "challenge-2", proof)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.Equal(t, rahul.Name, sub.UserName)
	assert.Equal(t, catalog.DemoSchoolID, sub.SchoolID)
	assert.Empty(t, sub.VerifiedBy)
	assert.Nil(t, sub.VerifiedAt)

	_, err = f.m.Create(ctx, rahul, "challenge-2", proof)
	assert.ErrorIs(t, err, apperr.ErrConflict, "one pending submission at a time")
}

func TestApproveAppliesRewardOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rahul := f.user(t, catalog.DemoStudentID)
	teacher := f.reviewer(t)

	sub, err := f.m.Create(ctx, rahul, "challenge-4", proof)
	require.NoError(t, err)

	res, err := f.m.Approve(ctx, teacher, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, res.Submission.Status)
	assert.Equal(t, teacher.ID, res.Submission.VerifiedBy)
	require.NotNil(t, res.Submission.VerifiedAt)
	require.NotNil(t, res.Progress)
	assert.Equal(t, 200, res.Progress.PointsAwarded)
	assert.ElementsMatch(t, []string{"community-leader"}, res.Progress.BadgesGranted)

	again, err := f.m.Approve(ctx, teacher, sub.ID)
	require.NoError(t, err)
	assert.True(t, again.Progress.AlreadyCompleted)
	assert.True(t, res.Submission.VerifiedAt.Equal(*again.Submission.VerifiedAt), "decision is not rewritten")

	u := f.user(t, rahul.ID)
	assert.Equal(t, 650, u.EcoPoints)
	assert.Equal(t, 4, u.Level)
	assert.True(t, u.CompletedChallenges.Has("challenge-4"))

	_, err = f.m.Reject(ctx, teacher, sub.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestRejectThenResubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rahul := f.user(t, catalog.DemoStudentID)
	teacher := f.reviewer(t)

	first, err := f.m.Create(ctx, rahul, "challenge-3", proof)
	require.NoError(t, err)
	res, err := f.m.Reject(ctx, teacher, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionRejected, res.Submission.Status)
	assert.Nil(t, res.Progress)
	assert.Equal(t, 450, f.user(t, rahul.ID).EcoPoints)

	_, err = f.m.Reject(ctx, teacher, first.ID)
	assert.NoError(t, err, "rejecting twice is a no-op")
	_, err = f.m.Approve(ctx, teacher, first.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	status, err := f.m.CurrentStatus(ctx, rahul.ID, "challenge-3")
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeStatus("rejected"), status.Status)

	second, err := f.m.Create(ctx, rahul, "challenge-3", proof)
	require.NoError(t, err)
	status, err = f.m.CurrentStatus(ctx, rahul.ID, "challenge-3")
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeStatus("pending"), status.Status, "latest submission decides")
	assert.Equal(t, second.ID, status.Latest.ID)

	mine, err := f.m.ForUser(ctx, rahul.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
}

func TestCurrentStatusNotAttempted(t *testing.T) {
	f := newFixture(t)
	status, err := f.m.CurrentStatus(context.Background(), catalog.DemoStudentID, "challenge-5")
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeNotAttempted, status.Status)
	assert.Nil(t, status.Latest)
}

func TestReviewerMustShareSchool(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub, err := f.m.Create(ctx, f.user(t, catalog.DemoStudentID), "challenge-2", proof)
	require.NoError(t, err)

	outsider := f.reviewer(t)
	outsider.SchoolID, outsider.SchoolName = "school-9", "Elsewhere"
	_, err = f.m.Approve(ctx, outsider, sub.ID)
	assert.True(t, apperr.IsPolicy(err))

	_, err = f.m.Approve(ctx, f.user(t, catalog.DemoStudentID), sub.ID)
	assert.True(t, apperr.IsPolicy(err))

	list, err := f.m.ForReviewer(ctx, outsider, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.m.Approve(ctx, f.user(t, catalog.DemoSuperAdminID), sub.ID)
	assert.NoError(t, err, "super admin reviews any school")
}

func TestCascadeFailureIsRetryable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.reviewer(t)
	sub, err := f.m.Create(ctx, f.user(t, catalog.DemoStudentID), "challenge-2", proof)
	require.NoError(t, err)

	f.progress.broken.Store(true)
	res, err := f.m.Approve(ctx, teacher, sub.ID)
	assert.ErrorIs(t, err, apperr.ErrCascadeIncomplete)
	assert.Equal(t, models.SubmissionApproved, res.Submission.Status, "status is not rolled back")
	assert.Equal(t, 450, f.user(t, catalog.DemoStudentID).EcoPoints)

	f.progress.broken.Store(false)
	res, err = f.m.Approve(ctx, teacher, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, res.Progress.PointsAwarded)
	assert.Equal(t, 600, f.user(t, catalog.DemoStudentID).EcoPoints)
}

func TestApproveAfterStudentDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.reviewer(t)
	sub, err := f.m.Create(ctx, f.user(t, catalog.DemoStudentID), "challenge-2", proof)
	require.NoError(t, err)
	require.NoError(t, f.st.Users.Delete(ctx, catalog.DemoStudentID))

	for range 2 {
		res, err := f.m.Approve(ctx, teacher, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SubmissionApproved, res.Submission.Status)
		assert.Nil(t, res.Progress)
	}
}

func TestApproveAfterChallengeDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub, err := f.m.Create(ctx, f.user(t, catalog.DemoStudentID), "challenge-2", proof)
	require.NoError(t, err)
	require.NoError(t, f.st.Challenges.Delete(ctx, "challenge-2"))

	res, err := f.m.Approve(ctx, f.reviewer(t), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionApproved, res.Submission.Status)
	assert.Nil(t, res.Progress)
	assert.Equal(t, 450, f.user(t, catalog.DemoStudentID).EcoPoints)
}

func TestDecideRefusesTerminalSubmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub, err := f.m.Create(ctx, f.user(t, catalog.DemoStudentID), "challenge-2", proof)
	require.NoError(t, err)
	sub.Status = models.SubmissionApproved

	_, err = f.m.decide(ctx, f.reviewer(t), sub, models.SubmissionRejected)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestForReviewerFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rahul := f.user(t, catalog.DemoStudentID)
	teacher := f.reviewer(t)

	a, err := f.m.Create(ctx, rahul, "challenge-2", proof)
	require.NoError(t, err)
	_, err = f.m.Create(ctx, rahul, "challenge-3", proof)
	require.NoError(t, err)
	_, err = f.m.Approve(ctx, teacher, a.ID)
	require.NoError(t, err)

	pending, err := f.m.ForReviewer(ctx, teacher, models.SubmissionPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "challenge-3", pending[0].ChallengeID)

	all, err := f.m.ForReviewer(ctx, teacher, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	entries, err := f.act.List(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, models.ActionApproveSubmission, entries[0].Action)
	assert.Equal(t, rahul.ID, entries[0].TargetUserID)
}
