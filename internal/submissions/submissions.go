// Package submissions runs the challenge-submission lifecycle: a student
// submits proof, a reviewer approves or rejects it once, and approval
// hands the challenge to the progress engine.
package submissions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Elizabethomito/ecolearn/internal/activity"
	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/store"
)

// Progress applies an approved challenge to a user's progress. It must be
// idempotent: approval may run it more than once for the same pair.
type Progress interface {
	CompleteChallenge(ctx context.Context, userID string, c models.Challenge) (models.ProgressOutcome, error)
}

// Manager implements the submission operations.
type Manager struct {
	store    *store.Store
	progress Progress
	activity *activity.Log
	log      *slog.Logger
	now      func() time.Time
}

// New builds a Manager.
func New(st *store.Store, progress Progress, act *activity.Log, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		store:    st,
		progress: progress,
		activity: act,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create records a new pending submission by student for challengeID.
// A student whose latest submission for the challenge is pending or
// approved cannot submit again; after a rejection they can.
func (m *Manager) Create(ctx context.Context, student models.User, challengeID string, req models.CreateSubmissionRequest) (models.Submission, error) {
	if student.Role != models.RoleStudent {
		return models.Submission{}, apperr.Denied("Only students can submit challenges.")
	}
	c, err := m.store.Challenges.Get(ctx, challengeID)
	if err != nil {
		return models.Submission{}, err
	}

	req.Description = strings.TrimSpace(req.Description)
	req.PhotoURL = strings.TrimSpace(req.PhotoURL)
	if req.Description == "" {
		return models.Submission{}, apperr.Invalid("description", "Please describe what you did")
	}
	if c.VerificationRequired && req.PhotoURL == "" {
		return models.Submission{}, apperr.Invalid("photoUrl", "This challenge needs a photo or document as proof")
	}

	latest, ok, err := m.latest(ctx, student.ID, c.ID)
	if err != nil {
		return models.Submission{}, err
	}
	if ok && latest.Status != models.SubmissionRejected {
		return models.Submission{}, fmt.Errorf("latest submission for %s is %s: %w", c.ID, latest.Status, apperr.ErrConflict)
	}

	now := m.now()
	sub := models.Submission{
		ID:          "submission-" + uuid.NewString(),
		ChallengeID: c.ID,
		UserID:      student.ID,
		UserName:    student.Name,
		SchoolID:    student.SchoolID,
		SubmittedAt: now,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Status:      models.SubmissionPending,
		UpdatedAt:   now,
	}
	if err := m.store.Submissions.Save(ctx, sub); err != nil {
		return models.Submission{}, err
	}
	m.log.Info("submission created", "submission_id", sub.ID, "challenge_id", c.ID, "user_id", student.ID)
	return sub, nil
}

// Approve moves a pending submission to approved and applies the challenge
// reward. Approving an already approved submission re-runs only the reward
// step, which changes nothing if it had completed before.
//
// If the status is saved but the reward fails, the error wraps
// apperr.ErrCascadeIncomplete and approving again finishes the job. A
// student or challenge deleted since submission leaves nothing to reward
// and is not an error.
func (m *Manager) Approve(ctx context.Context, reviewer models.User, id string) (models.ReviewResult, error) {
	sub, err := m.reviewable(ctx, reviewer, id)
	if err != nil {
		return models.ReviewResult{}, err
	}
	switch sub.Status {
	case models.SubmissionRejected:
		return models.ReviewResult{}, fmt.Errorf("submission %s was rejected: %w", id, apperr.ErrInvalidTransition)
	case models.SubmissionPending:
		if sub, err = m.decide(ctx, reviewer, sub, models.SubmissionApproved); err != nil {
			return models.ReviewResult{}, err
		}
	case models.SubmissionApproved:
	}

	c, err := m.store.Challenges.Get(ctx, sub.ChallengeID)
	if errors.Is(err, apperr.ErrNotFound) {
		return m.nothingToReward(sub, "challenge", err), nil
	}
	if err != nil {
		return models.ReviewResult{Submission: sub}, fmt.Errorf("load challenge %s: %w: %w", sub.ChallengeID, err, apperr.ErrCascadeIncomplete)
	}
	out, err := m.progress.CompleteChallenge(ctx, sub.UserID, c)
	if errors.Is(err, apperr.ErrNotFound) {
		return m.nothingToReward(sub, "user", err), nil
	}
	if err != nil {
		m.log.Error("approval reward failed", "submission_id", sub.ID, "user_id", sub.UserID, "err", err)
		return models.ReviewResult{Submission: sub}, fmt.Errorf("reward %s: %w: %w", sub.UserID, err, apperr.ErrCascadeIncomplete)
	}
	return models.ReviewResult{Submission: sub, Progress: &out}, nil
}

// nothingToReward ends an approval whose student or challenge has since
// been deleted. The approval stands and there is nobody left to reward.
func (m *Manager) nothingToReward(sub models.Submission, missing string, err error) models.ReviewResult {
	m.log.Warn("approved submission has nothing to reward",
		"submission_id", sub.ID, "missing", missing, "err", err)
	return models.ReviewResult{Submission: sub}
}

// Reject moves a pending submission to rejected. Rejecting twice is a
// no-op; rejecting an approved submission is not allowed.
func (m *Manager) Reject(ctx context.Context, reviewer models.User, id string) (models.ReviewResult, error) {
	sub, err := m.reviewable(ctx, reviewer, id)
	if err != nil {
		return models.ReviewResult{}, err
	}
	switch sub.Status {
	case models.SubmissionApproved:
		return models.ReviewResult{}, fmt.Errorf("submission %s was approved: %w", id, apperr.ErrInvalidTransition)
	case models.SubmissionRejected:
		return models.ReviewResult{Submission: sub}, nil
	case models.SubmissionPending:
	}
	sub, err = m.decide(ctx, reviewer, sub, models.SubmissionRejected)
	if err != nil {
		return models.ReviewResult{}, err
	}
	return models.ReviewResult{Submission: sub}, nil
}

// reviewable loads a submission and checks reviewer may decide on it:
// teachers and admins review their own school, the super admin any.
func (m *Manager) reviewable(ctx context.Context, reviewer models.User, id string) (models.Submission, error) {
	if !reviewer.Role.CanReview() {
		return models.Submission{}, apperr.Denied("Only teachers can review submissions.")
	}
	sub, err := m.store.Submissions.Get(ctx, id)
	if err != nil {
		return models.Submission{}, err
	}
	if reviewer.Role != models.RoleSuperAdmin && !m.sameSchool(ctx, reviewer, sub) {
		return models.Submission{}, apperr.Denied("You can only review submissions from your own school.")
	}
	return sub, nil
}

func (m *Manager) sameSchool(ctx context.Context, reviewer models.User, sub models.Submission) bool {
	if sub.SchoolID != "" {
		return sub.SchoolID == reviewer.SchoolID
	}
	// Older submissions carry no school; fall back to the student's.
	student, err := m.store.Users.Get(ctx, sub.UserID)
	if err != nil {
		return false
	}
	return reviewer.SameSchool(student)
}

func (m *Manager) decide(ctx context.Context, reviewer models.User, sub models.Submission, to models.SubmissionStatus) (models.Submission, error) {
	if sub.Status.Terminal() {
		return models.Submission{}, fmt.Errorf("submission %s is %s: %w", sub.ID, sub.Status, apperr.ErrInvalidTransition)
	}
	now := m.now()
	sub.Status = to
	sub.VerifiedBy = reviewer.ID
	sub.VerifiedAt = &now
	sub.UpdatedAt = now
	if err := m.store.Submissions.Save(ctx, sub); err != nil {
		return models.Submission{}, err
	}

	action := models.ActionApproveSubmission
	if to == models.SubmissionRejected {
		action = models.ActionRejectSubmission
	}
	target := models.User{ID: sub.UserID, Name: sub.UserName}
	m.activity.Record(ctx, action, reviewer, &target, fmt.Sprintf("%s submission for %s", to, sub.ChallengeID))
	m.log.Info("submission reviewed", "submission_id", sub.ID, "status", to, "by", reviewer.ID)
	return sub, nil
}

// ---- queries ----

// ForUser lists a user's submissions, newest first.
func (m *Manager) ForUser(ctx context.Context, userID string) ([]models.Submission, error) {
	subs, err := m.store.Submissions.Where(ctx, store.Filter{Field: "userId", Value: userID})
	if err != nil {
		return nil, err
	}
	newestFirst(subs)
	return subs, nil
}

// ForReviewer lists the submissions reviewer may decide on, newest first,
// optionally narrowed to one status.
func (m *Manager) ForReviewer(ctx context.Context, reviewer models.User, status models.SubmissionStatus) ([]models.Submission, error) {
	if !reviewer.Role.CanReview() {
		return nil, apperr.Denied("Only teachers can review submissions.")
	}
	var (
		subs []models.Submission
		err  error
	)
	if reviewer.Role == models.RoleSuperAdmin {
		subs, err = m.store.Submissions.All(ctx)
	} else {
		subs, err = m.store.Submissions.Where(ctx, store.Filter{Field: "schoolId", Value: reviewer.SchoolID})
	}
	if err != nil {
		return nil, err
	}
	if status != "" {
		kept := subs[:0]
		for _, s := range subs {
			if s.Status == status {
				kept = append(kept, s)
			}
		}
		subs = kept
	}
	newestFirst(subs)
	return subs, nil
}

// CurrentStatus reports what userID sees for challengeID: the status of the
// latest submission, or not_attempted.
func (m *Manager) CurrentStatus(ctx context.Context, userID, challengeID string) (models.ChallengeStatusResponse, error) {
	if _, err := m.store.Challenges.Get(ctx, challengeID); err != nil {
		return models.ChallengeStatusResponse{}, err
	}
	resp := models.ChallengeStatusResponse{ChallengeID: challengeID, Status: models.ChallengeNotAttempted}
	latest, ok, err := m.latest(ctx, userID, challengeID)
	if err != nil {
		return models.ChallengeStatusResponse{}, err
	}
	if ok {
		resp.Status = models.ChallengeStatus(latest.Status)
		resp.Latest = &latest
	}
	return resp, nil
}

func (m *Manager) latest(ctx context.Context, userID, challengeID string) (models.Submission, bool, error) {
	subs, err := m.ForUser(ctx, userID)
	if err != nil {
		return models.Submission{}, false, err
	}
	for _, s := range subs {
		if s.ChallengeID == challengeID {
			return s, true, nil
		}
	}
	return models.Submission{}, false, nil
}

func newestFirst(subs []models.Submission) {
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].SubmittedAt.After(subs[j].SubmittedAt) })
}
