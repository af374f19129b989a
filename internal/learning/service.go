// Package learning serves lessons, quizzes and challenges and applies the
// progress engine to completions. It is the only writer of a user's
// progress fields, so every completion path goes through here.
package learning

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/cache"
	"github.com/Elizabethomito/ecolearn/internal/catalog"
	"github.com/Elizabethomito/ecolearn/internal/gamification"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/store"
)

// Service implements content reads, authoring and completions.
type Service struct {
	store *store.Store
	cache *cache.Cache
	log   *slog.Logger
	now   func() time.Time

	// progressMu serialises read-modify-write of user progress.
	progressMu sync.Mutex
}

// New builds the service. c may be nil to run without a cache.
func New(st *store.Store, c *cache.Cache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store: st,
		cache: c,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func requireStudent(actor models.User) error {
	if actor.Role != models.RoleStudent {
		return apperr.Denied("Only students can earn eco-points.")
	}
	return nil
}

// CompleteLesson marks a lesson read by actor.
func (s *Service) CompleteLesson(ctx context.Context, actor models.User, lessonID string) (models.ProgressOutcome, error) {
	if err := requireStudent(actor); err != nil {
		return models.ProgressOutcome{}, err
	}
	l, err := s.store.Lessons.Get(ctx, lessonID)
	if err != nil {
		return models.ProgressOutcome{}, err
	}
	return s.progress(ctx, actor.ID, "lesson", l.ID, func(u *models.User) models.ProgressOutcome {
		return gamification.CompleteLesson(u, l)
	})
}

// SubmitQuiz grades an attempt and, when it passes for the first time,
// records the quiz and its rewards.
func (s *Service) SubmitQuiz(ctx context.Context, actor models.User, quizID string, req models.QuizSubmitRequest) (models.QuizResult, error) {
	if err := requireStudent(actor); err != nil {
		return models.QuizResult{}, err
	}
	q, err := s.store.Quizzes.Get(ctx, quizID)
	if err != nil {
		return models.QuizResult{}, err
	}
	if len(req.Answers) > len(q.Questions) {
		return models.QuizResult{}, apperr.Invalid("answers", fmt.Sprintf("quiz has %d questions", len(q.Questions)))
	}

	result := gamification.Grade(q, req.Answers)
	out, err := s.progress(ctx, actor.ID, "quiz", q.ID, func(u *models.User) models.ProgressOutcome {
		return gamification.CompleteQuiz(u, q, result.Score)
	})
	if err != nil {
		return models.QuizResult{}, err
	}
	result.Progress = out
	return result, nil
}

// CompleteChallenge applies an approved challenge to the user's progress.
// It is the reward step of submission approval and is idempotent.
func (s *Service) CompleteChallenge(ctx context.Context, userID string, c models.Challenge) (models.ProgressOutcome, error) {
	return s.progress(ctx, userID, "challenge", c.ID, func(u *models.User) models.ProgressOutcome {
		return gamification.CompleteChallenge(u, c)
	})
}

// progress loads the user, applies rule and saves only if anything moved.
func (s *Service) progress(ctx context.Context, userID, what, id string, rule func(*models.User) models.ProgressOutcome) (models.ProgressOutcome, error) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()

	u, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return models.ProgressOutcome{}, err
	}
	before := u
	out := rule(&u)
	if !progressChanged(before, u) {
		return out, nil
	}

	u.UpdatedAt = s.now()
	if err := s.store.Users.Save(ctx, u); err != nil {
		return models.ProgressOutcome{}, fmt.Errorf("save progress: %w", err)
	}
	s.cache.Invalidate(ctx, cache.LeaderboardPrefix)
	s.log.Info("progress recorded",
		"user_id", u.ID, what, id,
		"points", out.PointsAwarded, "badges", out.BadgesGranted, "level", u.Level)
	return out, nil
}

func progressChanged(a, b models.User) bool {
	return a.EcoPoints != b.EcoPoints ||
		a.Level != b.Level ||
		a.Badges.Len() != b.Badges.Len() ||
		a.CompletedLessons.Len() != b.CompletedLessons.Len() ||
		a.CompletedQuizzes.Len() != b.CompletedQuizzes.Len() ||
		a.CompletedChallenges.Len() != b.CompletedChallenges.Len()
}

// Leaderboard ranks the students of one school, or of all schools when
// schoolID is empty.
func (s *Service) Leaderboard(ctx context.Context, schoolID string) ([]models.LeaderboardEntry, error) {
	return cache.Remember(ctx, s.cache, cache.LeaderboardKey(schoolID), func(ctx context.Context) ([]models.LeaderboardEntry, error) {
		users, err := s.store.Users.All(ctx)
		if err != nil {
			return nil, err
		}
		return gamification.Leaderboard(users, schoolID), nil
	})
}

// SchoolStats ranks schools by the total points of their students.
func (s *Service) SchoolStats(ctx context.Context) ([]models.SchoolStats, error) {
	return cache.Remember(ctx, s.cache, cache.SchoolStatsKey, func(ctx context.Context) ([]models.SchoolStats, error) {
		users, err := s.store.Users.All(ctx)
		if err != nil {
			return nil, err
		}
		return gamification.SchoolRankings(users), nil
	})
}

// Students lists the students of the reviewer's school ranked by points,
// for the teacher dashboard.
func (s *Service) Students(ctx context.Context, reviewer models.User) ([]models.LeaderboardEntry, error) {
	if !reviewer.Role.CanReview() {
		return nil, apperr.Denied("Only teachers and admins can view the student list.")
	}
	return s.Leaderboard(ctx, reviewer.SchoolID)
}

// Badges returns the badge catalog.
func (s *Service) Badges() []models.Badge { return catalog.Badges() }

// Levels returns the level table.
func (s *Service) Levels() []models.Level { return gamification.Levels() }
