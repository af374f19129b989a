package learning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/store"
	"github.com/Elizabethomito/ecolearn/internal/validate"
)

func requireAuthor(actor models.User) error {
	if actor.Role != models.RoleTeacher {
		return apperr.Denied("Only teachers can manage learning content.")
	}
	return nil
}

// ---- reads ----

func (s *Service) Lessons(ctx context.Context) ([]models.Lesson, error) {
	return s.store.Lessons.All(ctx)
}

func (s *Service) Lesson(ctx context.Context, id string) (models.Lesson, error) {
	return s.store.Lessons.Get(ctx, id)
}

// Quizzes lists every quiz, or only those of one lesson.
func (s *Service) Quizzes(ctx context.Context, lessonID string) ([]models.Quiz, error) {
	if lessonID == "" {
		return s.store.Quizzes.All(ctx)
	}
	return s.store.Quizzes.Where(ctx, store.Filter{Field: "lessonId", Value: lessonID})
}

func (s *Service) Quiz(ctx context.Context, id string) (models.Quiz, error) {
	return s.store.Quizzes.Get(ctx, id)
}

func (s *Service) Challenges(ctx context.Context) ([]models.Challenge, error) {
	return s.store.Challenges.All(ctx)
}

func (s *Service) Challenge(ctx context.Context, id string) (models.Challenge, error) {
	return s.store.Challenges.Get(ctx, id)
}

// ---- lessons ----

// SaveLesson creates a lesson when id is empty and replaces lesson id
// otherwise.
func (s *Service) SaveLesson(ctx context.Context, actor models.User, id string, l models.Lesson) (models.Lesson, error) {
	if err := requireAuthor(actor); err != nil {
		return models.Lesson{}, err
	}
	l.Title = strings.TrimSpace(l.Title)
	l.Topic = strings.TrimSpace(l.Topic)
	if err := validate.Struct(l); err != nil {
		return models.Lesson{}, err
	}
	if err := assignID(ctx, s.store.Lessons.Get, "lesson", id, &l.ID); err != nil {
		return models.Lesson{}, err
	}
	l.UpdatedAt = s.now()
	if err := s.store.Lessons.Save(ctx, l); err != nil {
		return models.Lesson{}, err
	}
	s.log.Info("lesson saved", "lesson_id", l.ID, "by", actor.ID)
	return l, nil
}

// DeleteLesson removes a lesson. A lesson that still has quizzes cannot be
// deleted.
func (s *Service) DeleteLesson(ctx context.Context, actor models.User, id string) error {
	if err := requireAuthor(actor); err != nil {
		return err
	}
	if _, err := s.store.Lessons.Get(ctx, id); err != nil {
		return err
	}
	quizzes, err := s.Quizzes(ctx, id)
	if err != nil {
		return err
	}
	if len(quizzes) > 0 {
		return fmt.Errorf("lesson %s still has %d quizzes: %w", id, len(quizzes), apperr.ErrConflict)
	}
	return s.store.Lessons.Delete(ctx, id)
}

// ---- quizzes ----

// SaveQuiz creates or replaces a quiz. Questions without an id get one
// derived from the quiz id and their position.
func (s *Service) SaveQuiz(ctx context.Context, actor models.User, id string, q models.Quiz) (models.Quiz, error) {
	if err := requireAuthor(actor); err != nil {
		return models.Quiz{}, err
	}
	q.Title = strings.TrimSpace(q.Title)
	if err := validate.Struct(q); err != nil {
		return models.Quiz{}, err
	}
	if _, err := s.store.Lessons.Get(ctx, q.LessonID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.Quiz{}, apperr.Invalid("lessonId", "lesson does not exist")
		}
		return models.Quiz{}, err
	}
	if err := assignID(ctx, s.store.Quizzes.Get, "quiz", id, &q.ID); err != nil {
		return models.Quiz{}, err
	}
	for i := range q.Questions {
		if q.Questions[i].ID == "" {
			q.Questions[i].ID = fmt.Sprintf("%s-q%d", q.ID, i+1)
		}
	}
	q.UpdatedAt = s.now()
	if err := s.store.Quizzes.Save(ctx, q); err != nil {
		return models.Quiz{}, err
	}
	s.log.Info("quiz saved", "quiz_id", q.ID, "questions", len(q.Questions), "by", actor.ID)
	return q, nil
}

func (s *Service) DeleteQuiz(ctx context.Context, actor models.User, id string) error {
	if err := requireAuthor(actor); err != nil {
		return err
	}
	if _, err := s.store.Quizzes.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Quizzes.Delete(ctx, id)
}

// ---- challenges ----

func (s *Service) SaveChallenge(ctx context.Context, actor models.User, id string, c models.Challenge) (models.Challenge, error) {
	if err := requireAuthor(actor); err != nil {
		return models.Challenge{}, err
	}
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	if err := validate.Struct(c); err != nil {
		return models.Challenge{}, err
	}
	if err := assignID(ctx, s.store.Challenges.Get, "challenge", id, &c.ID); err != nil {
		return models.Challenge{}, err
	}
	c.UpdatedAt = s.now()
	if err := s.store.Challenges.Save(ctx, c); err != nil {
		return models.Challenge{}, err
	}
	s.log.Info("challenge saved", "challenge_id", c.ID, "by", actor.ID)
	return c, nil
}

func (s *Service) DeleteChallenge(ctx context.Context, actor models.User, id string) error {
	if err := requireAuthor(actor); err != nil {
		return err
	}
	if _, err := s.store.Challenges.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Challenges.Delete(ctx, id)
}

// assignID sets *dst to a fresh id for a create, or checks that id exists
// for an update.
func assignID[T any](ctx context.Context, get func(context.Context, string) (T, error), prefix, id string, dst *string) error {
	if id == "" {
		*dst = prefix + "-" + uuid.NewString()
		return nil
	}
	if _, err := get(ctx, id); err != nil {
		return err
	}
	*dst = id
	return nil
}
