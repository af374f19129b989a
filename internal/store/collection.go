package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Entity is anything a Collection can persist.
type Entity interface {
	Key() string
	Modified() time.Time
}

// Collection is a typed view over one Kind of a Backend.
type Collection[T Entity] struct {
	backend Backend
	kind    Kind
}

// NewCollection binds kind on b to the entity type T.
func NewCollection[T Entity](b Backend, kind Kind) Collection[T] {
	return Collection[T]{backend: b, kind: kind}
}

// All returns every entity in the collection.
func (c Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.Where(ctx, All)
}

// Where returns the entities matching f.
func (c Collection[T]) Where(ctx context.Context, f Filter) ([]T, error) {
	recs, err := c.backend.List(ctx, c.kind, f)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.kind, err)
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		var v T
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", c.kind, r.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Get returns one entity or apperr.ErrNotFound.
func (c Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	r, err := c.backend.Get(ctx, c.kind, id)
	if err != nil {
		return v, fmt.Errorf("get %s %s: %w", c.kind, id, err)
	}
	if err := json.Unmarshal(r.Data, &v); err != nil {
		return v, fmt.Errorf("decode %s %s: %w", c.kind, id, err)
	}
	return v, nil
}

// Save upserts v by its key.
func (c Collection[T]) Save(ctx context.Context, v T) error {
	rec, err := encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.kind, err)
	}
	if err := c.backend.Put(ctx, c.kind, rec); err != nil {
		return fmt.Errorf("save %s %s: %w", c.kind, rec.ID, err)
	}
	return nil
}

// Delete removes the entity with id, if present.
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.backend.Delete(ctx, c.kind, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.kind, id, err)
	}
	return nil
}

// Count returns the number of entities in the collection.
func (c Collection[T]) Count(ctx context.Context) (int, error) {
	recs, err := c.backend.List(ctx, c.kind, All)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.kind, err)
	}
	return len(recs), nil
}

func encode[T Entity](v T) (Record, error) {
	if v.Key() == "" {
		return Record{}, apperr.Invalid("id", "is required")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Record{}, err
	}
	stamp := v.Modified()
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	return Record{ID: v.Key(), UpdatedAt: stamp, Data: data}, nil
}

// Store groups the typed collections over one Backend.
type Store struct {
	Backend     Backend
	Users       Collection[models.User]
	Lessons     Collection[models.Lesson]
	Quizzes     Collection[models.Quiz]
	Challenges  Collection[models.Challenge]
	Submissions Collection[models.Submission]
	AdminCodes  Collection[models.AdminCode]
	Activity    Collection[models.ActivityEntry]
}

// New builds a Store over b.
func New(b Backend) *Store {
	return &Store{
		Backend:     b,
		Users:       NewCollection[models.User](b, KindUsers),
		Lessons:     NewCollection[models.Lesson](b, KindLessons),
		Quizzes:     NewCollection[models.Quiz](b, KindQuizzes),
		Challenges:  NewCollection[models.Challenge](b, KindChallenges),
		Submissions: NewCollection[models.Submission](b, KindSubmissions),
		AdminCodes:  NewCollection[models.AdminCode](b, KindAdminCodes),
		Activity:    NewCollection[models.ActivityEntry](b, KindActivity),
	}
}

// UserByEmail finds a user by e-mail, ignoring case.
func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	users, err := s.Users.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	email = strings.TrimSpace(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", email, apperr.ErrNotFound)
}
