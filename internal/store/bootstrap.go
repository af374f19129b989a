package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Elizabethomito/ecolearn/internal/catalog"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

// PasswordHasher is the one-way hash Bootstrap needs for default passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// Bootstrap prepares a store for first use. It is safe to run on every
// start:
//
//  1. users without a password get the default password hash
//  2. empty content collections are seeded from the catalog
//  3. an empty user collection gets the demo accounts; otherwise a
//     super-admin is created if none exists
//  4. every super-admin is moved to the platform school
func Bootstrap(ctx context.Context, st *Store, hasher PasswordHasher, defaultPassword string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	b := &bootstrapper{st: st, hasher: hasher, password: defaultPassword, log: log, now: time.Now().UTC()}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"migrate passwords", b.migratePasswords},
		{"seed content", b.seedContent},
		{"seed users", b.seedUsers},
		{"normalize super admins", b.normalizeSuperAdmins},
	}
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("bootstrap: %s: %w", s.name, err)
		}
	}
	return nil
}

type bootstrapper struct {
	st       *Store
	hasher   PasswordHasher
	password string
	log      *slog.Logger
	now      time.Time

	hash string
}

// defaultHash hashes the default password once per run.
func (b *bootstrapper) defaultHash() (string, error) {
	if b.hash != "" {
		return b.hash, nil
	}
	h, err := b.hasher.Hash(b.password)
	if err != nil {
		return "", err
	}
	b.hash = h
	return h, nil
}

func (b *bootstrapper) migratePasswords(ctx context.Context) error {
	users, err := b.st.Users.All(ctx)
	if err != nil {
		return err
	}
	migrated := 0
	for _, u := range users {
		if u.Password != "" {
			continue
		}
		h, err := b.defaultHash()
		if err != nil {
			return err
		}
		u.Password = h
		u.UpdatedAt = b.now
		if err := b.st.Users.Save(ctx, u); err != nil {
			return err
		}
		migrated++
	}
	if migrated > 0 {
		b.log.Info("applied default password to legacy users", "count", migrated)
	}
	return nil
}

func (b *bootstrapper) seedContent(ctx context.Context) error {
	if err := seedIfEmpty(ctx, b, b.st.Lessons, catalog.Lessons(), func(l *models.Lesson) { l.UpdatedAt = b.now }); err != nil {
		return err
	}
	if err := seedIfEmpty(ctx, b, b.st.Quizzes, catalog.Quizzes(), func(q *models.Quiz) { q.UpdatedAt = b.now }); err != nil {
		return err
	}
	return seedIfEmpty(ctx, b, b.st.Challenges, catalog.Challenges(), func(c *models.Challenge) { c.UpdatedAt = b.now })
}

func seedIfEmpty[T Entity](ctx context.Context, b *bootstrapper, c Collection[T], items []T, stamp func(*T)) error {
	n, err := c.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for i := range items {
		stamp(&items[i])
		if err := c.Save(ctx, items[i]); err != nil {
			return err
		}
	}
	b.log.Info("seeded default content", "kind", c.kind, "count", len(items))
	return nil
}

func (b *bootstrapper) seedUsers(ctx context.Context) error {
	users, err := b.st.Users.All(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		h, err := b.defaultHash()
		if err != nil {
			return err
		}
		for _, u := range catalog.DemoUsers(h, b.now) {
			if err := b.st.Users.Save(ctx, u); err != nil {
				return err
			}
		}
		b.log.Info("seeded demo users")
		return nil
	}

	for _, u := range users {
		if u.Role == models.RoleSuperAdmin || strings.EqualFold(u.Email, catalog.SuperAdminEmail) {
			return nil
		}
	}
	h, err := b.defaultHash()
	if err != nil {
		return err
	}
	sa := catalog.SuperAdmin("super-admin-"+uuid.NewString(), h, b.now)
	if err := b.st.Users.Save(ctx, sa); err != nil {
		return err
	}
	b.log.Info("created default super admin", "email", sa.Email)
	return nil
}

func (b *bootstrapper) normalizeSuperAdmins(ctx context.Context) error {
	users, err := b.st.Users.All(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Role != models.RoleSuperAdmin {
			continue
		}
		if u.SchoolID == models.PlatformSchoolID && u.SchoolName == models.PlatformSchoolName {
			continue
		}
		u.SchoolID = models.PlatformSchoolID
		u.SchoolName = models.PlatformSchoolName
		u.UpdatedAt = b.now
		if err := b.st.Users.Save(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
