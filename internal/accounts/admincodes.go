package accounts

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/validate"
)

// maxCodeAttempts bounds the search for an admin code not yet issued.
const maxCodeAttempts = 50

// GenerateAdminCode issues the single-use code for a school's first admin.
// Asking again for a school whose code is still unused returns that code.
func (s *Service) GenerateAdminCode(ctx context.Context, actor models.User, req models.AdminCodeRequest) (models.AdminCode, error) {
	if actor.Role != models.RoleSuperAdmin {
		return models.AdminCode{}, apperr.Denied("Only the super admin can generate admin codes.")
	}
	req.SchoolName = strings.TrimSpace(req.SchoolName)
	if err := validate.Struct(req); err != nil {
		return models.AdminCode{}, apperr.Invalid("schoolName", "Please enter a school/college name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	codes, err := s.store.AdminCodes.All(ctx)
	if err != nil {
		return models.AdminCode{}, err
	}
	issued := make(map[string]bool, len(codes))
	for _, c := range codes {
		issued[c.Code] = true
		if !c.IsUsed && strings.EqualFold(c.SchoolName, req.SchoolName) {
			return c, nil
		}
	}

	users, err := s.store.Users.All(ctx)
	if err != nil {
		return models.AdminCode{}, err
	}
	schoolID := schoolIDByName(users, req.SchoolName)
	for _, u := range users {
		if u.Role == models.RoleAdmin && u.SchoolID == schoolID {
			return models.AdminCode{}, apperr.Denied("An admin account already exists for this school.")
		}
	}

	code, err := s.uniqueCode(issued)
	if err != nil {
		return models.AdminCode{}, err
	}
	c := models.AdminCode{
		ID:         "code-" + uuid.NewString(),
		Code:       code,
		SchoolID:   schoolID,
		SchoolName: req.SchoolName,
		CreatedAt:  s.now(),
	}
	if err := s.store.AdminCodes.Save(ctx, c); err != nil {
		return models.AdminCode{}, err
	}
	s.activity.Record(ctx, models.ActionGenerateAdminCode, actor, nil,
		fmt.Sprintf("Generated admin code for %s", c.SchoolName))
	s.log.Info("admin code generated", "school_id", c.SchoolID)
	return c, nil
}

func (s *Service) uniqueCode(issued map[string]bool) (string, error) {
	for range maxCodeAttempts {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("generate admin code: %w", err)
		}
		if !issued[code] {
			return code, nil
		}
	}
	return "", fmt.Errorf("generate admin code: no free code after %d attempts: %w", maxCodeAttempts, apperr.ErrConflict)
}

// AdminCodes lists every issued code, newest first.
func (s *Service) AdminCodes(ctx context.Context) ([]models.AdminCode, error) {
	codes, err := s.store.AdminCodes.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(codes, func(i, j int) bool { return codes[i].CreatedAt.After(codes[j].CreatedAt) })
	return codes, nil
}
