package accounts

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

// transitions lists the status changes moderation may make. Staying in the
// same status is handled before this table is consulted.
var transitions = map[models.AccountStatus][]models.AccountStatus{
	models.StatusPending:  {models.StatusActive, models.StatusDisabled},
	models.StatusActive:   {models.StatusDisabled},
	models.StatusDisabled: {models.StatusActive},
}

// CanTransition reports whether an account may move from one status to
// another.
func CanTransition(from, to models.AccountStatus) bool {
	for _, s := range transitions[from.Normalize()] {
		if s == to {
			return true
		}
	}
	return false
}

// Users lists the accounts actor may see, newest first: every account for
// a super-admin, the admin's own school for an admin, and the students of
// a teacher's school for a teacher.
func (s *Service) Users(ctx context.Context, actor models.User) ([]models.User, error) {
	all, err := s.store.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(all))
	for _, u := range all {
		if visible(actor, u) {
			out = append(out, u.Sanitized())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func visible(actor, u models.User) bool {
	switch actor.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdmin:
		return u.Role != models.RoleSuperAdmin && actor.SameSchool(u)
	case models.RoleTeacher:
		return u.Role == models.RoleStudent && actor.SameSchool(u)
	case models.RoleStudent:
		return false
	}
	return false
}

// target loads the user actor wants to moderate and checks the actor is
// allowed to touch it at all.
func (s *Service) target(ctx context.Context, actor models.User, id string) (models.User, error) {
	u, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u.ID == actor.ID {
		return models.User{}, apperr.Denied("You cannot change your own account.")
	}
	switch actor.Role {
	case models.RoleSuperAdmin:
	case models.RoleAdmin:
		if u.Role == models.RoleSuperAdmin {
			// Each operation rejects super-admins with its own reason.
			break
		}
		if u.Role == models.RoleAdmin || !actor.SameSchool(u) {
			return models.User{}, apperr.Denied("You can only manage users of your own school.")
		}
	default:
		return models.User{}, apperr.Denied("Only admins can manage user accounts.")
	}
	return u, nil
}

// ApproveTeacher activates a pending teacher.
func (s *Service) ApproveTeacher(ctx context.Context, actor models.User, id string) (models.User, error) {
	u, err := s.target(ctx, actor, id)
	if err != nil {
		return models.User{}, err
	}
	if u.Role != models.RoleTeacher {
		return models.User{}, apperr.Denied("Only teacher accounts need approval.")
	}
	if u.EffectiveStatus() != models.StatusPending {
		return models.User{}, fmt.Errorf("teacher is %s: %w", u.EffectiveStatus(), apperr.ErrInvalidTransition)
	}
	return s.setStatus(ctx, actor, u, models.StatusActive, models.ActionApproveTeacher,
		fmt.Sprintf("Approved teacher %s", u.Name))
}

// Disable blocks an account and ends all of its sessions.
func (s *Service) Disable(ctx context.Context, actor models.User, id string) (models.User, error) {
	u, err := s.target(ctx, actor, id)
	if err != nil {
		return models.User{}, err
	}
	if u.Role == models.RoleSuperAdmin {
		return models.User{}, apperr.Denied("Super admin accounts cannot be disabled.")
	}
	u, err = s.setStatus(ctx, actor, u, models.StatusDisabled, models.ActionDisableUser,
		fmt.Sprintf("Disabled %s %s", strings.ToLower(u.Role.Label()), u.Name))
	if err != nil {
		return models.User{}, err
	}
	s.endAll(ctx, u.ID)
	return u, nil
}

// Activate re-enables a disabled account, or approves a pending one.
func (s *Service) Activate(ctx context.Context, actor models.User, id string) (models.User, error) {
	u, err := s.target(ctx, actor, id)
	if err != nil {
		return models.User{}, err
	}
	if u.Role == models.RoleSuperAdmin {
		return models.User{}, apperr.Denied("Super admin accounts are always active.")
	}
	return s.setStatus(ctx, actor, u, models.StatusActive, models.ActionActivateUser,
		fmt.Sprintf("Activated %s %s", strings.ToLower(u.Role.Label()), u.Name))
}

// Delete removes an account and ends all of its sessions. Submissions the
// user made are kept for the school's records.
func (s *Service) Delete(ctx context.Context, actor models.User, id string) error {
	u, err := s.target(ctx, actor, id)
	if err != nil {
		return err
	}
	if u.Role == models.RoleSuperAdmin {
		return apperr.Denied("Super admin accounts cannot be deleted.")
	}
	if err := s.store.Users.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.endAll(ctx, u.ID)
	s.activity.Record(ctx, models.ActionDeleteUser, actor, &u,
		fmt.Sprintf("Deleted %s %s", strings.ToLower(u.Role.Label()), u.Name))
	s.log.Info("user deleted", "user_id", u.ID, "by", actor.ID)
	return nil
}

func (s *Service) setStatus(ctx context.Context, actor, u models.User, to models.AccountStatus, action models.ActivityAction, details string) (models.User, error) {
	from := u.EffectiveStatus()
	if from == to {
		return u.Sanitized(), nil
	}
	if !CanTransition(from, to) {
		return models.User{}, fmt.Errorf("%s to %s: %w", from, to, apperr.ErrInvalidTransition)
	}
	u.Status = to
	u.UpdatedAt = s.now()
	if err := s.store.Users.Save(ctx, u); err != nil {
		return models.User{}, err
	}
	if err := s.sessions.Refresh(ctx, u); err != nil {
		s.log.Warn("refresh sessions", "user_id", u.ID, "err", err)
	}
	s.activity.Record(ctx, action, actor, &u, details)
	s.log.Info("account status changed", "user_id", u.ID, "from", from, "to", to, "by", actor.ID)
	return u.Sanitized(), nil
}

// Schools builds the super-admin school directory from the user records
// and the admin codes, ordered by school name.
func (s *Service) Schools(ctx context.Context) ([]models.SchoolSummary, error) {
	users, err := s.store.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	codes, err := s.store.AdminCodes.All(ctx)
	if err != nil {
		return nil, err
	}

	byID := map[string]*models.SchoolSummary{}
	get := func(id, name string) *models.SchoolSummary {
		sum, ok := byID[id]
		if !ok {
			sum = &models.SchoolSummary{SchoolID: id, SchoolName: name}
			byID[id] = sum
		}
		return sum
	}
	for _, c := range codes {
		get(c.SchoolID, c.SchoolName)
	}
	for _, u := range users {
		if u.Role == models.RoleSuperAdmin || u.SchoolID == "" {
			continue
		}
		sum := get(u.SchoolID, u.SchoolName)
		switch u.Role {
		case models.RoleStudent:
			sum.Students++
			sum.TotalEcoPoints += u.EcoPoints
		case models.RoleTeacher:
			sum.Teachers++
			if u.EffectiveStatus() == models.StatusPending {
				sum.PendingTeachers++
			}
		case models.RoleAdmin:
			sum.HasAdmin = true
		case models.RoleSuperAdmin:
		}
	}

	out := make([]models.SchoolSummary, 0, len(byID))
	for _, sum := range byID {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if !strings.EqualFold(out[i].SchoolName, out[j].SchoolName) {
			return strings.ToLower(out[i].SchoolName) < strings.ToLower(out[j].SchoolName)
		}
		return out[i].SchoolID < out[j].SchoolID
	})
	return out, nil
}

// Activity returns the newest limit entries of the moderation log.
func (s *Service) Activity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	return s.activity.List(ctx, limit)
}
