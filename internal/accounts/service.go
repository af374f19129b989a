// Package accounts owns everything about user accounts that is not
// progress: registration, login and sessions, the access gate, account
// status moderation, admin codes and the school directory.
package accounts

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Elizabethomito/ecolearn/internal/activity"
	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/auth"
	"github.com/Elizabethomito/ecolearn/internal/gamification"
	"github.com/Elizabethomito/ecolearn/internal/models"
	"github.com/Elizabethomito/ecolearn/internal/store"
	"github.com/Elizabethomito/ecolearn/internal/validate"
)

// Service implements the account operations.
type Service struct {
	store    *store.Store
	sessions *store.Sessions
	hasher   auth.Hasher
	activity *activity.Log
	secret   string
	log      *slog.Logger
	now      func() time.Time

	// newCode draws a random admin code candidate.
	newCode func() (string, error)

	// mu serialises registration and admin-code generation so two
	// requests cannot both consume the same code or both create the
	// first admin of a school.
	mu sync.Mutex
}

// New builds the service. secret signs session tokens.
func New(st *store.Store, sessions *store.Sessions, hasher auth.Hasher, act *activity.Log, secret string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    st,
		sessions: sessions,
		hasher:   hasher,
		activity: act,
		secret:   secret,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newCode:  randomCode,
	}
}

// randomCode returns a 5-digit code in [10000, 99999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 10000+n.Int64()), nil
}

// SchoolIDFor derives the school id used for a school name that no
// existing account or admin code has claimed yet.
func SchoolIDFor(name string) string {
	return "school-" + strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Register creates an account and logs it in.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.LoginResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.SchoolName = strings.TrimSpace(req.SchoolName)
	req.ClassGrade = strings.TrimSpace(req.ClassGrade)
	req.AdminCode = strings.TrimSpace(req.AdminCode)

	if err := validate.Struct(req); err != nil {
		return models.LoginResponse{}, err
	}
	switch req.Role {
	case models.RoleStudent:
		if req.ClassGrade == "" {
			return models.LoginResponse{}, apperr.Invalid("classGrade", "Please select your class/grade")
		}
	case models.RoleAdmin:
		if req.AdminCode == "" {
			return models.LoginResponse{}, apperr.Invalid("adminCode", "Please enter the 5-digit admin code provided by the super admin")
		}
	case models.RoleTeacher:
	case models.RoleSuperAdmin:
		return models.LoginResponse{}, apperr.Denied("Super admin accounts cannot be registered.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users.All(ctx)
	if err != nil {
		return models.LoginResponse{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, req.Email) {
			return models.LoginResponse{}, apperr.Denied("An account with this email already exists")
		}
	}

	var code *models.AdminCode
	schoolID, schoolName := "", req.SchoolName
	if req.Role == models.RoleAdmin {
		c, err := s.checkAdminCode(ctx, users, req)
		if err != nil {
			return models.LoginResponse{}, err
		}
		code = &c
		schoolID, schoolName = c.SchoolID, c.SchoolName
	} else {
		schoolID = schoolIDByName(users, req.SchoolName)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return models.LoginResponse{}, err
	}

	now := s.now()
	u := models.User{
		ID:         "user-" + uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		Role:       req.Role,
		SchoolID:   schoolID,
		SchoolName: schoolName,
		Status:     models.InitialStatus(req.Role),
		Level:      1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Role == models.RoleStudent {
		u.ClassGrade = req.ClassGrade
	}

	// Spend the code first; a failed user write releases it again.
	if code != nil {
		code.IsUsed = true
		code.UsedAt = &now
		if err := s.store.AdminCodes.Save(ctx, *code); err != nil {
			return models.LoginResponse{}, fmt.Errorf("mark admin code used: %w", err)
		}
	}
	if err := s.store.Users.Save(ctx, u); err != nil {
		if code != nil {
			s.releaseAdminCode(ctx, *code)
		}
		return models.LoginResponse{}, err
	}

	s.activity.Record(ctx, models.ActionRegister, u, nil, fmt.Sprintf("%s joined %s", u.Role.Label(), u.SchoolName))
	s.log.Info("user registered", "user_id", u.ID, "role", u.Role, "school_id", u.SchoolID)

	return s.startSession(ctx, u)
}

// releaseAdminCode makes a code spent by a failed registration usable again.
func (s *Service) releaseAdminCode(ctx context.Context, code models.AdminCode) {
	code.IsUsed = false
	code.UsedAt = nil
	if err := s.store.AdminCodes.Save(ctx, code); err != nil {
		s.log.Error("release admin code after failed registration", "code_id", code.ID, "school_id", code.SchoolID, "err", err)
	}
}

// checkAdminCode enforces the single-use code rules for admin registration.
func (s *Service) checkAdminCode(ctx context.Context, users []models.User, req models.RegisterRequest) (models.AdminCode, error) {
	codes, err := s.store.AdminCodes.Where(ctx, store.Filter{Field: "code", Value: req.AdminCode})
	if err != nil {
		return models.AdminCode{}, err
	}
	if len(codes) == 0 {
		return models.AdminCode{}, apperr.Denied("Invalid admin code. Please contact the super admin.")
	}
	c := codes[0]
	if c.IsUsed {
		return models.AdminCode{}, apperr.Denied("This admin code has already been used. Only one admin account is allowed per school.")
	}
	if !strings.EqualFold(c.SchoolName, req.SchoolName) {
		return models.AdminCode{}, apperr.Denied("School name does not match this admin code. Expected: %s", c.SchoolName)
	}
	for _, u := range users {
		if u.Role == models.RoleAdmin && (u.SchoolID == c.SchoolID || strings.EqualFold(u.SchoolName, c.SchoolName)) {
			return models.AdminCode{}, apperr.Denied("An admin account already exists for this school.")
		}
	}
	return c, nil
}

// schoolIDByName reuses the id of any account already registered under the
// same school name.
func schoolIDByName(users []models.User, name string) string {
	for _, u := range users {
		if u.Role != models.RoleSuperAdmin && strings.EqualFold(u.SchoolName, name) && u.SchoolID != "" {
			return u.SchoolID
		}
	}
	return SchoolIDFor(name)
}

// Login checks credentials and the account status, then starts a session.
// A pending account still logs in; the response redirects it to the
// awaiting-approval view.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return models.LoginResponse{}, apperr.Invalid("", "Please enter both email and password")
	}

	u, err := s.store.UserByEmail(ctx, req.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.LoginResponse{}, apperr.ErrUnauthenticated
	}
	if err != nil {
		return models.LoginResponse{}, err
	}
	if u.Password == "" {
		return models.LoginResponse{}, apperr.Denied("Please reset your password or contact support")
	}
	if !s.hasher.Verify(req.Password, u.Password) {
		return models.LoginResponse{}, apperr.ErrUnauthenticated
	}
	if !u.Role.Valid() || !u.Status.Valid() {
		s.endAll(ctx, u.ID)
		s.log.Error("user record has unknown role or status", "user_id", u.ID, "role", u.Role, "status", u.Status)
		return models.LoginResponse{}, apperr.Denied("Your account cannot be used. Please contact your school admin or super admin.")
	}
	if u.Role != models.RoleSuperAdmin && u.EffectiveStatus() == models.StatusDisabled {
		return models.LoginResponse{}, apperr.Denied("Your account has been disabled. Please contact your school admin or super admin.")
	}

	return s.startSession(ctx, u)
}

func (s *Service) startSession(ctx context.Context, u models.User) (models.LoginResponse, error) {
	sess, err := s.sessions.Start(ctx, u)
	if err != nil {
		return models.LoginResponse{}, err
	}
	token, err := auth.GenerateToken(u.ID, string(u.Role), sess.ID, s.secret)
	if err != nil {
		return models.LoginResponse{}, err
	}
	return models.LoginResponse{
		Token:    token,
		User:     u.Sanitized(),
		Redirect: string(Landing(u)),
	}, nil
}

// Logout ends one session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.End(ctx, sessionID)
}

// Resolve maps a token's session back to the current user record. The
// session must still exist and belong to userID; a deleted or disabled
// account loses its sessions here.
func (s *Service) Resolve(ctx context.Context, sessionID, userID string) (models.User, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, apperr.ErrNotFound) || (err == nil && sess.User.ID != userID) {
		return models.User{}, apperr.ErrUnauthenticated
	}
	if err != nil {
		return models.User{}, err
	}

	u, err := s.store.Users.Get(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		s.endAll(ctx, userID)
		return models.User{}, apperr.ErrUnauthenticated
	}
	if err != nil {
		return models.User{}, err
	}
	if u.Role != models.RoleSuperAdmin && u.EffectiveStatus() == models.StatusDisabled {
		s.endAll(ctx, userID)
		return models.User{}, apperr.Denied("Your account has been disabled. Please contact your school admin or super admin.")
	}
	return u, nil
}

// Me describes the logged-in user and where they should be.
func (s *Service) Me(u models.User) models.MeResponse {
	// The record may have been written by another device with a stale level.
	gamification.Recalculate(&u)
	return models.MeResponse{
		User:              u.Sanitized(),
		Redirect:          string(Landing(u)),
		Pending:           u.Role != models.RoleSuperAdmin && u.EffectiveStatus() == models.StatusPending,
		LevelName:         gamification.LevelName(u.Level),
		PointsToNextLevel: gamification.PointsToNextLevel(u.EcoPoints),
	}
}

func (s *Service) endAll(ctx context.Context, userID string) {
	if _, err := s.sessions.EndAllFor(ctx, userID); err != nil {
		s.log.Error("end sessions", "user_id", userID, "err", err)
	}
}
