package accounts

import "github.com/Elizabethomito/ecolearn/internal/models"

// Destination is a protected view of the application.
type Destination string

const (
	DestHome             Destination = "/"
	DestLogin            Destination = "/login"
	DestPendingApproval  Destination = "/pending-approval"
	DestStudentDashboard Destination = "/student-dashboard"
	DestTeacherDashboard Destination = "/teacher-dashboard"
	DestAdminDashboard   Destination = "/admin-dashboard"
	DestSuperAdmin       Destination = "/super-admin"
	DestLessons          Destination = "/lessons"
	DestQuizzes          Destination = "/quizzes"
	DestChallenges       Destination = "/challenges"
	DestLeaderboard      Destination = "/leaderboard"
	DestProfile          Destination = "/profile"
)

// Access is what a destination requires. No roles means any role.
type Access struct {
	Roles        []models.UserRole
	AllowPending bool
}

// Access returns the requirements of d. ok is false for destinations that
// are not protected at all.
func (d Destination) Access() (a Access, ok bool) {
	switch d {
	case DestPendingApproval:
		return Access{AllowPending: true}, true
	case DestStudentDashboard, DestLessons, DestQuizzes, DestChallenges, DestLeaderboard:
		return Access{Roles: []models.UserRole{models.RoleStudent}}, true
	case DestTeacherDashboard:
		return Access{Roles: []models.UserRole{models.RoleTeacher}}, true
	case DestAdminDashboard:
		return Access{Roles: []models.UserRole{models.RoleAdmin}}, true
	case DestSuperAdmin:
		return Access{Roles: []models.UserRole{models.RoleSuperAdmin}}, true
	case DestProfile:
		return Access{}, true
	case DestHome, DestLogin:
		return Access{}, false
	}
	return Access{}, false
}

// Decision is the outcome of an access check. When Allowed is false,
// Redirect is where the user should be sent instead.
type Decision struct {
	Allowed  bool        `json:"allowed"`
	Redirect Destination `json:"redirect,omitempty"`
}

var allow = Decision{Allowed: true}

// Check applies a to u. A nil user is not logged in.
//
// Order matters: login first, then role, then status. Super-admins are
// never held at the pending gate whatever their status field says.
func Check(u *models.User, a Access) Decision {
	if u == nil {
		return Decision{Redirect: DestLogin}
	}
	if len(a.Roles) > 0 && !hasRole(a.Roles, u.Role) {
		return Decision{Redirect: DestHome}
	}
	if u.Role == models.RoleSuperAdmin {
		return allow
	}
	switch u.EffectiveStatus() {
	case models.StatusActive:
		return allow
	case models.StatusPending:
		if a.AllowPending {
			return allow
		}
		return Decision{Redirect: DestPendingApproval}
	case models.StatusDisabled:
		return Decision{Redirect: DestLogin}
	}
	return Decision{Redirect: DestLogin}
}

// Authorize decides whether u may open d.
func Authorize(u *models.User, d Destination) Decision {
	a, ok := d.Access()
	if !ok {
		return allow
	}
	return Check(u, a)
}

// HomeFor is the dashboard a role lands on.
func HomeFor(role models.UserRole) Destination {
	switch role {
	case models.RoleStudent:
		return DestStudentDashboard
	case models.RoleTeacher:
		return DestTeacherDashboard
	case models.RoleAdmin:
		return DestAdminDashboard
	case models.RoleSuperAdmin:
		return DestSuperAdmin
	}
	return DestHome
}

// Landing is where u goes right after login or registration.
func Landing(u models.User) Destination {
	home := HomeFor(u.Role)
	if d := Authorize(&u, home); !d.Allowed {
		return d.Redirect
	}
	return home
}

func hasRole(roles []models.UserRole, r models.UserRole) bool {
	for _, want := range roles {
		if want == r {
			return true
		}
	}
	return false
}
