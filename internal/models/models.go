package models

import (
	"strings"
	"time"
)

// PlatformSchoolID and PlatformSchoolName are the synthetic school every
// super-admin belongs to, so platform staff never show up as members of a
// real institution.
const (
	PlatformSchoolID   = "ecolearn-platform"
	PlatformSchoolName = "EcoLearn Platform"
)

// UserRole defines the type of user account.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleTeacher    UserRole = "teacher"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

// Valid reports whether r is one of the four known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Label is the human-readable role name shown in dashboards.
func (r UserRole) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleTeacher:
		return "Teacher"
	case RoleAdmin:
		return "School Admin"
	case RoleSuperAdmin:
		return "EcoLearn App Admin"
	}
	return string(r)
}

// CanReview reports whether the role may approve or reject challenge
// submissions (teacher or higher).
func (r UserRole) CanReview() bool {
	switch r {
	case RoleTeacher, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleStudent:
		return false
	}
	return false
}

// AccountStatus is the moderation state of a user account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusPending  AccountStatus = "pending"
	StatusDisabled AccountStatus = "disabled"
)

// Normalize maps the zero value to active. Records written before the
// status field existed carry no status at all.
func (s AccountStatus) Normalize() AccountStatus {
	if s == "" {
		return StatusActive
	}
	return s
}

// Valid reports whether s is a known status (after normalisation).
func (s AccountStatus) Valid() bool {
	switch s.Normalize() {
	case StatusActive, StatusPending, StatusDisabled:
		return true
	}
	return false
}

// InitialStatus is the status a freshly registered account starts in:
// teachers wait for their school admin, everyone else is active at once.
func InitialStatus(role UserRole) AccountStatus {
	switch role {
	case RoleTeacher:
		return StatusPending
	case RoleStudent, RoleAdmin, RoleSuperAdmin:
		return StatusActive
	}
	return StatusActive
}

// SubmissionStatus tracks a challenge submission through review.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s SubmissionStatus) Terminal() bool {
	switch s {
	case SubmissionApproved, SubmissionRejected:
		return true
	case SubmissionPending:
		return false
	}
	return false
}

// ChallengeStatus is what a student sees for one challenge: the status of
// their most recent submission, or "not_attempted".
type ChallengeStatus string

const ChallengeNotAttempted ChallengeStatus = "not_attempted"

// LessonDifficulty grades lessons.
type LessonDifficulty string

const (
	LessonBeginner     LessonDifficulty = "beginner"
	LessonIntermediate LessonDifficulty = "intermediate"
	LessonAdvanced     LessonDifficulty = "advanced"
)

// ChallengeDifficulty grades challenges.
type ChallengeDifficulty string

const (
	ChallengeEasy   ChallengeDifficulty = "easy"
	ChallengeMedium ChallengeDifficulty = "medium"
	ChallengeHard   ChallengeDifficulty = "hard"
)

// User is both the identity record and the progress aggregate.
//
// Level is derived from EcoPoints and is only ever written by the
// gamification engine. Badges and the Completed* sets only grow.
type User struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Password            string        `json:"password,omitempty"`
	Role                UserRole      `json:"role"`
	SchoolID            string        `json:"schoolId"`
	SchoolName          string        `json:"schoolName"`
	ClassGrade          string        `json:"classGrade,omitempty"`
	AvatarURL           string        `json:"avatarUrl,omitempty"`
	Status              AccountStatus `json:"status,omitempty"`
	EcoPoints           int           `json:"ecoPoints"`
	Level               int           `json:"level"`
	Badges              IDSet         `json:"badges"`
	CompletedLessons    IDSet         `json:"completedLessons"`
	CompletedQuizzes    IDSet         `json:"completedQuizzes"`
	CompletedChallenges IDSet         `json:"completedChallenges"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// EffectiveStatus returns the normalised account status.
func (u User) EffectiveStatus() AccountStatus {
	return u.Status.Normalize()
}

// Sanitized returns a copy safe to send to clients.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// SameSchool reports whether two users belong to the same school. Older
// records may only agree on the school name, so that is accepted too.
func (u User) SameSchool(other User) bool {
	if u.SchoolID != "" && u.SchoolID == other.SchoolID {
		return true
	}
	return u.SchoolName != "" && strings.EqualFold(u.SchoolName, other.SchoolName)
}

// Lesson is a piece of reading material worth a fixed number of points.
type Lesson struct {
	ID          string           `json:"id"`
	Title       string           `json:"title" validate:"required"`
	Topic       string           `json:"topic" validate:"required"`
	Description string           `json:"description"`
	Content     string           `json:"content" validate:"required"`
	ImageURL    string           `json:"imageUrl"`
	Duration    int              `json:"duration" validate:"gte=0"`
	Difficulty  LessonDifficulty `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	EcoPoints   int              `json:"ecoPoints" validate:"gte=0"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Question is a single multiple-choice question with four options.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0,lte=3"`
	Explanation   string   `json:"explanation"`
}

// Quiz is an ordered list of questions attached to a lesson.
type Quiz struct {
	ID           string     `json:"id"`
	LessonID     string     `json:"lessonId" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description"`
	Questions    []Question `json:"questions" validate:"min=1,dive"`
	PassingScore int        `json:"passingScore" validate:"gte=0,lte=100"`
	EcoPoints    int        `json:"ecoPoints" validate:"gte=0"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Challenge is a real-world task whose completion a reviewer must approve.
type Challenge struct {
	ID                   string              `json:"id"`
	Title                string              `json:"title" validate:"required"`
	Description          string              `json:"description" validate:"required"`
	Category             string              `json:"category"`
	Difficulty           ChallengeDifficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	EcoPoints            int                 `json:"ecoPoints" validate:"gte=0"`
	Duration             int                 `json:"duration" validate:"gte=0"`
	Instructions         []string            `json:"instructions" validate:"min=1,dive,required"`
	VerificationRequired bool                `json:"verificationRequired"`
	ImageURL             string              `json:"imageUrl"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}

// Submission is a student's claim to have completed a challenge.
// UserName is a snapshot taken at submission time.
type Submission struct {
	ID          string           `json:"id"`
	ChallengeID string           `json:"challengeId"`
	UserID      string           `json:"userId"`
	UserName    string           `json:"userName"`
	SchoolID    string           `json:"schoolId"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Description string           `json:"description"`
	PhotoURL    string           `json:"photoUrl,omitempty"`
	Status      SubmissionStatus `json:"status"`
	VerifiedBy  string           `json:"verifiedBy,omitempty"`
	VerifiedAt  *time.Time       `json:"verifiedAt,omitempty"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// AdminCode is a single-use 5-digit code a super-admin hands to a school so
// exactly one admin account can be created for it.
type AdminCode struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	SchoolID   string     `json:"schoolId"`
	SchoolName string     `json:"schoolName"`
	IsUsed     bool       `json:"isUsed"`
	CreatedAt  time.Time  `json:"createdAt"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`
}

// ActivityAction tags an activity log entry.
type ActivityAction string

const (
	ActionRegister          ActivityAction = "register"
	ActionApproveTeacher    ActivityAction = "approve_teacher"
	ActionDisableUser       ActivityAction = "disable_user"
	ActionActivateUser      ActivityAction = "activate_user"
	ActionDeleteUser        ActivityAction = "delete_user"
	ActionGenerateAdminCode ActivityAction = "generate_admin_code"
	ActionApproveSubmission ActivityAction = "approve_submission"
	ActionRejectSubmission  ActivityAction = "reject_submission"
)

// ActivityEntry is one line of the append-only moderation log.
type ActivityEntry struct {
	ID             string         `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	Action         ActivityAction `json:"action"`
	ActorID        string         `json:"actorId"`
	ActorName      string         `json:"actorName"`
	ActorRole      UserRole       `json:"actorRole"`
	TargetUserID   string         `json:"targetUserId,omitempty"`
	TargetUserName string         `json:"targetUserName,omitempty"`
	Details        string         `json:"details,omitempty"`
}

// Badge is catalog data; users only hold badge ids.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Requirement string `json:"requirement"`
	Category    string `json:"category"`
}

// Level is one tier of the eco-level table.
type Level struct {
	Level     int    `json:"level"`
	Name      string `json:"name"`
	MinPoints int    `json:"minPoints"`
}

// LeaderboardEntry is one ranked student.
type LeaderboardEntry struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	SchoolName string `json:"schoolName"`
	ClassGrade string `json:"classGrade,omitempty"`
	EcoPoints  int    `json:"ecoPoints"`
	Level      int    `json:"level"`
	BadgeCount int    `json:"badgeCount"`
	Rank       int    `json:"rank"`
}

// SchoolStats aggregates the students of one school.
type SchoolStats struct {
	SchoolID            string `json:"schoolId"`
	SchoolName          string `json:"schoolName"`
	TotalStudents       int    `json:"totalStudents"`
	TotalEcoPoints      int    `json:"totalEcoPoints"`
	AveragePoints       int    `json:"averagePoints"`
	CompletedChallenges int    `json:"completedChallenges"`
	Rank                int    `json:"rank"`
}

// SchoolSummary is one row of the super-admin school directory.
type SchoolSummary struct {
	SchoolID        string `json:"schoolId"`
	SchoolName      string `json:"schoolName"`
	Students        int    `json:"students"`
	Teachers        int    `json:"teachers"`
	PendingTeachers int    `json:"pendingTeachers"`
	HasAdmin        bool   `json:"hasAdmin"`
	TotalEcoPoints  int    `json:"totalEcoPoints"`
}
