package catalog

import (
	"time"

	"github.com/Elizabethomito/ecolearn/internal/models"
)

// Fixed ids keep the demo seed stable across restarts and devices.
const (
	DemoSuperAdminID = "demo-super-admin-1"
	DemoStudentID    = "demo-student-1"
	DemoTeacherID    = "demo-teacher-1"
	DemoAdminID      = "demo-admin-1"

	DemoSchoolID   = "school-1"
	DemoSchoolName = "Green Valley High School"

	// SuperAdminEmail is the well-known address of the platform account
	// that is recreated whenever no super-admin exists.
	SuperAdminEmail = "superadmin@ecolearn.com"
	SuperAdminName  = "EcoLearn Super Admin"
)

// DemoUsers returns one account per role. passwordHash is applied to all of
// them.
//
// DEMO SCENARIO
//
//	Super admin : superadmin@ecolearn.com
//	Student     : "Rahul Kumar"            rahul@student.com
//	              450 points, two lessons, one quiz, one challenge done
//	Teacher     : "Dr. Priya Sharma"       priya@teacher.com
//	              still pending, waiting for the school admin
//	Admin       : "Principal Rajesh Verma" rajesh@admin.com
//
// Everyone except the super admin belongs to Green Valley High School.
func DemoUsers(passwordHash string, now time.Time) []models.User {
	base := func(id, name, email string, role models.UserRole) models.User {
		return models.User{
			ID:         id,
			Name:       name,
			Email:      email,
			Password:   passwordHash,
			Role:       role,
			SchoolID:   DemoSchoolID,
			SchoolName: DemoSchoolName,
			Status:     models.StatusActive,
			Level:      1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	student := base(DemoStudentID, "Rahul Kumar", "rahul@student.com", models.RoleStudent)
	student.ClassGrade = "10th Grade"
	student.EcoPoints = 450
	student.Level = 3
	student.Badges = models.NewIDSet("first-lesson", "quiz-master")
	student.CompletedLessons = models.NewIDSet("lesson-1", "lesson-2")
	student.CompletedQuizzes = models.NewIDSet("quiz-1")
	student.CompletedChallenges = models.NewIDSet("challenge-1")

	teacher := base(DemoTeacherID, "Dr. Priya Sharma", "priya@teacher.com", models.RoleTeacher)
	teacher.Status = models.StatusPending

	admin := base(DemoAdminID, "Principal Rajesh Verma", "rajesh@admin.com", models.RoleAdmin)

	return []models.User{
		SuperAdmin(DemoSuperAdminID, passwordHash, now),
		student,
		teacher,
		admin,
	}
}

// SuperAdmin builds the platform account with the given id.
func SuperAdmin(id, passwordHash string, now time.Time) models.User {
	return models.User{
		ID:         id,
		Name:       SuperAdminName,
		Email:      SuperAdminEmail,
		Password:   passwordHash,
		Role:       models.RoleSuperAdmin,
		SchoolID:   models.PlatformSchoolID,
		SchoolName: models.PlatformSchoolName,
		Status:     models.StatusActive,
		Level:      1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
