package services

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// SetupSQLiteTestDB creates an in-memory SQLite database for testing.
// TranslateError is enabled to match production: unique-constraint
// violations surface as gorm.ErrDuplicatedKey, which the membership and
// RSVP conflict paths depend on.
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Student{},
		&models.Club{},
		&models.Membership{},
		&models.InviteToken{},
		&models.Event{},
		&models.Rsvp{},
		&models.Notification{},
		&models.Review{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestData removes all test data from the database.
// Exported for use in handler tests.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	// Delete in reverse order of dependencies
	tables := []string{"notifications", "rsvps", "events", "invite_tokens", "reviews", "messages", "memberships", "clubs", "students"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("Warning: failed to cleanup %s: %v", table, err)
		}
	}
}

// CreateTestStudent inserts a student with the given role and returns it
func CreateTestStudent(t *testing.T, db *gorm.DB, role models.StudentRole) *models.Student {
	t.Helper()

	id := uuid.New().String()
	student := models.Student{
		StudentID: "stu_" + id,
		Email:     id[:8] + "@university.edu",
		FirstName: "Test",
		LastName:  "Student",
		Role:      role,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("Failed to create test student: %v", err)
	}
	return &student
}

// CreateTestClub inserts a club owned by adminStudentID with the given status
func CreateTestClub(t *testing.T, db *gorm.DB, adminStudentID string, status models.ClubStatus) *models.Club {
	t.Helper()

	club := models.Club{
		ClubID:         "club_" + uuid.New().String(),
		Name:           "Test Club",
		Category:       "academic",
		AdminStudentID: &adminStudentID,
		Status:         status,
	}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("Failed to create test club: %v", err)
	}
	return &club
}

// CreateTestMembership inserts a membership row with the given status
func CreateTestMembership(t *testing.T, db *gorm.DB, studentID, clubID string, status models.MembershipStatus) *models.Membership {
	t.Helper()

	membership := models.Membership{
		StudentID: studentID,
		ClubID:    clubID,
		Status:    status,
	}
	if err := db.Create(&membership).Error; err != nil {
		t.Fatalf("Failed to create test membership: %v", err)
	}
	return &membership
}
