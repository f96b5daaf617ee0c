package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

func TestGetStudent(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewStudentService(db)

	result, err := service.GetStudent(context.Background(), student.StudentID)

	assert.NoError(t, err)
	assert.Equal(t, student.StudentID, result.StudentID)
	assert.Equal(t, student.Email, result.Email)
}

func TestGetStudent_NotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewStudentService(db)

	result, err := service.GetStudent(context.Background(), "stu_missing")

	assert.Error(t, err)
	assert.Nil(t, result)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNotFound, apiErr.Type)
}

func TestUpdateStudent_Partial(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewStudentService(db)

	newFirst := "Ada"
	result, err := service.UpdateStudent(context.Background(), student.StudentID, &models.UpdateStudentRequest{
		FirstName: &newFirst,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ada", result.FirstName)
	assert.Equal(t, student.LastName, result.LastName)
}

func TestPromoteIfStudent_PromotesOnlyPlainStudents(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewStudentService(db)
	ctx := context.Background()

	plain := CreateTestStudent(t, db, models.RoleStudent)
	uniAdmin := CreateTestStudent(t, db, models.RoleUniversityAdmin)

	assert.NoError(t, service.PromoteIfStudent(ctx, plain.StudentID, models.RoleClubAdmin))
	assert.NoError(t, service.PromoteIfStudent(ctx, uniAdmin.StudentID, models.RoleClubAdmin))

	var reloaded models.Student
	assert.NoError(t, db.First(&reloaded, "student_id = ?", plain.StudentID).Error)
	assert.Equal(t, models.RoleClubAdmin, reloaded.Role)

	// University admin keeps their role
	reloaded = models.Student{}
	assert.NoError(t, db.First(&reloaded, "student_id = ?", uniAdmin.StudentID).Error)
	assert.Equal(t, models.RoleUniversityAdmin, reloaded.Role)
}

func TestPromoteIfStudent_Idempotent(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewStudentService(db)
	ctx := context.Background()

	student := CreateTestStudent(t, db, models.RoleStudent)

	assert.NoError(t, service.PromoteIfStudent(ctx, student.StudentID, models.RoleClubAdmin))
	assert.NoError(t, service.PromoteIfStudent(ctx, student.StudentID, models.RoleClubAdmin))

	var reloaded models.Student
	assert.NoError(t, db.First(&reloaded, "student_id = ?", student.StudentID).Error)
	assert.Equal(t, models.RoleClubAdmin, reloaded.Role)
}

func TestPromoteIfStudent_UnknownRole(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewStudentService(db)

	err := service.PromoteIfStudent(context.Background(), "stu_any", "superuser")

	assert.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeValidation, apiErr.Type)
}

func TestPromoteIfStudent_MissingStudentIsNoOp(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewStudentService(db)

	// Promotion of an unknown student matches zero rows and succeeds quietly
	err := service.PromoteIfStudent(context.Background(), "stu_missing", models.RoleClubAdmin)

	assert.NoError(t, err)
}

func TestIsUniversityAdmin(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewStudentService(db)
	ctx := context.Background()

	uniAdmin := CreateTestStudent(t, db, models.RoleUniversityAdmin)
	plain := CreateTestStudent(t, db, models.RoleStudent)

	isAdmin, err := service.IsUniversityAdmin(ctx, uniAdmin.StudentID)
	assert.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = service.IsUniversityAdmin(ctx, plain.StudentID)
	assert.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = service.IsUniversityAdmin(ctx, "stu_missing")
	assert.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "jo***@university.edu", maskEmail("john@university.edu"))
	assert.Equal(t, "***@university.edu", maskEmail("jo@university.edu"))
	assert.Equal(t, "***@***.***", maskEmail("not-an-email"))
}
