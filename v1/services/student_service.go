package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// StudentService handles student lookups and the role-promotion command
type StudentService struct {
	db *gorm.DB
}

// NewStudentService creates a new student service
func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, studentID string) (*models.StudentResponse, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Student")
	}

	resp := toStudentResponse(&student)
	return &resp, nil
}

// UpdateStudent updates a student's profile fields
func (s *StudentService) UpdateStudent(ctx context.Context, studentID string, req *models.UpdateStudentRequest) (*models.StudentResponse, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Student")
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}

	if err := s.db.WithContext(ctx).Save(&student).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Student")
	}

	resp := toStudentResponse(&student)
	return &resp, nil
}

// PromoteIfStudent upgrades a student's role to targetRole only when their
// current role is still "student". The command is idempotent: repeat calls
// and calls against already-promoted students are no-ops.
func (s *StudentService) PromoteIfStudent(ctx context.Context, studentID string, targetRole models.StudentRole) error {
	if !targetRole.Valid() {
		return apierrors.ValidationError("Unknown role: " + string(targetRole))
	}

	result := s.db.WithContext(ctx).Model(&models.Student{}).
		Where("student_id = ? AND role = ?", studentID, models.RoleStudent).
		Update("role", targetRole)
	if result.Error != nil {
		return apierrors.HandleDatabaseError(result.Error, "Student")
	}

	if result.RowsAffected > 0 {
		slog.Info("Student role promoted", "studentID", studentID, "role", targetRole)
	}
	return nil
}

// IsUniversityAdmin reports whether the student holds the university-admin role
func (s *StudentService) IsUniversityAdmin(ctx context.Context, studentID string) (bool, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apierrors.HandleDatabaseError(err, "Student")
	}
	return student.Role == models.RoleUniversityAdmin, nil
}

func toStudentResponse(student *models.Student) models.StudentResponse {
	return models.StudentResponse{
		StudentID: student.StudentID,
		Email:     student.Email,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Role:      student.Role,
	}
}
