package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/pkg/monitoring"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// AdminService carries out university-admin decisions on club applications
type AdminService struct {
	db                  *gorm.DB
	studentService      *StudentService
	emailService        *EmailService
	notificationService *NotificationService
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, studentService *StudentService, emailService *EmailService, notificationService *NotificationService) *AdminService {
	return &AdminService{
		db:                  db,
		studentService:      studentService,
		emailService:        emailService,
		notificationService: notificationService,
	}
}

// ApproveClub marks a club approved, promotes its owning admin to the
// club-admin role when still a plain student, and sends the approval email
// and notification. The email and notification are best-effort; their
// failure never undoes the approval.
func (s *AdminService) ApproveClub(ctx context.Context, clubID, byStudentID string) (*models.Club, error) {
	club, err := s.requireUniversityAdminAndClub(ctx, clubID, byStudentID)
	if err != nil {
		return nil, err
	}

	club.Status = models.ClubStatusApproved
	if err := s.db.WithContext(ctx).Save(club).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	if club.AdminStudentID != nil {
		if err := s.studentService.PromoteIfStudent(ctx, *club.AdminStudentID, models.RoleClubAdmin); err != nil {
			slog.Error("Failed to promote club admin after approval", "clubID", clubID, "error", err)
		}
	}

	s.notifyClubAdmin(ctx, club, func(email string) error {
		return s.emailService.SendClubApprovalEmail(email, club.Name)
	}, "Club approved", "Your club \""+club.Name+"\" has been approved and is now live.")

	slog.Info("Club approved", "clubID", clubID, "byStudentID", byStudentID)
	monitoring.RecordClubEvent(ctx, "club_approved", true)
	return club, nil
}

// RejectClub marks a club rejected. A non-blank reason is mandatory and
// is validated before any status change.
func (s *AdminService) RejectClub(ctx context.Context, clubID, byStudentID, reason string) (*models.Club, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apierrors.ValidationError("A reason is required to reject a club")
	}
	if len(reason) > models.MaxReasonLength {
		return nil, apierrors.ValidationError("Rejection reason is too long")
	}

	club, err := s.requireUniversityAdminAndClub(ctx, clubID, byStudentID)
	if err != nil {
		return nil, err
	}

	club.Status = models.ClubStatusRejected
	if err := s.db.WithContext(ctx).Save(club).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	s.notifyClubAdmin(ctx, club, func(email string) error {
		return s.emailService.SendClubRejectionEmail(email, club.Name, reason)
	}, "Club application update", "Your club \""+club.Name+"\" was not approved. Reason: "+reason)

	slog.Info("Club rejected", "clubID", clubID, "byStudentID", byStudentID)
	monitoring.RecordClubEvent(ctx, "club_rejected", true)
	return club, nil
}

// DeactivateClub suspends an approved club. Any other starting status is a
// conflict; suspension is only defined for live clubs.
func (s *AdminService) DeactivateClub(ctx context.Context, clubID, byStudentID string) (*models.Club, error) {
	club, err := s.requireUniversityAdminAndClub(ctx, clubID, byStudentID)
	if err != nil {
		return nil, err
	}

	if club.Status != models.ClubStatusApproved {
		return nil, apierrors.ConflictError("Only approved clubs can be deactivated")
	}

	club.Status = models.ClubStatusSuspended
	if err := s.db.WithContext(ctx).Save(club).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	s.notifyClubAdmin(ctx, club, func(email string) error {
		return s.emailService.SendClubDeactivationEmail(email, club.Name)
	}, "Club deactivated", "Your club \""+club.Name+"\" has been deactivated.")

	slog.Info("Club deactivated", "clubID", clubID, "byStudentID", byStudentID)
	monitoring.RecordClubEvent(ctx, "club_deactivated", true)
	return club, nil
}

// GetPendingClubs lists clubs awaiting review, enriched with the owning
// admin's contact details
func (s *AdminService) GetPendingClubs(ctx context.Context, byStudentID string) ([]models.PendingClubResponse, error) {
	return s.getClubsByStatus(ctx, byStudentID, models.ClubStatusPending)
}

// GetActiveClubs lists approved clubs for the admin dashboard
func (s *AdminService) GetActiveClubs(ctx context.Context, byStudentID string) ([]models.PendingClubResponse, error) {
	return s.getClubsByStatus(ctx, byStudentID, models.ClubStatusApproved)
}

func (s *AdminService) getClubsByStatus(ctx context.Context, byStudentID string, status models.ClubStatus) ([]models.PendingClubResponse, error) {
	if err := s.requireUniversityAdmin(ctx, byStudentID); err != nil {
		return nil, err
	}

	var clubs []models.Club
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&clubs).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	responses := make([]models.PendingClubResponse, 0, len(clubs))
	for _, club := range clubs {
		resp := models.PendingClubResponse{
			ClubID:         club.ClubID,
			Name:           club.Name,
			Description:    club.Description,
			Category:       club.Category,
			CoverPhotoURL:  club.CoverPhotoURL,
			AdminStudentID: club.AdminStudentID,
			Status:         club.Status,
			CreatedAt:      club.CreatedAt.Format(time.RFC3339),
		}
		if club.AdminStudentID != nil {
			var admin models.Student
			if err := s.db.WithContext(ctx).First(&admin, "student_id = ?", *club.AdminStudentID).Error; err == nil {
				resp.AdminName = strings.TrimSpace(admin.FirstName + " " + admin.LastName)
				resp.AdminEmail = admin.Email
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *AdminService) requireUniversityAdmin(ctx context.Context, studentID string) error {
	isAdmin, err := s.studentService.IsUniversityAdmin(ctx, studentID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apierrors.AuthorizationError("University admin role required")
	}
	return nil
}

func (s *AdminService) requireUniversityAdminAndClub(ctx context.Context, clubID, byStudentID string) (*models.Club, error) {
	if err := s.requireUniversityAdmin(ctx, byStudentID); err != nil {
		return nil, err
	}

	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}
	return &club, nil
}

// notifyClubAdmin sends the lifecycle email and an in-app notification to
// the club's owning admin. Both are best-effort.
func (s *AdminService) notifyClubAdmin(ctx context.Context, club *models.Club, sendEmail func(email string) error, title, message string) {
	if club.AdminStudentID == nil {
		return
	}

	var admin models.Student
	if err := s.db.WithContext(ctx).First(&admin, "student_id = ?", *club.AdminStudentID).Error; err != nil {
		slog.Warn("Club admin not found for lifecycle notification", "clubID", club.ClubID, "error", err)
		return
	}

	if err := sendEmail(admin.Email); err != nil {
		slog.Warn("Failed to send club lifecycle email", "clubID", club.ClubID, "error", err)
	}

	metadata := models.NotificationMetadata{"clubId": club.ClubID}
	if err := s.notificationService.NotifyStudent(ctx, admin.StudentID, title, message, models.NotificationTypeSystem, metadata); err != nil {
		slog.Warn("Failed to create club lifecycle notification", "clubID", club.ClubID, "error", err)
	}
}
