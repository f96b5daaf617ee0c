package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/pkg/monitoring"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

const (
	defaultClubPageLimit = 20
	maxClubPageLimit     = 100
)

// ClubService manages the club lifecycle and listings
type ClubService struct {
	db             *gorm.DB
	studentService *StudentService
}

// NewClubService creates a new club service
func NewClubService(db *gorm.DB, studentService *StudentService) *ClubService {
	return &ClubService{db: db, studentService: studentService}
}

// Create registers a new club in pending status with the creator as its
// admin and first active member. The steps after the club insert are
// compensated: if the creator's membership or promotion fails, the club
// and any partial membership are deleted and the original error returned.
func (s *ClubService) Create(ctx context.Context, req *models.CreateClubRequest, creatorStudentID string) (*models.ClubResponse, error) {
	if err := validateCreateClubRequest(req); err != nil {
		return nil, err
	}

	var creator models.Student
	if err := s.db.WithContext(ctx).First(&creator, "student_id = ?", creatorStudentID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Student")
	}

	club := models.Club{
		ClubID:         "club_" + uuid.New().String(),
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		CoverPhotoURL:  req.CoverPhotoURL,
		AdminStudentID: &creatorStudentID,
		Status:         models.ClubStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&club).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	membership := models.Membership{
		StudentID: creatorStudentID,
		ClubID:    club.ClubID,
		Status:    models.MembershipStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&membership).Error; err != nil {
		s.compensateClubCreation(ctx, club.ClubID, creatorStudentID, err)
		return nil, apierrors.InternalErrorWithCause("Failed to create club admin membership", err)
	}

	if err := s.studentService.PromoteIfStudent(ctx, creatorStudentID, models.RoleClubAdmin); err != nil {
		s.compensateClubCreation(ctx, club.ClubID, creatorStudentID, err)
		return nil, err
	}

	slog.Info("Club created", "clubID", club.ClubID, "creatorStudentID", creatorStudentID)
	monitoring.RecordClubEvent(ctx, "club_created", true)
	resp := s.toClubResponse(ctx, &club)
	return &resp, nil
}

// compensateClubCreation undoes a half-finished club creation. Compensation
// failures are logged alongside the original error; the caller still
// reports the original failure.
func (s *ClubService) compensateClubCreation(ctx context.Context, clubID, creatorStudentID string, cause error) {
	slog.Error("Club creation failed, rolling back", "clubID", clubID, "error", cause)
	monitoring.RecordClubEvent(ctx, "club_created", false)

	err := s.db.WithContext(ctx).
		Where("student_id = ? AND club_id = ?", creatorStudentID, clubID).
		Delete(&models.Membership{}).Error
	if err != nil {
		slog.Error("Compensation failed to delete membership", "clubID", clubID, "error", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Club{}, "club_id = ?", clubID).Error; err != nil {
		slog.Error("Compensation failed to delete club", "clubID", clubID, "error", err)
	}
}

// Delete removes a club and everything hanging off it. Dependents go
// first so no orphan rows survive a partial failure: RSVPs per event,
// then events, memberships, reviews, messages, the invite token, and
// finally the club row.
func (s *ClubService) Delete(ctx context.Context, clubID string) error {
	start := time.Now()

	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Club")
	}

	var events []models.Event
	if err := s.db.WithContext(ctx).Where("club_id = ?", clubID).Find(&events).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Event")
	}

	for _, event := range events {
		err := s.db.WithContext(ctx).
			Where("event_id = ?", event.EventID).
			Delete(&models.Rsvp{}).Error
		if err != nil {
			return apierrors.HandleDatabaseError(err, "Rsvp")
		}
		if err := s.db.WithContext(ctx).Delete(&models.Event{}, "event_id = ?", event.EventID).Error; err != nil {
			return apierrors.HandleDatabaseError(err, "Event")
		}
	}

	if err := s.db.WithContext(ctx).Where("club_id = ?", clubID).Delete(&models.Membership{}).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Membership")
	}

	if err := s.db.WithContext(ctx).Where("club_id = ?", clubID).Delete(&models.Review{}).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Review")
	}

	if err := s.db.WithContext(ctx).Where("club_id = ?", clubID).Delete(&models.Message{}).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Message")
	}

	if err := s.db.WithContext(ctx).Where("club_id = ?", clubID).Delete(&models.InviteToken{}).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "InviteToken")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Club{}, "club_id = ?", clubID).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Club")
	}

	slog.Info("Club deleted", "clubID", clubID, "cascadedEvents", len(events))
	monitoring.RecordClubEvent(ctx, "club_deleted", true)
	monitoring.RecordDBLatency(ctx, "club_cascade_delete", time.Since(start))
	return nil
}

// GetAll lists clubs matching the filters, paginated
func (s *ClubService) GetAll(ctx context.Context, filters models.ClubFilters, pagination models.Pagination) (*models.PaginatedClubsResponse, error) {
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 || pagination.Limit > maxClubPageLimit {
		pagination.Limit = defaultClubPageLimit
	}

	query := s.db.WithContext(ctx).Model(&models.Club{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	} else {
		query = query.Where("status = ?", models.ClubStatusApproved)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	var clubs []models.Club
	err := query.Order("created_at DESC").
		Offset((pagination.Page - 1) * pagination.Limit).
		Limit(pagination.Limit).
		Find(&clubs).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	items := make([]models.ClubResponse, 0, len(clubs))
	for i := range clubs {
		items = append(items, s.toClubResponse(ctx, &clubs[i]))
	}

	totalPages := total / int64(pagination.Limit)
	if total%int64(pagination.Limit) != 0 {
		totalPages++
	}

	return &models.PaginatedClubsResponse{
		Items:      items,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetByID retrieves a club with its active member count and next upcoming event
func (s *ClubService) GetByID(ctx context.Context, clubID string) (*models.ClubResponse, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	resp := s.toClubResponse(ctx, &club)
	return &resp, nil
}

// Update modifies a club's descriptive fields
func (s *ClubService) Update(ctx context.Context, clubID string, req *models.UpdateClubRequest) (*models.ClubResponse, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apierrors.ValidationError("Club name cannot be blank")
		}
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = req.Description
	}
	if req.Category != nil {
		club.Category = *req.Category
	}
	if req.CoverPhotoURL != nil {
		club.CoverPhotoURL = req.CoverPhotoURL
	}

	if err := s.db.WithContext(ctx).Save(&club).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	resp := s.toClubResponse(ctx, &club)
	return &resp, nil
}

// IsAdmin reports whether the student is the club's admin
func (s *ClubService) IsAdmin(ctx context.Context, clubID, studentID string) (bool, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apierrors.HandleDatabaseError(err, "Club")
	}
	return club.AdminStudentID != nil && *club.AdminStudentID == studentID, nil
}

func (s *ClubService) toClubResponse(ctx context.Context, club *models.Club) models.ClubResponse {
	var memberCount int64
	err := s.db.WithContext(ctx).Model(&models.Membership{}).
		Where("club_id = ? AND status = ?", club.ClubID, models.MembershipStatusActive).
		Count(&memberCount).Error
	if err != nil {
		slog.Warn("Failed to count club members", "clubID", club.ClubID, "error", err)
	}

	resp := models.ClubResponse{
		ClubID:         club.ClubID,
		Name:           club.Name,
		Description:    club.Description,
		Category:       club.Category,
		CoverPhotoURL:  club.CoverPhotoURL,
		AdminStudentID: club.AdminStudentID,
		Status:         club.Status,
		CreatedAt:      club.CreatedAt.Format(time.RFC3339),
		MemberCount:    memberCount,
	}

	var next models.Event
	err = s.db.WithContext(ctx).
		Where("club_id = ? AND event_date > ?", club.ClubID, time.Now()).
		Order("event_date ASC").
		First(&next).Error
	if err == nil {
		resp.NextEvent = &models.NextEvent{
			EventID:   next.EventID,
			Title:     next.Title,
			EventDate: next.EventDate.Format(time.RFC3339),
			Location:  next.Location,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Warn("Failed to look up next club event", "clubID", club.ClubID, "error", err)
	}

	return resp
}

func validateCreateClubRequest(req *models.CreateClubRequest) error {
	var fields []apierrors.FieldDetail
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, apierrors.FieldDetail{Field: "name", Message: "name is required"})
	} else if len(req.Name) > models.MaxNameLength {
		fields = append(fields, apierrors.FieldDetail{Field: "name", Message: "name is too long"})
	}
	if strings.TrimSpace(req.Category) == "" {
		fields = append(fields, apierrors.FieldDetail{Field: "category", Message: "category is required"})
	}
	if req.Description != nil && len(*req.Description) > models.MaxDescriptionLength {
		fields = append(fields, apierrors.FieldDetail{Field: "description", Message: "description is too long"})
	}
	if len(fields) > 0 {
		return apierrors.ValidationErrorWithFields("Invalid club payload", fields)
	}
	return nil
}
