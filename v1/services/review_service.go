package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// reviewListLimit caps how many reviews a single fetch returns
const reviewListLimit = 20

// ReviewService manages club reviews
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// GetClubReviews lists a club's reviews, newest first, with reviewer details
func (s *ReviewService) GetClubReviews(ctx context.Context, clubID string) ([]models.ReviewResponse, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Student").
		Where("club_id = ?", clubID).
		Order("created_at DESC").
		Limit(reviewListLimit).
		Find(&reviews).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Review")
	}

	responses := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, toReviewResponse(&reviews[i]))
	}
	return responses, nil
}

// CreateReview records a student's rating of a club. Each student reviews a
// club at most once; a second submission is a conflict. Two simultaneous
// submissions race on the unique (club_id, student_id) index and the loser
// surfaces as the same conflict.
func (s *ReviewService) CreateReview(ctx context.Context, clubID, studentID string, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	if req.Rating < models.MinReviewRating || req.Rating > models.MaxReviewRating {
		return nil, apierrors.ValidationError("Rating must be between 1 and 5")
	}

	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Student")
	}

	review := models.Review{
		ReviewID:  "rev_" + uuid.New().String(),
		ClubID:    clubID,
		StudentID: studentID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ConflictError("You have already reviewed this club")
		}
		return nil, apierrors.HandleDatabaseError(err, "Review")
	}

	slog.Info("Club reviewed", "clubID", clubID, "studentID", studentID, "rating", req.Rating)
	resp := toReviewResponse(&review)
	return &resp, nil
}

func toReviewResponse(review *models.Review) models.ReviewResponse {
	resp := models.ReviewResponse{
		ReviewID:  review.ReviewID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		ClubID:    review.ClubID,
		StudentID: review.StudentID,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}
	if review.Student != nil {
		resp.Student = &models.ReviewStudent{
			StudentID: review.Student.StudentID,
			FirstName: review.Student.FirstName,
			LastName:  review.Student.LastName,
		}
	}
	return resp
}
