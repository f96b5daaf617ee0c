package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// messageListLimit caps how many messages a single fetch returns
const messageListLimit = 50

// MessageService manages club chat messages
type MessageService struct {
	db *gorm.DB
}

// NewMessageService creates a new message service
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// GetClubMessages lists a club's most recent messages in chronological
// order with author details. The newest messages win the limit; the slice
// is reversed afterwards so chat renders oldest-first.
func (s *MessageService) GetClubMessages(ctx context.Context, clubID string) ([]models.MessageResponse, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	var messages []models.Message
	err := s.db.WithContext(ctx).
		Preload("Student").
		Where("club_id = ?", clubID).
		Order("created_at DESC").
		Limit(messageListLimit).
		Find(&messages).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Message")
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		responses = append(responses, toMessageResponse(&messages[i]))
	}
	return responses, nil
}

// SendMessage posts a message on the club's board
func (s *MessageService) SendMessage(ctx context.Context, clubID, studentID, content string) (*models.MessageResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apierrors.ValidationError("Message content cannot be empty")
	}
	if len(content) > models.MaxMessageLength {
		return nil, apierrors.ValidationError("Message is too long")
	}

	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Student")
	}

	message := models.Message{
		MessageID: "msg_" + uuid.New().String(),
		ClubID:    clubID,
		StudentID: studentID,
		Content:   content,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Message")
	}

	slog.Info("Club message posted", "clubID", clubID, "studentID", studentID)
	resp := toMessageResponse(&message)
	return &resp, nil
}

func toMessageResponse(message *models.Message) models.MessageResponse {
	resp := models.MessageResponse{
		MessageID: message.MessageID,
		Content:   message.Content,
		ClubID:    message.ClubID,
		StudentID: message.StudentID,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}
	if message.Student != nil {
		resp.Student = &models.MessageStudent{
			StudentID: message.Student.StudentID,
			FirstName: message.Student.FirstName,
			LastName:  message.Student.LastName,
			Email:     message.Student.Email,
		}
	}
	return resp
}
