package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/pkg/monitoring"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// notificationListLimit caps how many notifications a single fetch returns
const notificationListLimit = 20

// StreamPublisher is the optional side channel the fan-out publishes to in
// addition to the store. Publish failures are logged and swallowed.
type StreamPublisher interface {
	PublishNotificationEvent(ctx context.Context, data map[string]interface{}) error
}

// NotificationService handles per-student notifications and the club-wide
// fan-out
type NotificationService struct {
	db        *gorm.DB
	publisher StreamPublisher
}

// NewNotificationService creates a new notification service. publisher may
// be nil when no stream backend is configured.
func NewNotificationService(db *gorm.DB, publisher StreamPublisher) *NotificationService {
	return &NotificationService{db: db, publisher: publisher}
}

// NotifyClubMembers creates one notification per active member of the club
// in a single batch insert. Zero active members is a no-op, not an error.
func (s *NotificationService) NotifyClubMembers(ctx context.Context, clubID, title, message, notificationType string, metadata models.NotificationMetadata) error {
	if notificationType == "" {
		notificationType = models.NotificationTypeSystem
	}

	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Where("club_id = ? AND status = ?", clubID, models.MembershipStatusActive).
		Find(&memberships).Error
	if err != nil {
		return apierrors.HandleDatabaseError(err, "Membership")
	}

	if len(memberships) == 0 {
		return nil
	}

	notifications := make([]models.Notification, 0, len(memberships))
	for _, membership := range memberships {
		notifications = append(notifications, models.Notification{
			NotificationID: "ntf_" + uuid.New().String(),
			StudentID:      membership.StudentID,
			Title:          title,
			Message:        message,
			Type:           notificationType,
			Metadata:       metadata,
		})
	}

	if err := s.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Notification")
	}

	slog.Info("Notification fan-out complete",
		"clubID", clubID,
		"type", notificationType,
		"recipients", len(notifications))
	monitoring.RecordFanOut(ctx, notificationType, int64(len(notifications)))

	s.publishEvent(ctx, clubID, title, notificationType, len(notifications))
	return nil
}

// publishEvent emits a single fan-out summary to the stream backend.
// Best-effort: failures never reach the caller.
func (s *NotificationService) publishEvent(ctx context.Context, clubID, title, notificationType string, recipients int) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishNotificationEvent(ctx, map[string]interface{}{
		"club_id":    clubID,
		"title":      title,
		"type":       notificationType,
		"recipients": recipients,
		"emitted_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		slog.Warn("Failed to publish notification event to stream", "clubID", clubID, "error", err)
	}
}

// GetStudentNotifications returns the student's notifications, newest first
func (s *NotificationService) GetStudentNotifications(ctx context.Context, studentID string) ([]models.NotificationResponse, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(notificationListLimit).
		Find(&notifications).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Notification")
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, models.NotificationResponse{
			NotificationID: n.NotificationID,
			StudentID:      n.StudentID,
			Title:          n.Title,
			Message:        n.Message,
			Type:           n.Type,
			Metadata:       n.Metadata,
			IsRead:         n.Read,
			CreatedAt:      n.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// GetUnreadCount returns the number of unread notifications for a student
func (s *NotificationService) GetUnreadCount(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("student_id = ? AND read = ?", studentID, false).
		Count(&count).Error
	if err != nil {
		return 0, apierrors.HandleDatabaseError(err, "Notification")
	}
	return count, nil
}

// MarkAsRead flips a notification's read flag to true. Only the recipient
// may mark it; another student's notification resolves as not found so the
// response never reveals whether the ID exists. The flip is idempotent;
// marking an already-read notification succeeds without effect.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, studentID string) error {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, "notification_id = ?", notificationID).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Notification")
	}

	if notification.StudentID != studentID {
		return apierrors.NotFoundError("Notification")
	}

	if notification.Read {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("notification_id = ?", notificationID).
		Update("read", true).Error
	if err != nil {
		return apierrors.HandleDatabaseError(err, "Notification")
	}
	return nil
}

// NotifyStudent creates a single notification for one recipient
func (s *NotificationService) NotifyStudent(ctx context.Context, studentID, title, message, notificationType string, metadata models.NotificationMetadata) error {
	if notificationType == "" {
		notificationType = models.NotificationTypeSystem
	}
	notification := models.Notification{
		NotificationID: "ntf_" + uuid.New().String(),
		StudentID:      studentID,
		Title:          title,
		Message:        message,
		Type:           notificationType,
		Metadata:       metadata,
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Notification")
	}
	return nil
}
