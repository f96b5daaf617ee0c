package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// recordingPublisher captures fan-out events or fails on demand
type recordingPublisher struct {
	events []map[string]interface{}
	err    error
}

func (p *recordingPublisher) PublishNotificationEvent(ctx context.Context, data map[string]interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, data)
	return nil
}

func TestNotifyClubMembers_OneRowPerActiveMember(t *testing.T) {
	// Arrange
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)

	activeA := CreateTestStudent(t, db, models.RoleStudent)
	activeB := CreateTestStudent(t, db, models.RoleStudent)
	pending := CreateTestStudent(t, db, models.RoleStudent)
	rejected := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, activeA.StudentID, club.ClubID, models.MembershipStatusActive)
	CreateTestMembership(t, db, activeB.StudentID, club.ClubID, models.MembershipStatusActive)
	CreateTestMembership(t, db, pending.StudentID, club.ClubID, models.MembershipStatusPending)
	CreateTestMembership(t, db, rejected.StudentID, club.ClubID, models.MembershipStatusRejected)

	publisher := &recordingPublisher{}
	service := NewNotificationService(db, publisher)

	// Act
	err := service.NotifyClubMembers(context.Background(), club.ClubID,
		"Announcement", "General meeting this Friday", models.NotificationTypeSystem, nil)

	// Assert: only active members were notified
	assert.NoError(t, err)
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(2), count)

	var forPending int64
	db.Model(&models.Notification{}).Where("student_id = ?", pending.StudentID).Count(&forPending)
	assert.Equal(t, int64(0), forPending)

	// One summary event on the stream
	assert.Len(t, publisher.events, 1)
	assert.Equal(t, club.ClubID, publisher.events[0]["club_id"])
	assert.Equal(t, 2, publisher.events[0]["recipients"])
}

func TestNotifyClubMembers_ZeroMembersIsNoOp(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)

	publisher := &recordingPublisher{}
	service := NewNotificationService(db, publisher)

	err := service.NotifyClubMembers(context.Background(), club.ClubID,
		"Announcement", "Nobody will read this", models.NotificationTypeSystem, nil)

	assert.NoError(t, err)
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, publisher.events)
}

func TestNotifyClubMembers_PublisherFailureIsSwallowed(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	member := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, member.StudentID, club.ClubID, models.MembershipStatusActive)

	publisher := &recordingPublisher{err: errors.New("stream unavailable")}
	service := NewNotificationService(db, publisher)

	err := service.NotifyClubMembers(context.Background(), club.ClubID,
		"Announcement", "Stream is down", models.NotificationTypeSystem, nil)

	// The notification rows still land
	assert.NoError(t, err)
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestNotifyClubMembers_DefaultsToSystemType(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	member := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, member.StudentID, club.ClubID, models.MembershipStatusActive)

	service := NewNotificationService(db, nil)

	err := service.NotifyClubMembers(context.Background(), club.ClubID, "Hello", "World", "", nil)

	assert.NoError(t, err)
	var notification models.Notification
	assert.NoError(t, db.First(&notification).Error)
	assert.Equal(t, models.NotificationTypeSystem, notification.Type)
}

func TestGetStudentNotifications_NewestFirst(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewNotificationService(db, nil)
	ctx := context.Background()

	assert.NoError(t, service.NotifyStudent(ctx, student.StudentID, "First", "m1", models.NotificationTypeSystem, nil))
	assert.NoError(t, service.NotifyStudent(ctx, student.StudentID, "Second", "m2", models.NotificationTypeSystem, nil))

	result, err := service.GetStudentNotifications(ctx, student.StudentID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	for _, n := range result {
		assert.False(t, n.IsRead)
		assert.Equal(t, student.StudentID, n.StudentID)
	}
}

func TestGetUnreadCount(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewNotificationService(db, nil)
	ctx := context.Background()

	assert.NoError(t, service.NotifyStudent(ctx, student.StudentID, "A", "m", models.NotificationTypeSystem, nil))
	assert.NoError(t, service.NotifyStudent(ctx, student.StudentID, "B", "m", models.NotificationTypeSystem, nil))

	count, err := service.GetUnreadCount(ctx, student.StudentID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var notification models.Notification
	assert.NoError(t, db.First(&notification).Error)
	assert.NoError(t, service.MarkAsRead(ctx, notification.NotificationID, student.StudentID))

	count, err = service.GetUnreadCount(ctx, student.StudentID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkAsRead_Idempotent(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewNotificationService(db, nil)
	ctx := context.Background()

	assert.NoError(t, service.NotifyStudent(ctx, student.StudentID, "A", "m", models.NotificationTypeSystem, nil))
	var notification models.Notification
	assert.NoError(t, db.First(&notification).Error)

	assert.NoError(t, service.MarkAsRead(ctx, notification.NotificationID, student.StudentID))
	assert.NoError(t, service.MarkAsRead(ctx, notification.NotificationID, student.StudentID))

	var reloaded models.Notification
	assert.NoError(t, db.First(&reloaded, "notification_id = ?", notification.NotificationID).Error)
	assert.True(t, reloaded.Read)
}

func TestMarkAsRead_NotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)
	service := NewNotificationService(db, nil)

	err := service.MarkAsRead(context.Background(), "ntf_missing", student.StudentID)

	assert.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNotFound, apiErr.Type)
}

func TestMarkAsRead_OnlyRecipientMayMark(t *testing.T) {
	// Arrange: one student's notification, another student trying to mark it
	db := SetupSQLiteTestDB(t)
	recipient := CreateTestStudent(t, db, models.RoleStudent)
	other := CreateTestStudent(t, db, models.RoleStudent)

	service := NewNotificationService(db, nil)
	ctx := context.Background()

	assert.NoError(t, service.NotifyStudent(ctx, recipient.StudentID, "A", "m", models.NotificationTypeSystem, nil))
	var notification models.Notification
	assert.NoError(t, db.First(&notification).Error)

	// Act
	err := service.MarkAsRead(ctx, notification.NotificationID, other.StudentID)

	// Assert: resolves as not found, and the row stays unread
	assert.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNotFound, apiErr.Type)

	var reloaded models.Notification
	assert.NoError(t, db.First(&reloaded, "notification_id = ?", notification.NotificationID).Error)
	assert.False(t, reloaded.Read)

	// The recipient still can
	assert.NoError(t, service.MarkAsRead(ctx, notification.NotificationID, recipient.StudentID))
}

func TestNotifyStudent_CarriesMetadata(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewNotificationService(db, nil)

	metadata := models.NotificationMetadata{"eventId": "evt_1", "clubId": "club_1"}
	err := service.NotifyStudent(context.Background(), student.StudentID,
		"New event", "Details inside", models.NotificationTypeEventInvite, metadata)

	assert.NoError(t, err)
	var notification models.Notification
	assert.NoError(t, db.First(&notification).Error)
	assert.Equal(t, models.NotificationTypeEventInvite, notification.Type)
	assert.Equal(t, "evt_1", notification.Metadata["eventId"])
	assert.Equal(t, "club_1", notification.Metadata["clubId"])
}
