package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KBesada24/CSC430-SWE/v1/models"
	"github.com/KBesada24/CSC430-SWE/v1/services"
)

func TestGetNotifications(t *testing.T) {
	// Arrange
	mux, db := setupTestHandler(t)
	student := services.CreateTestStudent(t, db, models.RoleStudent)
	other := services.CreateTestStudent(t, db, models.RoleStudent)

	mine := models.Notification{
		NotificationID: "ntf_mine",
		StudentID:      student.StudentID,
		Title:          "Welcome",
		Message:        "Welcome to the platform",
		Type:           models.NotificationTypeSystem,
	}
	require.NoError(t, db.Create(&mine).Error)

	theirs := models.Notification{
		NotificationID: "ntf_theirs",
		StudentID:      other.StudentID,
		Title:          "Welcome",
		Message:        "Welcome to the platform",
		Type:           models.NotificationTypeSystem,
	}
	require.NoError(t, db.Create(&theirs).Error)

	// Act
	w := doRequest(t, mux, "GET", "/api/v1/notifications", nil, student)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var notifications []models.NotificationResponse
	decodeBody(t, w, &notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, "ntf_mine", notifications[0].NotificationID)
}

func TestGetUnreadCount_AndMarkRead(t *testing.T) {
	// Arrange
	mux, db := setupTestHandler(t)
	student := services.CreateTestStudent(t, db, models.RoleStudent)

	notification := models.Notification{
		NotificationID: "ntf_unread",
		StudentID:      student.StudentID,
		Title:          "Event invite",
		Message:        "You are invited",
		Type:           models.NotificationTypeEventInvite,
	}
	require.NoError(t, db.Create(&notification).Error)

	// Act
	before := doRequest(t, mux, "GET", "/api/v1/notifications/unread-count", nil, student)
	markW := doRequest(t, mux, "PATCH", "/api/v1/notifications/ntf_unread", nil, student)
	after := doRequest(t, mux, "GET", "/api/v1/notifications/unread-count", nil, student)

	// Assert
	assert.Equal(t, http.StatusOK, before.Code)
	assert.Equal(t, http.StatusOK, markW.Code)
	assert.Equal(t, http.StatusOK, after.Code)

	var beforeCount map[string]int64
	decodeBody(t, before, &beforeCount)
	assert.Equal(t, int64(1), beforeCount["unreadCount"])

	var afterCount map[string]int64
	decodeBody(t, after, &afterCount)
	assert.Equal(t, int64(0), afterCount["unreadCount"])
}

func TestMarkNotificationRead_OtherStudentsNotification(t *testing.T) {
	// Arrange
	mux, db := setupTestHandler(t)
	recipient := services.CreateTestStudent(t, db, models.RoleStudent)
	other := services.CreateTestStudent(t, db, models.RoleStudent)

	notification := models.Notification{
		NotificationID: "ntf_private",
		StudentID:      recipient.StudentID,
		Title:          "Event invite",
		Message:        "You are invited",
		Type:           models.NotificationTypeEventInvite,
	}
	require.NoError(t, db.Create(&notification).Error)

	// Act: a different student tries to mark it read
	w := doRequest(t, mux, "PATCH", "/api/v1/notifications/ntf_private", nil, other)

	// Assert: not found, and the recipient's notification stays unread
	assert.Equal(t, http.StatusNotFound, w.Code)

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "notification_id = ?", "ntf_private").Error)
	assert.False(t, reloaded.Read)
}

func TestMarkNotificationRead_NotFound(t *testing.T) {
	// Arrange
	mux, db := setupTestHandler(t)
	student := services.CreateTestStudent(t, db, models.RoleStudent)

	// Act
	w := doRequest(t, mux, "PATCH", "/api/v1/notifications/ntf_missing", nil, student)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNotifications_Unauthenticated(t *testing.T) {
	// Arrange
	mux, _ := setupTestHandler(t)

	// Act
	w := doRequest(t, mux, "GET", "/api/v1/notifications", nil, nil)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
