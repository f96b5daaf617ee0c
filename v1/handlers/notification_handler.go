package handlers

import (
	"net/http"
	"strings"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

// handleNotifications dispatches notification routes:
//
//	GET   /api/v1/notifications
//	GET   /api/v1/notifications/unread-count
//	PATCH /api/v1/notifications/:notificationId
func (h *V1Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/notifications")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		if r.Method != http.MethodGet {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.getNotifications(w, r)
		return
	}

	if len(parts) == 1 {
		if parts[0] == "unread-count" {
			if r.Method != http.MethodGet {
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			h.getUnreadCount(w, r)
			return
		}
		if r.Method != http.MethodPatch {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.markNotificationRead(w, r, parts[0])
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getNotifications(w http.ResponseWriter, r *http.Request) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	notifications, err := h.notificationService.GetStudentNotifications(r.Context(), student.StudentID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, notifications)
}

func (h *V1Handler) getUnreadCount(w http.ResponseWriter, r *http.Request) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	count, err := h.notificationService.GetUnreadCount(r.Context(), student.StudentID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int64{"unreadCount": count})
}

func (h *V1Handler) markNotificationRead(w http.ResponseWriter, r *http.Request, notificationId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), notificationId, student.StudentID); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}
