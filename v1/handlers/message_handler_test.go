package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KBesada24/CSC430-SWE/v1/models"
	"github.com/KBesada24/CSC430-SWE/v1/services"
)

func TestMessageEndpoints(t *testing.T) {
	mux, db := setupTestHandler(t)
	admin := services.CreateTestStudent(t, db, models.RoleClubAdmin)
	club := services.CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	member := services.CreateTestStudent(t, db, models.RoleStudent)

	t.Run("post message returns 201", func(t *testing.T) {
		w := doRequest(t, mux, http.MethodPost, "/api/v1/clubs/"+club.ClubID+"/messages",
			models.SendMessageRequest{Content: "Meeting moved to 6pm"}, member)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp models.MessageResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "Meeting moved to 6pm", resp.Content)
		assert.Equal(t, member.StudentID, resp.StudentID)
	})

	t.Run("list returns messages with author", func(t *testing.T) {
		w := doRequest(t, mux, http.MethodGet, "/api/v1/clubs/"+club.ClubID+"/messages", nil, admin)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp []models.MessageResponse
		decodeBody(t, w, &resp)
		assert.Len(t, resp, 1)
		assert.NotNil(t, resp[0].Student)
		assert.Equal(t, member.StudentID, resp[0].Student.StudentID)
	})

	t.Run("blank message returns 400", func(t *testing.T) {
		w := doRequest(t, mux, http.MethodPost, "/api/v1/clubs/"+club.ClubID+"/messages",
			models.SendMessageRequest{Content: "   "}, member)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown club returns 404", func(t *testing.T) {
		w := doRequest(t, mux, http.MethodPost, "/api/v1/clubs/club_missing/messages",
			models.SendMessageRequest{Content: "hello"}, member)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated returns 401", func(t *testing.T) {
		w := doRequest(t, mux, http.MethodGet, "/api/v1/clubs/"+club.ClubID+"/messages", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
