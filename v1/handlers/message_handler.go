package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

func (h *V1Handler) getClubMessages(w http.ResponseWriter, r *http.Request, clubId string) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	messages, err := h.messageService.GetClubMessages(r.Context(), clubId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, messages)
}

func (h *V1Handler) sendClubMessage(w http.ResponseWriter, r *http.Request, clubId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := h.messageService.SendMessage(r.Context(), clubId, student.StudentID, req.Content)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, message)
}
