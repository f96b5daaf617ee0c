package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

func (h *V1Handler) getClubReviews(w http.ResponseWriter, r *http.Request, clubId string) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	reviews, err := h.reviewService.GetClubReviews(r.Context(), clubId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

func (h *V1Handler) createClubReview(w http.ResponseWriter, r *http.Request, clubId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), clubId, student.StudentID, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, review)
}
