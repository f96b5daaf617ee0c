package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

// handleAdminClubs dispatches university-admin review routes:
//
//	GET   /api/v1/admin/clubs?status=pending|approved
//	PATCH /api/v1/admin/clubs/:clubId  (action approve|reject|deactivate)
//
// Role enforcement lives inside AdminService so that every caller passes
// through the same check.
func (h *V1Handler) handleAdminClubs(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/admin/clubs")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		if r.Method != http.MethodGet {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.getClubsForReview(w, r)
		return
	}

	if len(parts) == 1 {
		if r.Method != http.MethodPatch {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.decideClub(w, r, parts[0])
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getClubsForReview(w http.ResponseWriter, r *http.Request) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	status := r.URL.Query().Get("status")
	var clubs []models.PendingClubResponse
	switch status {
	case "", string(models.ClubStatusPending):
		clubs, err = h.adminService.GetPendingClubs(r.Context(), student.StudentID)
	case string(models.ClubStatusApproved):
		clubs, err = h.adminService.GetActiveClubs(r.Context(), student.StudentID)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "status must be 'pending' or 'approved'")
		return
	}
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, clubs)
}

func (h *V1Handler) decideClub(w http.ResponseWriter, r *http.Request, clubId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.ClubDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var club *models.Club
	switch req.Action {
	case "approve":
		club, err = h.adminService.ApproveClub(r.Context(), clubId, student.StudentID)
	case "reject":
		club, err = h.adminService.RejectClub(r.Context(), clubId, student.StudentID, req.Reason)
	case "deactivate":
		club, err = h.adminService.DeactivateClub(r.Context(), clubId, student.StudentID)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "action must be 'approve', 'reject' or 'deactivate'")
		return
	}
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, club)
}
