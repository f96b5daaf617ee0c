package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

// handleClubs dispatches club-related routes:
//
//	GET/POST   /api/v1/clubs
//	GET/PATCH/DELETE /api/v1/clubs/:clubId
//	GET/POST   /api/v1/clubs/:clubId/members
//	PATCH/DELETE /api/v1/clubs/:clubId/members/:studentId
//	GET        /api/v1/clubs/:clubId/invite
//	GET/POST   /api/v1/clubs/:clubId/reviews
//	GET/POST   /api/v1/clubs/:clubId/messages
func (h *V1Handler) handleClubs(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/clubs")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	// Collection endpoint: GET /api/v1/clubs and POST /api/v1/clubs
	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getAllClubs(w, r)
		case http.MethodPost:
			h.createClub(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	clubId := parts[0]

	// Base club endpoint: /api/v1/clubs/:clubId
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getClub(w, r, clubId)
		case http.MethodPatch:
			h.updateClub(w, r, clubId)
		case http.MethodDelete:
			h.deleteClub(w, r, clubId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	switch parts[1] {
	case "members":
		// /api/v1/clubs/:clubId/members and /:studentId
		if len(parts) == 2 {
			switch r.Method {
			case http.MethodGet:
				h.getClubMembers(w, r, clubId)
			case http.MethodPost:
				h.requestJoin(w, r, clubId)
			default:
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
		if len(parts) == 3 {
			studentId := parts[2]
			switch r.Method {
			case http.MethodPatch:
				h.decideMembership(w, r, clubId, studentId)
			case http.MethodDelete:
				h.removeMembership(w, r, clubId, studentId)
			default:
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
	case "invite":
		if len(parts) == 2 && r.Method == http.MethodGet {
			h.getClubInvite(w, r, clubId)
			return
		}
		utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	case "reviews":
		if len(parts) == 2 {
			switch r.Method {
			case http.MethodGet:
				h.getClubReviews(w, r, clubId)
			case http.MethodPost:
				h.createClubReview(w, r, clubId)
			default:
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
	case "messages":
		if len(parts) == 2 {
			switch r.Method {
			case http.MethodGet:
				h.getClubMessages(w, r, clubId)
			case http.MethodPost:
				h.sendClubMessage(w, r, clubId)
			default:
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getAllClubs(w http.ResponseWriter, r *http.Request) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filters := models.ClubFilters{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	pagination := models.Pagination{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", 20),
	}

	clubs, err := h.clubService.GetAll(r.Context(), filters, pagination)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, clubs)
}

func (h *V1Handler) createClub(w http.ResponseWriter, r *http.Request) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	club, err := h.clubService.Create(r.Context(), &req, student.StudentID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, club)
}

func (h *V1Handler) getClub(w http.ResponseWriter, r *http.Request, clubId string) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	club, err := h.clubService.GetByID(r.Context(), clubId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, club)
}

func (h *V1Handler) updateClub(w http.ResponseWriter, r *http.Request, clubId string) {
	if err := h.requireClubAdmin(r, clubId); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var req models.UpdateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	club, err := h.clubService.Update(r.Context(), clubId, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, club)
}

func (h *V1Handler) deleteClub(w http.ResponseWriter, r *http.Request, clubId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Club admin or university admin may delete
	if !student.IsUniversityAdmin() {
		isAdmin, err := h.clubService.IsAdmin(r.Context(), clubId, student.StudentID)
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return
		}
		if !isAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "Only the club admin can delete this club")
			return
		}
	}

	if err := h.clubService.Delete(r.Context(), clubId); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Club deleted"})
}

func (h *V1Handler) getClubInvite(w http.ResponseWriter, r *http.Request, clubId string) {
	if err := h.requireClubAdmin(r, clubId); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	invite, err := h.inviteService.GetOrCreateInvite(r.Context(), clubId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, invite)
}
