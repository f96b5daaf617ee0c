package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

func (h *V1Handler) getClubMembers(w http.ResponseWriter, r *http.Request, clubId string) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	statusFilter := models.MembershipStatus(r.URL.Query().Get("status"))
	members, err := h.membershipService.GetMembers(r.Context(), clubId, statusFilter)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

// requestJoin handles POST /api/v1/clubs/:clubId/members. A plain student
// requests membership for themselves; the club admin may also submit on a
// student's behalf with a studentId in the body.
func (h *V1Handler) requestJoin(w http.ResponseWriter, r *http.Request, clubId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetStudentId := student.StudentID
	if r.Body != nil && r.ContentLength != 0 {
		var req models.AddMemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.StudentID != "" && req.StudentID != student.StudentID {
			if err := h.requireClubAdmin(r, clubId); err != nil {
				utils.RespondWithAPIError(w, err)
				return
			}
			targetStudentId = req.StudentID
		}
	}

	membership, err := h.membershipService.RequestJoin(r.Context(), clubId, targetStudentId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, membership)
}

func (h *V1Handler) decideMembership(w http.ResponseWriter, r *http.Request, clubId, studentId string) {
	if err := h.requireClubAdmin(r, clubId); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var req models.DecideMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	membership, err := h.membershipService.DecideMembership(r.Context(), clubId, studentId, req.Status)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, membership)
}

func (h *V1Handler) removeMembership(w http.ResponseWriter, r *http.Request, clubId, studentId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.membershipService.LeaveOrRemove(r.Context(), clubId, studentId, student.StudentID); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Membership removed"})
}

// handleInvites dispatches POST /api/v1/invites/:token/join
func (h *V1Handler) handleInvites(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/invites")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 2 && parts[1] == "join" {
		if r.Method != http.MethodPost {
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.joinViaInvite(w, r, parts[0])
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) joinViaInvite(w http.ResponseWriter, r *http.Request, token string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	membership, err := h.membershipService.JoinViaInvite(r.Context(), token, student.StudentID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, membership)
}
