package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

// handleStudents dispatches student routes:
//
//	GET/PATCH /api/v1/students/:studentId
//	GET       /api/v1/students/:studentId/memberships
func (h *V1Handler) handleStudents(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/students")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) < 1 || parts[0] == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Student ID is required")
		return
	}

	studentId := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getStudent(w, r, studentId)
		case http.MethodPatch:
			h.updateStudent(w, r, studentId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if len(parts) == 2 && parts[1] == "memberships" && r.Method == http.MethodGet {
		h.getStudentMemberships(w, r, studentId)
		return
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getStudent(w http.ResponseWriter, r *http.Request, studentId string) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	student, err := h.studentService.GetStudent(r.Context(), studentId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, student)
}

func (h *V1Handler) updateStudent(w http.ResponseWriter, r *http.Request, studentId string) {
	principal, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Students edit their own profile only
	if principal.StudentID != studentId && !principal.IsUniversityAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Cannot update another student's profile")
		return
	}

	var req models.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(r.Context(), studentId, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, student)
}

func (h *V1Handler) getStudentMemberships(w http.ResponseWriter, r *http.Request, studentId string) {
	principal, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if principal.StudentID != studentId && !principal.IsUniversityAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Cannot view another student's memberships")
		return
	}

	memberships, err := h.membershipService.GetStudentMemberships(r.Context(), studentId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, memberships)
}
