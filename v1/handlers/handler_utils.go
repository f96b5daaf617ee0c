package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

// parseIntQuery reads an integer query parameter, falling back to def when
// missing or malformed
func parseIntQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}

// requireClubAdmin authorizes the request for club-admin-only operations.
// The club's admin and university admins pass.
func (h *V1Handler) requireClubAdmin(r *http.Request, clubId string) error {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		return apierrors.AuthenticationError("")
	}
	if student.IsUniversityAdmin() {
		return nil
	}

	isAdmin, err := h.clubService.IsAdmin(r.Context(), clubId, student.StudentID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apierrors.AuthorizationError("Club admin role required")
	}
	return nil
}
