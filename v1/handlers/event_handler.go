package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

// handleEvents dispatches event-related routes:
//
//	GET/POST   /api/v1/events
//	GET/PATCH/DELETE /api/v1/events/:eventId
//	GET/POST   /api/v1/events/:eventId/rsvps
//	DELETE     /api/v1/events/:eventId/rsvps/:studentId
func (h *V1Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/events")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	if len(parts) == 1 && parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			h.getAllEvents(w, r)
		case http.MethodPost:
			h.createEvent(w, r)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	eventId := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.getEvent(w, r, eventId)
		case http.MethodPatch:
			h.updateEvent(w, r, eventId)
		case http.MethodDelete:
			h.deleteEvent(w, r, eventId)
		default:
			utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	if parts[1] == "rsvps" {
		if len(parts) == 2 {
			switch r.Method {
			case http.MethodGet:
				h.getAttendees(w, r, eventId)
			case http.MethodPost:
				h.addRsvp(w, r, eventId)
			default:
				utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
		if len(parts) == 3 && r.Method == http.MethodDelete {
			h.removeRsvp(w, r, eventId, parts[2])
			return
		}
	}

	utils.RespondWithError(w, http.StatusNotFound, "Endpoint not found")
}

func (h *V1Handler) getAllEvents(w http.ResponseWriter, r *http.Request) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filters := models.EventFilters{
		ClubID:   r.URL.Query().Get("clubId"),
		Upcoming: r.URL.Query().Get("upcoming") == "true",
	}

	events, err := h.eventService.GetAll(r.Context(), filters)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}

func (h *V1Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.requireClubAdmin(r, req.ClubID); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	event, err := h.eventService.Create(r.Context(), &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, event)
}

func (h *V1Handler) getEvent(w http.ResponseWriter, r *http.Request, eventId string) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	event, err := h.eventService.GetByID(r.Context(), eventId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

func (h *V1Handler) updateEvent(w http.ResponseWriter, r *http.Request, eventId string) {
	existing, err := h.eventService.GetByID(r.Context(), eventId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if err := h.requireClubAdmin(r, existing.ClubID); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(r.Context(), eventId, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

func (h *V1Handler) deleteEvent(w http.ResponseWriter, r *http.Request, eventId string) {
	existing, err := h.eventService.GetByID(r.Context(), eventId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if err := h.requireClubAdmin(r, existing.ClubID); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	if err := h.eventService.Delete(r.Context(), eventId); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

func (h *V1Handler) getAttendees(w http.ResponseWriter, r *http.Request, eventId string) {
	if _, err := v1utils.GetAuthenticatedStudent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	attendees, err := h.eventService.GetAttendees(r.Context(), eventId)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, attendees)
}

func (h *V1Handler) addRsvp(w http.ResponseWriter, r *http.Request, eventId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	rsvp, err := h.eventService.AddRsvp(r.Context(), eventId, student.StudentID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rsvp)
}

func (h *V1Handler) removeRsvp(w http.ResponseWriter, r *http.Request, eventId, studentId string) {
	student, err := v1utils.GetAuthenticatedStudent(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Students withdraw their own RSVP only
	if studentId != student.StudentID {
		utils.RespondWithError(w, http.StatusForbidden, "Cannot withdraw another student's RSVP")
		return
	}

	if err := h.eventService.RemoveRsvp(r.Context(), eventId, studentId); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "RSVP removed"})
}
