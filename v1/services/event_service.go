package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// fanOutTimeout bounds the background notification fan-out after an event
// is created
const fanOutTimeout = 30 * time.Second

// EventService manages club events and RSVPs
type EventService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

// NewEventService creates a new event service
func NewEventService(db *gorm.DB, notificationService *NotificationService) *EventService {
	return &EventService{db: db, notificationService: notificationService}
}

// Create schedules a new event for a club. The event date must be in the
// future. After the insert succeeds, every active member of the club is
// notified in the background; a fan-out failure is logged and never
// surfaces to the caller.
func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	eventDate, err := validateCreateEventRequest(req)
	if err != nil {
		return nil, err
	}

	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", req.ClubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	event := models.Event{
		EventID:     "evt_" + uuid.New().String(),
		ClubID:      req.ClubID,
		Title:       req.Title,
		EventDate:   eventDate,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Event")
	}

	slog.Info("Event created", "eventID", event.EventID, "clubID", event.ClubID)
	go s.fanOutEventInvites(&event, club.Name)

	resp := s.toEventResponse(ctx, &event, &club)
	return &resp, nil
}

// fanOutEventInvites notifies the club's active members about a new event.
// Runs detached from the request; panics are recovered so a fan-out bug
// can never take the process down.
func (s *EventService) fanOutEventInvites(event *models.Event, clubName string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event fan-out panicked", "eventID", event.EventID, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), fanOutTimeout)
	defer cancel()

	metadata := models.NotificationMetadata{
		"eventId": event.EventID,
		"clubId":  event.ClubID,
	}
	err := s.notificationService.NotifyClubMembers(ctx, event.ClubID,
		"New event: "+event.Title,
		clubName+" scheduled \""+event.Title+"\" on "+event.EventDate.Format(time.RFC3339)+" at "+event.Location,
		models.NotificationTypeEventInvite, metadata)
	if err != nil {
		slog.Error("Event fan-out failed", "eventID", event.EventID, "error", err)
	}
}

// GetAll lists events matching the filters, soonest first
func (s *EventService) GetAll(ctx context.Context, filters models.EventFilters) ([]models.EventResponse, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if filters.ClubID != "" {
		query = query.Where("club_id = ?", filters.ClubID)
	}
	if filters.Upcoming {
		query = query.Where("event_date > ?", time.Now())
	}

	var events []models.Event
	if err := query.Order("event_date ASC").Find(&events).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Event")
	}

	responses := make([]models.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, s.toEventResponse(ctx, &events[i], nil))
	}
	return responses, nil
}

// GetByID retrieves an event with its club summary and attendee count
func (s *EventService) GetByID(ctx context.Context, eventID string) (*models.EventResponse, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "event_id = ?", eventID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Event")
	}

	resp := s.toEventResponse(ctx, &event, nil)
	return &resp, nil
}

// Update modifies an event's details
func (s *EventService) Update(ctx context.Context, eventID string, req *models.UpdateEventRequest) (*models.EventResponse, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "event_id = ?", eventID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Event")
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apierrors.ValidationError("Event title cannot be blank")
		}
		event.Title = *req.Title
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			return nil, apierrors.ValidationError("eventDate must be an RFC 3339 timestamp")
		}
		event.EventDate = eventDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Description != nil {
		event.Description = req.Description
	}

	if err := s.db.WithContext(ctx).Save(&event).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Event")
	}

	resp := s.toEventResponse(ctx, &event, nil)
	return &resp, nil
}

// Delete removes an event and its RSVPs. RSVPs go first so a partial
// failure never leaves attendance rows pointing at a missing event.
func (s *EventService) Delete(ctx context.Context, eventID string) error {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "event_id = ?", eventID).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Event")
	}

	if err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&models.Rsvp{}).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Rsvp")
	}
	if err := s.db.WithContext(ctx).Delete(&models.Event{}, "event_id = ?", eventID).Error; err != nil {
		return apierrors.HandleDatabaseError(err, "Event")
	}

	slog.Info("Event deleted", "eventID", eventID)
	return nil
}

// AddRsvp records a student's attendance commitment. The composite key
// makes a second RSVP from the same student a conflict.
func (s *EventService) AddRsvp(ctx context.Context, eventID, studentID string) (*models.RsvpResponse, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "event_id = ?", eventID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Event")
	}

	rsvp := models.Rsvp{
		StudentID: studentID,
		EventID:   eventID,
	}
	if err := s.db.WithContext(ctx).Create(&rsvp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ConflictError("Student has already RSVP'd to this event")
		}
		return nil, apierrors.HandleDatabaseError(err, "Rsvp")
	}

	return &models.RsvpResponse{
		StudentID: rsvp.StudentID,
		EventID:   rsvp.EventID,
		CreatedAt: rsvp.CreatedAt.Format(time.RFC3339),
	}, nil
}

// RemoveRsvp withdraws a student's RSVP
func (s *EventService) RemoveRsvp(ctx context.Context, eventID, studentID string) error {
	var rsvp models.Rsvp
	err := s.db.WithContext(ctx).
		First(&rsvp, "student_id = ? AND event_id = ?", studentID, eventID).Error
	if err != nil {
		return apierrors.HandleDatabaseError(err, "Rsvp")
	}

	err = s.db.WithContext(ctx).
		Where("student_id = ? AND event_id = ?", studentID, eventID).
		Delete(&models.Rsvp{}).Error
	if err != nil {
		return apierrors.HandleDatabaseError(err, "Rsvp")
	}
	return nil
}

// GetAttendees lists an event's RSVPs with each student's details
func (s *EventService) GetAttendees(ctx context.Context, eventID string) ([]models.AttendeeResponse, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).First(&event, "event_id = ?", eventID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Event")
	}

	var rsvps []models.Rsvp
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rsvps).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Rsvp")
	}

	attendees := make([]models.AttendeeResponse, 0, len(rsvps))
	for _, rsvp := range rsvps {
		attendee := models.AttendeeResponse{
			StudentID: rsvp.StudentID,
			EventID:   rsvp.EventID,
			CreatedAt: rsvp.CreatedAt.Format(time.RFC3339),
		}
		var student models.Student
		if err := s.db.WithContext(ctx).First(&student, "student_id = ?", rsvp.StudentID).Error; err == nil {
			attendee.Student = toStudentResponse(&student)
		}
		attendees = append(attendees, attendee)
	}
	return attendees, nil
}

func (s *EventService) toEventResponse(ctx context.Context, event *models.Event, club *models.Club) models.EventResponse {
	resp := models.EventResponse{
		EventID:     event.EventID,
		Title:       event.Title,
		EventDate:   event.EventDate.Format(time.RFC3339),
		Location:    event.Location,
		Description: event.Description,
		ClubID:      event.ClubID,
		CreatedAt:   event.CreatedAt.Format(time.RFC3339),
	}

	if club == nil {
		var loaded models.Club
		if err := s.db.WithContext(ctx).First(&loaded, "club_id = ?", event.ClubID).Error; err == nil {
			club = &loaded
		}
	}
	if club != nil {
		resp.Club = models.EventClub{
			ClubID:   club.ClubID,
			Name:     club.Name,
			Category: club.Category,
		}
	}

	var attendeeCount int64
	err := s.db.WithContext(ctx).Model(&models.Rsvp{}).
		Where("event_id = ?", event.EventID).
		Count(&attendeeCount).Error
	if err != nil {
		slog.Warn("Failed to count event attendees", "eventID", event.EventID, "error", err)
	}
	resp.AttendeeCount = attendeeCount

	return resp
}

func validateCreateEventRequest(req *models.CreateEventRequest) (time.Time, error) {
	var fields []apierrors.FieldDetail
	if strings.TrimSpace(req.ClubID) == "" {
		fields = append(fields, apierrors.FieldDetail{Field: "clubId", Message: "clubId is required"})
	}
	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, apierrors.FieldDetail{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(req.Location) == "" {
		fields = append(fields, apierrors.FieldDetail{Field: "location", Message: "location is required"})
	}

	var eventDate time.Time
	if strings.TrimSpace(req.EventDate) == "" {
		fields = append(fields, apierrors.FieldDetail{Field: "eventDate", Message: "eventDate is required"})
	} else {
		parsed, err := time.Parse(time.RFC3339, req.EventDate)
		switch {
		case err != nil:
			fields = append(fields, apierrors.FieldDetail{Field: "eventDate", Message: "eventDate must be an RFC 3339 timestamp"})
		case !parsed.After(time.Now()):
			fields = append(fields, apierrors.FieldDetail{Field: "eventDate", Message: "eventDate must be in the future"})
		default:
			eventDate = parsed
		}
	}

	if len(fields) > 0 {
		return time.Time{}, apierrors.ValidationErrorWithFields("Invalid event payload", fields)
	}
	return eventDate, nil
}
