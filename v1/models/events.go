package models

import "time"

// Event represents a club event
type Event struct {
	EventID     string    `gorm:"primarykey;column:event_id" json:"eventId"`
	ClubID      string    `gorm:"column:club_id;not null;index" json:"clubId"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	EventDate   time.Time `gorm:"column:event_date;not null" json:"eventDate"`
	Location    string    `gorm:"column:location;not null" json:"location"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Event) TableName() string {
	return "events"
}

// Rsvp represents a student's attendance commitment to an event. The
// composite primary key enforces at most one RSVP per student per event.
type Rsvp struct {
	StudentID string `gorm:"primarykey;column:student_id" json:"studentId"`
	EventID   string `gorm:"primarykey;column:event_id" json:"eventId"`
	BaseModel
}

// TableName sets the table name for GORM
func (Rsvp) TableName() string {
	return "rsvps"
}

// CreateEventRequest is the payload for creating an event
type CreateEventRequest struct {
	ClubID      string  `json:"clubId"`
	Title       string  `json:"title"`
	EventDate   string  `json:"eventDate"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
}

// UpdateEventRequest is the payload for updating an event
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	EventDate   *string `json:"eventDate,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
}

// EventClub is the club summary embedded in event responses
type EventClub struct {
	ClubID   string `json:"clubId"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// EventResponse is the detailed projection of an event
type EventResponse struct {
	EventID       string    `json:"eventId"`
	Title         string    `json:"title"`
	EventDate     string    `json:"eventDate"`
	Location      string    `json:"location"`
	Description   *string   `json:"description"`
	ClubID        string    `json:"clubId"`
	CreatedAt     string    `json:"createdAt"`
	Club          EventClub `json:"club"`
	AttendeeCount int64     `json:"attendeeCount"`
}

// RsvpResponse is the public projection of an RSVP
type RsvpResponse struct {
	StudentID string `json:"studentId"`
	EventID   string `json:"eventId"`
	CreatedAt string `json:"createdAt"`
}

// AttendeeResponse is an RSVP enriched with the student's details
type AttendeeResponse struct {
	StudentID string          `json:"studentId"`
	EventID   string          `json:"eventId"`
	CreatedAt string          `json:"createdAt"`
	Student   StudentResponse `json:"student"`
}

// EventFilters narrows event listings
type EventFilters struct {
	ClubID   string
	Upcoming bool
}
