package models

// StudentRole represents the platform-wide role of a student
type StudentRole string

const (
	RoleStudent         StudentRole = "student"
	RoleClubAdmin       StudentRole = "club_admin"
	RoleUniversityAdmin StudentRole = "university_admin"
)

// Valid reports whether the role is one of the known roles
func (r StudentRole) Valid() bool {
	switch r {
	case RoleStudent, RoleClubAdmin, RoleUniversityAdmin:
		return true
	}
	return false
}

// ClubStatus represents the lifecycle status of a club
type ClubStatus string

const (
	ClubStatusPending   ClubStatus = "pending"
	ClubStatusApproved  ClubStatus = "approved"
	ClubStatusRejected  ClubStatus = "rejected"
	ClubStatusSuspended ClubStatus = "suspended"
)

// MembershipStatus represents the status of a student's membership in a club
type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusRejected MembershipStatus = "rejected"
)

// Valid reports whether the status is one of the known membership states
func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipStatusPending, MembershipStatusActive, MembershipStatusRejected:
		return true
	}
	return false
}

// Notification types emitted by the fan-out process
const (
	NotificationTypeSystem      = "system"
	NotificationTypeEventInvite = "event_invite"
)

// Field length constraints
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
	MaxEmailLength       = 320 // RFC 3696 specification
	MaxReasonLength      = 1000
	MaxMessageLength     = 500
)

// Review rating bounds
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// InviteTokenLength is the rendered length of an invite token: 32 random
// bytes as lowercase hex characters
const InviteTokenLength = 64
