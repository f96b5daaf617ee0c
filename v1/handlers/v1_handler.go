package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/services"
)

// V1Handler handles all V1 API routes
type V1Handler struct {
	clubService         *services.ClubService
	membershipService   *services.MembershipService
	inviteService       *services.InviteService
	adminService        *services.AdminService
	eventService        *services.EventService
	notificationService *services.NotificationService
	studentService      *services.StudentService
	reviewService       *services.ReviewService
	messageService      *services.MessageService
}

// NewV1Handler creates a new V1 handler wired to the given database.
// inviteBaseURL is the public origin invite links are built against;
// publisher is the optional stream backend for notification fan-out events.
func NewV1Handler(db *gorm.DB, inviteBaseURL string, publisher services.StreamPublisher) *V1Handler {
	studentService := services.NewStudentService(db)
	inviteService := services.NewInviteService(db, inviteBaseURL)
	notificationService := services.NewNotificationService(db, publisher)

	return &V1Handler{
		clubService:         services.NewClubService(db, studentService),
		membershipService:   services.NewMembershipService(db, inviteService),
		inviteService:       inviteService,
		adminService:        services.NewAdminService(db, studentService, services.NewEmailService(), notificationService),
		eventService:        services.NewEventService(db, notificationService),
		notificationService: notificationService,
		studentService:      studentService,
		reviewService:       services.NewReviewService(db),
		messageService:      services.NewMessageService(db),
	}
}

// SetupV1Routes configures all V1 API routes
func (h *V1Handler) SetupV1Routes(mux *http.ServeMux) {
	// Club routes (details, members, invite link)
	mux.Handle("/api/v1/clubs", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleClubs)))
	mux.Handle("/api/v1/clubs/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleClubs)))

	// Invite redemption
	mux.Handle("/api/v1/invites/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleInvites)))

	// Event routes (details, RSVPs)
	mux.Handle("/api/v1/events", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEvents)))
	mux.Handle("/api/v1/events/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleEvents)))

	// Notification routes
	mux.Handle("/api/v1/notifications", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleNotifications)))
	mux.Handle("/api/v1/notifications/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleNotifications)))

	// Student routes (profile, own memberships)
	mux.Handle("/api/v1/students/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleStudents)))

	// University admin review routes
	mux.Handle("/api/v1/admin/clubs", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleAdminClubs)))
	mux.Handle("/api/v1/admin/clubs/", utils.PanicRecoveryMiddleware(http.HandlerFunc(h.handleAdminClubs)))
}
