package services

import (
	"log/slog"
	"strings"
)

// EmailService dispatches club lifecycle emails. Delivery is a logged
// placeholder; the provider integration lives behind this type so callers
// never depend on the transport. All sends are best-effort.
type EmailService struct{}

// NewEmailService creates a new email service
func NewEmailService() *EmailService {
	return &EmailService{}
}

// SendClubApprovalEmail notifies a club admin that their club was approved
func (s *EmailService) SendClubApprovalEmail(studentEmail, clubName string) error {
	slog.Info("Sending club approval email",
		"to", maskEmail(studentEmail),
		"subject", "Your club \""+clubName+"\" has been approved!")
	return nil
}

// SendClubRejectionEmail notifies a club admin that their club was rejected
func (s *EmailService) SendClubRejectionEmail(studentEmail, clubName, reason string) error {
	slog.Info("Sending club rejection email",
		"to", maskEmail(studentEmail),
		"subject", "Update on your club \""+clubName+"\" application",
		"reason", reason)
	return nil
}

// SendClubDeactivationEmail notifies a club admin that their club was deactivated
func (s *EmailService) SendClubDeactivationEmail(studentEmail, clubName string) error {
	slog.Info("Sending club deactivation email",
		"to", maskEmail(studentEmail),
		"subject", "Your club \""+clubName+"\" has been deactivated")
	return nil
}

// maskEmail hides most of the local part so addresses never land in logs
func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "***@***.***"
	}
	if len(local) > 2 {
		return local[:2] + "***@" + domain
	}
	return "***@" + domain
}
