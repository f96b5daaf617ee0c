package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/pkg/monitoring"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// MembershipService manages the student-club membership lifecycle
type MembershipService struct {
	db            *gorm.DB
	inviteService *InviteService
}

// NewMembershipService creates a new membership service
func NewMembershipService(db *gorm.DB, inviteService *InviteService) *MembershipService {
	return &MembershipService{db: db, inviteService: inviteService}
}

// RequestJoin creates a pending membership for the student in the club.
// Any existing membership row for the pair, whatever its status, is a
// conflict. Two simultaneous requests race on the composite primary key;
// the loser's insert surfaces as gorm.ErrDuplicatedKey and is reported as
// the same conflict.
func (s *MembershipService) RequestJoin(ctx context.Context, clubID, studentID string) (*models.MembershipResponse, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Student")
	}

	membership := models.Membership{
		StudentID: studentID,
		ClubID:    clubID,
		Status:    models.MembershipStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ConflictError("Student already has a membership in this club")
		}
		return nil, apierrors.HandleDatabaseError(err, "Membership")
	}

	slog.Info("Membership requested", "clubID", clubID, "studentID", studentID)
	monitoring.RecordClubEvent(ctx, "membership_requested", true)
	resp := toMembershipResponse(&membership)
	return &resp, nil
}

// DecideMembership resolves a pending join request. Only active and
// rejected are accepted as decisions; the row's status is overwritten
// regardless of its current value.
func (s *MembershipService) DecideMembership(ctx context.Context, clubID, studentID string, decision models.MembershipStatus) (*models.MembershipResponse, error) {
	if decision != models.MembershipStatusActive && decision != models.MembershipStatusRejected {
		return nil, apierrors.ValidationError("Decision must be 'active' or 'rejected'")
	}

	var membership models.Membership
	err := s.db.WithContext(ctx).
		First(&membership, "student_id = ? AND club_id = ?", studentID, clubID).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Membership")
	}

	membership.Status = decision
	if err := s.db.WithContext(ctx).Save(&membership).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Membership")
	}

	slog.Info("Membership decided", "clubID", clubID, "studentID", studentID, "decision", decision)
	resp := toMembershipResponse(&membership)
	return &resp, nil
}

// LeaveOrRemove deletes a membership row. Students may remove their own
// membership; the club's admin may remove anyone's. The row is deleted
// whatever its status.
func (s *MembershipService) LeaveOrRemove(ctx context.Context, clubID, studentID, actingStudentID string) error {
	if actingStudentID != studentID {
		var club models.Club
		if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
			return apierrors.HandleDatabaseError(err, "Club")
		}
		if club.AdminStudentID == nil || *club.AdminStudentID != actingStudentID {
			return apierrors.AuthorizationError("Only the student or the club admin can remove this membership")
		}
	}

	var membership models.Membership
	err := s.db.WithContext(ctx).
		First(&membership, "student_id = ? AND club_id = ?", studentID, clubID).Error
	if err != nil {
		return apierrors.HandleDatabaseError(err, "Membership")
	}

	err = s.db.WithContext(ctx).
		Where("student_id = ? AND club_id = ?", studentID, clubID).
		Delete(&models.Membership{}).Error
	if err != nil {
		return apierrors.HandleDatabaseError(err, "Membership")
	}

	slog.Info("Membership removed", "clubID", clubID, "studentID", studentID, "actingStudentID", actingStudentID)
	return nil
}

// JoinViaInvite redeems an invite token for the student. The membership is
// created pending and promoted to active in a second step, so a redeemed
// invite always lands the student as an active member. A missing token and
// a missing club produce the same generic not-found error.
func (s *MembershipService) JoinViaInvite(ctx context.Context, token, studentID string) (*models.MembershipResponse, error) {
	clubID, err := s.inviteService.GetClubIDFromToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if clubID == "" {
		return nil, apierrors.NotFoundError("Invite")
	}

	if _, err := s.RequestJoin(ctx, clubID, studentID); err != nil {
		return nil, err
	}

	membership, err := s.DecideMembership(ctx, clubID, studentID, models.MembershipStatusActive)
	if err != nil {
		return nil, err
	}

	monitoring.RecordClubEvent(ctx, "invite_redeemed", true)
	return membership, nil
}

// GetMembers lists a club's memberships with each student's details.
// statusFilter narrows by status when non-empty.
func (s *MembershipService) GetMembers(ctx context.Context, clubID string, statusFilter models.MembershipStatus) ([]models.MemberResponse, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	query := s.db.WithContext(ctx).Preload("Student").Where("club_id = ?", clubID)
	if statusFilter != "" {
		if !statusFilter.Valid() {
			return nil, apierrors.ValidationError("Unknown membership status: " + string(statusFilter))
		}
		query = query.Where("status = ?", statusFilter)
	}

	var memberships []models.Membership
	if err := query.Order("created_at ASC").Find(&memberships).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Membership")
	}

	members := make([]models.MemberResponse, 0, len(memberships))
	for _, m := range memberships {
		member := models.MemberResponse{
			StudentID: m.StudentID,
			ClubID:    m.ClubID,
			Status:    m.Status,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		}
		if m.Student != nil {
			member.Student = toStudentResponse(m.Student)
		}
		members = append(members, member)
	}
	return members, nil
}

// GetStudentMemberships lists a student's memberships, newest first
func (s *MembershipService) GetStudentMemberships(ctx context.Context, studentID string) ([]models.MembershipResponse, error) {
	var memberships []models.Membership
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&memberships).Error
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Membership")
	}

	responses := make([]models.MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		responses = append(responses, toMembershipResponse(&m))
	}
	return responses, nil
}

func toMembershipResponse(m *models.Membership) models.MembershipResponse {
	return models.MembershipResponse{
		StudentID: m.StudentID,
		ClubID:    m.ClubID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
