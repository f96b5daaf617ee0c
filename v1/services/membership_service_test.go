package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

func TestRequestJoin_Success(t *testing.T) {
	// Arrange
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	// Act
	result, err := service.RequestJoin(context.Background(), club.ClubID, student.StudentID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.MembershipStatusPending, result.Status)
	assert.Equal(t, student.StudentID, result.StudentID)
	assert.Equal(t, club.ClubID, result.ClubID)
}

func TestRequestJoin_ClubNotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	result, err := service.RequestJoin(context.Background(), "club_missing", student.StudentID)

	assert.Error(t, err)
	assert.Nil(t, result)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNotFound, apiErr.Type)
}

func TestRequestJoin_ConflictOnExistingMembership(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	// Any existing row conflicts, even a rejected one
	for _, status := range []models.MembershipStatus{
		models.MembershipStatusPending,
		models.MembershipStatusActive,
		models.MembershipStatusRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			CleanupTestData(t, db)
			admin = CreateTestStudent(t, db, models.RoleClubAdmin)
			club = CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
			student = CreateTestStudent(t, db, models.RoleStudent)
			CreateTestMembership(t, db, student.StudentID, club.ClubID, status)

			result, err := service.RequestJoin(context.Background(), club.ClubID, student.StudentID)

			assert.Error(t, err)
			assert.Nil(t, result)
			apiErr := apierrors.GetAPIError(err)
			assert.NotNil(t, apiErr)
			assert.Equal(t, apierrors.ErrorTypeConflict, apiErr.Type)
		})
	}
}

func TestRequestJoin_DuplicateRequestsOnlyOneSucceeds(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))
	ctx := context.Background()

	first, firstErr := service.RequestJoin(ctx, club.ClubID, student.StudentID)
	second, secondErr := service.RequestJoin(ctx, club.ClubID, student.StudentID)

	assert.NoError(t, firstErr)
	assert.NotNil(t, first)
	assert.Error(t, secondErr)
	assert.Nil(t, second)

	var count int64
	db.Model(&models.Membership{}).
		Where("student_id = ? AND club_id = ?", student.StudentID, club.ClubID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDecideMembership_Approve(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, student.StudentID, club.ClubID, models.MembershipStatusPending)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	result, err := service.DecideMembership(context.Background(), club.ClubID, student.StudentID, models.MembershipStatusActive)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.MembershipStatusActive, result.Status)
}

func TestDecideMembership_InvalidDecision(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	for _, decision := range []models.MembershipStatus{models.MembershipStatusPending, "banned", ""} {
		result, err := service.DecideMembership(context.Background(), "club_x", "stu_x", decision)

		assert.Error(t, err)
		assert.Nil(t, result)
		apiErr := apierrors.GetAPIError(err)
		assert.NotNil(t, apiErr)
		assert.Equal(t, apierrors.ErrorTypeValidation, apiErr.Type)
	}
}

func TestDecideMembership_NotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	result, err := service.DecideMembership(context.Background(), "club_x", "stu_x", models.MembershipStatusRejected)

	assert.Error(t, err)
	assert.Nil(t, result)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNotFound, apiErr.Type)
}

func TestLeaveOrRemove_SelfLeave(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, student.StudentID, club.ClubID, models.MembershipStatusActive)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	err := service.LeaveOrRemove(context.Background(), club.ClubID, student.StudentID, student.StudentID)

	assert.NoError(t, err)
	var count int64
	db.Model(&models.Membership{}).Where("club_id = ?", club.ClubID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLeaveOrRemove_ClubAdminRemovesMember(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, student.StudentID, club.ClubID, models.MembershipStatusPending)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	err := service.LeaveOrRemove(context.Background(), club.ClubID, student.StudentID, admin.StudentID)

	assert.NoError(t, err)
}

func TestLeaveOrRemove_UnauthorizedActor(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)
	bystander := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, student.StudentID, club.ClubID, models.MembershipStatusActive)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	err := service.LeaveOrRemove(context.Background(), club.ClubID, student.StudentID, bystander.StudentID)

	assert.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeAuthorization, apiErr.Type)

	var count int64
	db.Model(&models.Membership{}).Where("club_id = ?", club.ClubID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestJoinViaInvite_BecomesActiveMember(t *testing.T) {
	// Arrange
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)

	inviteService := NewInviteService(db, "http://localhost:3000")
	service := NewMembershipService(db, inviteService)
	ctx := context.Background()

	invite, err := inviteService.GetOrCreateInvite(ctx, club.ClubID)
	assert.NoError(t, err)

	// Act
	result, err := service.JoinViaInvite(ctx, invite.Token, student.StudentID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.MembershipStatusActive, result.Status)
}

func TestJoinViaInvite_SecondRedemptionConflicts(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)

	inviteService := NewInviteService(db, "http://localhost:3000")
	service := NewMembershipService(db, inviteService)
	ctx := context.Background()

	invite, err := inviteService.GetOrCreateInvite(ctx, club.ClubID)
	assert.NoError(t, err)

	_, err = service.JoinViaInvite(ctx, invite.Token, student.StudentID)
	assert.NoError(t, err)

	result, err := service.JoinViaInvite(ctx, invite.Token, student.StudentID)

	assert.Error(t, err)
	assert.Nil(t, result)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeConflict, apiErr.Type)
}

func TestJoinViaInvite_UnknownToken(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	student := CreateTestStudent(t, db, models.RoleStudent)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	result, err := service.JoinViaInvite(context.Background(), "deadbeef", student.StudentID)

	assert.Error(t, err)
	assert.Nil(t, result)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeNotFound, apiErr.Type)
}

func TestGetMembers_WithStatusFilter(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	active := CreateTestStudent(t, db, models.RoleStudent)
	pending := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, active.StudentID, club.ClubID, models.MembershipStatusActive)
	CreateTestMembership(t, db, pending.StudentID, club.ClubID, models.MembershipStatusPending)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))
	ctx := context.Background()

	all, err := service.GetMembers(ctx, club.ClubID, "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := service.GetMembers(ctx, club.ClubID, models.MembershipStatusActive)
	assert.NoError(t, err)
	assert.Len(t, activeOnly, 1)
	assert.Equal(t, active.StudentID, activeOnly[0].StudentID)
	assert.Equal(t, active.Email, activeOnly[0].Student.Email)
}

func TestGetMembers_InvalidStatusFilter(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	club := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	result, err := service.GetMembers(context.Background(), club.ClubID, "banned")

	assert.Error(t, err)
	assert.Nil(t, result)
	apiErr := apierrors.GetAPIError(err)
	assert.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeValidation, apiErr.Type)
}

func TestGetStudentMemberships(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	admin := CreateTestStudent(t, db, models.RoleClubAdmin)
	clubA := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	clubB := CreateTestClub(t, db, admin.StudentID, models.ClubStatusApproved)
	student := CreateTestStudent(t, db, models.RoleStudent)
	CreateTestMembership(t, db, student.StudentID, clubA.ClubID, models.MembershipStatusActive)
	CreateTestMembership(t, db, student.StudentID, clubB.ClubID, models.MembershipStatusPending)

	service := NewMembershipService(db, NewInviteService(db, "http://localhost:3000"))

	result, err := service.GetStudentMemberships(context.Background(), student.StudentID)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}
