package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

var inviteTokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// GenerateInviteToken mints a 256-bit cryptographically random token
// rendered as 64 lowercase hex characters
func GenerateInviteToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// IsValidTokenFormat reports whether token looks like a minted invite token
func IsValidTokenFormat(token string) bool {
	return inviteTokenPattern.MatchString(token)
}

// InviteService issues and resolves club invite tokens
type InviteService struct {
	db      *gorm.DB
	baseURL string
}

// NewInviteService creates a new invite service. baseURL is the public
// origin invite links are built against.
func NewInviteService(db *gorm.DB, baseURL string) *InviteService {
	return &InviteService{db: db, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// GetOrCreateInvite returns the club's invite link, minting the token on
// first call. Issuance is idempotent: every call for the same club returns
// the same token. A concurrent first call loses the insert race to the
// unique club_id constraint and falls back to reading the winner's row.
func (s *InviteService) GetOrCreateInvite(ctx context.Context, clubID string) (*models.InviteDetailsResponse, error) {
	var club models.Club
	if err := s.db.WithContext(ctx).First(&club, "club_id = ?", clubID).Error; err != nil {
		return nil, apierrors.HandleDatabaseError(err, "Club")
	}

	var invite models.InviteToken
	err := s.db.WithContext(ctx).First(&invite, "club_id = ?", clubID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		invite, err = s.createInvite(ctx, clubID)
	}
	if err != nil {
		return nil, apierrors.HandleDatabaseError(err, "InviteToken")
	}

	return &models.InviteDetailsResponse{
		InviteURL: s.baseURL + "/invites/" + invite.Token,
		Token:     invite.Token,
	}, nil
}

func (s *InviteService) createInvite(ctx context.Context, clubID string) (models.InviteToken, error) {
	token, err := GenerateInviteToken()
	if err != nil {
		return models.InviteToken{}, apierrors.InternalErrorWithCause("failed to mint invite token", err)
	}

	invite := models.InviteToken{
		TokenID: "inv_" + uuid.New().String(),
		ClubID:  clubID,
		Token:   token,
	}
	err = s.db.WithContext(ctx).Create(&invite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Another request minted the token first; use theirs
		var existing models.InviteToken
		if findErr := s.db.WithContext(ctx).First(&existing, "club_id = ?", clubID).Error; findErr != nil {
			return models.InviteToken{}, findErr
		}
		return existing, nil
	}
	if err != nil {
		return models.InviteToken{}, err
	}
	return invite, nil
}

// GetClubIDFromToken resolves an invite token to its club. It returns an
// empty string when the token does not exist; callers must surface the
// same generic error for a missing token and a missing club so that the
// lookup never leaks token existence. Malformed tokens skip the lookup
// and resolve the same way a missing token does.
func (s *InviteService) GetClubIDFromToken(ctx context.Context, token string) (string, error) {
	if !IsValidTokenFormat(token) {
		return "", nil
	}

	var invite models.InviteToken
	err := s.db.WithContext(ctx).First(&invite, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", apierrors.HandleDatabaseError(err, "InviteToken")
	}
	return invite.ClubID, nil
}
