package models

import "time"

// InviteToken is a club's shareable join credential. One token exists per
// club (get-or-create semantics); it is immutable once minted and removed
// only when its club is deleted.
//
// ExpiresAt, MaxUses and UsesCount are persisted for schema compatibility
// with the original store but are not enforced by the engine.
type InviteToken struct {
	TokenID   string     `gorm:"primarykey;column:token_id" json:"tokenId"`
	ClubID    string     `gorm:"column:club_id;not null;unique" json:"clubId"`
	Token     string     `gorm:"column:token;not null;unique" json:"token"`
	ExpiresAt *time.Time `gorm:"column:expires_at" json:"expiresAt,omitempty"`
	MaxUses   *int       `gorm:"column:max_uses" json:"maxUses,omitempty"`
	UsesCount int        `gorm:"column:uses_count;not null;default:0" json:"usesCount"`
	BaseModel
}

// TableName sets the table name for GORM
func (InviteToken) TableName() string {
	return "invite_tokens"
}

// InviteDetailsResponse is returned by the get-or-create invite endpoint
type InviteDetailsResponse struct {
	InviteURL string `json:"inviteUrl"`
	Token     string `json:"token"`
}
