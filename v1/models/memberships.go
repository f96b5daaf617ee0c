package models

// Membership represents the relationship between a student and a club.
// The composite primary key enforces at most one row per pair; concurrent
// duplicate join requests are serialized by this constraint.
type Membership struct {
	StudentID string           `gorm:"primarykey;column:student_id" json:"studentId"`
	ClubID    string           `gorm:"primarykey;column:club_id" json:"clubId"`
	Status    MembershipStatus `gorm:"column:status;not null;default:pending" json:"status"`
	Student   *Student         `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Membership) TableName() string {
	return "memberships"
}

// MembershipResponse is the public projection of a membership
type MembershipResponse struct {
	StudentID string           `json:"studentId"`
	ClubID    string           `json:"clubId"`
	Status    MembershipStatus `json:"status"`
	CreatedAt string           `json:"createdAt"`
}

// MemberResponse is a membership enriched with the student's details
type MemberResponse struct {
	StudentID string           `json:"studentId"`
	ClubID    string           `json:"clubId"`
	Status    MembershipStatus `json:"status"`
	CreatedAt string           `json:"createdAt"`
	Student   StudentResponse  `json:"student"`
}

// DecideMembershipRequest is the payload for the club-admin decision endpoint
type DecideMembershipRequest struct {
	Status MembershipStatus `json:"status"`
}

// AddMemberRequest is the payload for a join request made on behalf of a student
type AddMemberRequest struct {
	StudentID string `json:"studentId"`
}
