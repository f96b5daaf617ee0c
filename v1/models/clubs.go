package models

// Club represents a student club
type Club struct {
	ClubID         string     `gorm:"primarykey;column:club_id" json:"clubId"`
	Name           string     `gorm:"column:name;not null" json:"name"`
	Description    *string    `gorm:"column:description" json:"description,omitempty"`
	Category       string     `gorm:"column:category;not null" json:"category"`
	CoverPhotoURL  *string    `gorm:"column:cover_photo_url" json:"coverPhotoUrl,omitempty"`
	AdminStudentID *string    `gorm:"column:admin_student_id" json:"adminStudentId,omitempty"`
	Status         ClubStatus `gorm:"column:status;not null;default:pending" json:"status"`
	BaseModel
}

// TableName sets the table name for GORM
func (Club) TableName() string {
	return "clubs"
}

// CreateClubRequest is the payload for creating a club
type CreateClubRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Category      string  `json:"category"`
	CoverPhotoURL *string `json:"coverPhotoUrl,omitempty"`
}

// UpdateClubRequest is the payload for updating club details
type UpdateClubRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	CoverPhotoURL *string `json:"coverPhotoUrl,omitempty"`
}

// ClubFilters narrows club listings
type ClubFilters struct {
	Category string
	Search   string
	Status   *ClubStatus
}

// Pagination carries page-based listing parameters
type Pagination struct {
	Page  int
	Limit int
}

// NextEvent is the upcoming-event summary embedded in a club detail response
type NextEvent struct {
	EventID   string `json:"eventId"`
	Title     string `json:"title"`
	EventDate string `json:"eventDate"`
	Location  string `json:"location"`
}

// ClubResponse is the detailed projection of a club
type ClubResponse struct {
	ClubID         string     `json:"clubId"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Category       string     `json:"category"`
	CoverPhotoURL  *string    `json:"coverPhotoUrl"`
	AdminStudentID *string    `json:"adminStudentId"`
	Status         ClubStatus `json:"status"`
	CreatedAt      string     `json:"createdAt"`
	MemberCount    int64      `json:"memberCount"`
	NextEvent      *NextEvent `json:"nextEvent,omitempty"`
}

// PendingClubResponse is the admin review projection of a club, enriched
// with the owning admin's contact details
type PendingClubResponse struct {
	ClubID         string     `json:"clubId"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Category       string     `json:"category"`
	CoverPhotoURL  *string    `json:"coverPhotoUrl"`
	AdminStudentID *string    `json:"adminStudentId"`
	Status         ClubStatus `json:"status"`
	CreatedAt      string     `json:"createdAt"`
	AdminName      string     `json:"adminName,omitempty"`
	AdminEmail     string     `json:"adminEmail,omitempty"`
}

// ClubDecisionRequest is the payload for the university-admin decision endpoint
type ClubDecisionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// PaginatedClubsResponse is the paginated club listing
type PaginatedClubsResponse struct {
	Items      []ClubResponse `json:"items"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
}
