package models

// Review is a student's one-time rating of a club. The unique
// (club_id, student_id) pair enforces at most one review per student;
// a second submission surfaces as a duplicate-key conflict.
type Review struct {
	ReviewID  string   `gorm:"primarykey;column:review_id" json:"reviewId"`
	ClubID    string   `gorm:"column:club_id;not null;uniqueIndex:idx_reviews_club_student" json:"clubId"`
	StudentID string   `gorm:"column:student_id;not null;uniqueIndex:idx_reviews_club_student" json:"studentId"`
	Rating    int      `gorm:"column:rating;not null" json:"rating"`
	Comment   *string  `gorm:"column:comment" json:"comment,omitempty"`
	Student   *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// CreateReviewRequest is the payload for reviewing a club
type CreateReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewStudent is the reviewer summary embedded in review responses
type ReviewStudent struct {
	StudentID string `json:"studentId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ReviewResponse is the public projection of a review
type ReviewResponse struct {
	ReviewID  string         `json:"reviewId"`
	Rating    int            `json:"rating"`
	Comment   *string        `json:"comment"`
	ClubID    string         `json:"clubId"`
	StudentID string         `json:"studentId"`
	CreatedAt string         `json:"createdAt"`
	Student   *ReviewStudent `json:"student,omitempty"`
}
