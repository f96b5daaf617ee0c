package models

// Message is a chat message posted on a club's board
type Message struct {
	MessageID string   `gorm:"primarykey;column:message_id" json:"messageId"`
	ClubID    string   `gorm:"column:club_id;not null;index" json:"clubId"`
	StudentID string   `gorm:"column:student_id;not null" json:"studentId"`
	Content   string   `gorm:"column:content;not null" json:"content"`
	Student   *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// SendMessageRequest is the payload for posting a club message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// MessageStudent is the author summary embedded in message responses
type MessageStudent struct {
	StudentID string `json:"studentId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// MessageResponse is the public projection of a club message
type MessageResponse struct {
	MessageID string          `json:"messageId"`
	Content   string          `json:"content"`
	ClubID    string          `json:"clubId"`
	StudentID string          `json:"studentId"`
	CreatedAt string          `json:"createdAt"`
	Student   *MessageStudent `json:"student,omitempty"`
}
