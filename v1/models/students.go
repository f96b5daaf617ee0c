package models

// Student represents a registered student
type Student struct {
	StudentID string      `gorm:"primarykey;column:student_id" json:"studentId"`
	Email     string      `gorm:"column:email;not null;unique" json:"email"`
	FirstName string      `gorm:"column:first_name;not null" json:"firstName"`
	LastName  string      `gorm:"column:last_name;not null" json:"lastName"`
	Role      StudentRole `gorm:"column:role;not null;default:student" json:"role"`
	BaseModel
}

// TableName sets the table name for GORM
func (Student) TableName() string {
	return "students"
}

// StudentResponse is the public projection of a student
type StudentResponse struct {
	StudentID string      `json:"studentId"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      StudentRole `json:"role"`
}

// UpdateStudentRequest carries the mutable profile fields
type UpdateStudentRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}
