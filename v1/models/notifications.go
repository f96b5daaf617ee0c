package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationMetadata is an opaque structured payload attached to a
// notification, stored as JSON
type NotificationMetadata map[string]interface{}

// Scan implements the sql.Scanner interface for NotificationMetadata
func (m *NotificationMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = NotificationMetadata{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into NotificationMetadata", value)
	}

	return json.Unmarshal(bytes, m)
}

// Value implements the driver.Valuer interface for NotificationMetadata
func (m NotificationMetadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDataType gorm common data type
func (NotificationMetadata) GormDataType() string {
	return "jsonb"
}

// GormValue implements the GormValuerInterface
func (m NotificationMetadata) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	if m == nil {
		m = NotificationMetadata{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		panic(fmt.Sprintf("Failed to marshal NotificationMetadata to JSON: %v", err))
	}

	if db.Dialector.Name() == "postgres" {
		return clause.Expr{SQL: "?::jsonb", Vars: []interface{}{string(data)}}
	}
	return clause.Expr{SQL: "?", Vars: []interface{}{string(data)}}
}

// Notification is a per-recipient message created by the fan-out process.
// Only the recipient mutates it, by marking it read.
type Notification struct {
	NotificationID string               `gorm:"primarykey;column:notification_id" json:"notificationId"`
	StudentID      string               `gorm:"column:student_id;not null;index" json:"studentId"`
	Title          string               `gorm:"column:title;not null" json:"title"`
	Message        string               `gorm:"column:message;not null" json:"message"`
	Type           string               `gorm:"column:type;not null;default:system" json:"type"`
	Metadata       NotificationMetadata `gorm:"column:metadata" json:"metadata"`
	Read           bool                 `gorm:"column:read;not null;default:false" json:"read"`
	BaseModel
}

// TableName sets the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NotificationResponse is the public projection of a notification
type NotificationResponse struct {
	NotificationID string               `json:"notificationId"`
	StudentID      string               `json:"studentId"`
	Title          string               `json:"title"`
	Message        string               `json:"message"`
	Type           string               `json:"type"`
	Metadata       NotificationMetadata `json:"metadata"`
	IsRead         bool                 `json:"isRead"`
	CreatedAt      string               `json:"createdAt"`
}

// UnreadCountResponse carries the unread notification count for a student
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
