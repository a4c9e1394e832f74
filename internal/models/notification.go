package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"userId"`
	Type    string         `gorm:"not null" json:"type"` // "welcome", "ticket_update", "payment_success", "achievement"
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"ticket_id": "...", "order_id": "..."}
	IsRead  bool           `gorm:"default:false;index" json:"isRead"`
	ReadAt  *time.Time     `json:"readAt,omitempty"`
}
