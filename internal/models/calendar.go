package models

import "time"

type CalendarEvent struct {
	BaseModel
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartsAt    time.Time `gorm:"not null;index" json:"startsAt"`
	EndsAt      time.Time `gorm:"not null" json:"endsAt"`
	AllDay      bool      `gorm:"default:false" json:"allDay"`
	Color       string    `gorm:"type:varchar(20)" json:"color"`
	CreatedBy   string    `gorm:"type:uuid;not null" json:"createdBy"`
}
