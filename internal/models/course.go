package models

type Category struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

type Course struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CategoryID  string `gorm:"type:uuid;index" json:"categoryId"`
	Price       int64  `json:"price"` // minor units
	Duration    int    `json:"duration"` // minutes
	Level       string `gorm:"type:varchar(20)" json:"level"` // beginner, intermediate, advanced
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
}
