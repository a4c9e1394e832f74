package models

// Department groups employees. There is no FK constraint from Employee:
// deleting a department leaves its employees orphaned, and the employee
// count is recomputed per read, never denormalized.
type Department struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Head        string `json:"head"`
	Description string `gorm:"type:text" json:"description"`
}
