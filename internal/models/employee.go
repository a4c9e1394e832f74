package models

import "time"

type Employee struct {
	BaseModel
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	DepartmentID string         `gorm:"type:uuid;not null;index" json:"departmentId"`
	Position     string         `gorm:"not null" json:"position"`
	Salary       int64          `gorm:"not null" json:"salary"` // minor units
	Status       EmployeeStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	JoiningDate  time.Time      `gorm:"not null" json:"joiningDate"`
}
