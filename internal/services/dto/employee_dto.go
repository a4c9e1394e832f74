package dto

import "time"

type CreateEmployeeRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	DepartmentID string `json:"departmentId" validate:"required,uuid"`
	Position     string `json:"position" validate:"required,max=100"`
	Salary       int64  `json:"salary" validate:"gte=0"`
	JoiningDate  string `json:"joiningDate" validate:"required"`
}

type UpdateEmployeeRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email        *string `json:"email" validate:"omitempty,email"`
	DepartmentID *string `json:"departmentId" validate:"omitempty,uuid"`
	Position     *string `json:"position" validate:"omitempty,max=100"`
	Salary       *int64  `json:"salary" validate:"omitempty,gte=0"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DepartmentID string    `json:"departmentId"`
	Department   string    `json:"department,omitempty"`
	Position     string    `json:"position"`
	Salary       int64     `json:"salary"`
	Status       string    `json:"status"`
	JoiningDate  time.Time `json:"joiningDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type EmployeeListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"pageSize"`
}
