package dto

import "time"

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Head        string `json:"head" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Head        *string `json:"head" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type DepartmentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Head          string    `json:"head"`
	Description   string    `json:"description"`
	EmployeeCount int64     `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
