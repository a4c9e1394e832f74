package dto

import "time"

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CourseCount int64     `json:"courseCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=2000"`
	CategoryID  string `json:"categoryId" validate:"required,uuid"`
	Price       int64  `json:"price" validate:"gte=0"`
	Duration    int    `json:"duration" validate:"gte=0"`
	Level       string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	IsPublished bool   `json:"isPublished"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	CategoryID  *string `json:"categoryId" validate:"omitempty,uuid"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
	Level       *string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	IsPublished *bool   `json:"isPublished"`
}

type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Category    string    `json:"category,omitempty"`
	Price       int64     `json:"price"`
	Duration    int       `json:"duration"`
	Level       string    `json:"level"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CourseListResponse struct {
	Courses  []CourseResponse `json:"courses"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}
