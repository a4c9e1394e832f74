package services

import (
	"errors"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type CourseService interface {
	CreateCourse(req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(id string) (*dto.CourseResponse, error)
	ListCourses(criteria repositories.CourseFilter) (*dto.CourseListResponse, error)
	UpdateCourse(id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(id string) error

	CreateCategory(req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories() ([]dto.CategoryResponse, error)
	UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(id string) error
}

type courseService struct {
	courses repositories.CourseRepository
}

func NewCourseService(courses repositories.CourseRepository) CourseService {
	return &courseService{courses: courses}
}

func (s *courseService) CreateCourse(req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	category, err := s.courses.FindCategoryByID(req.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.NewBadRequestError("category does not exist")
		}
		return nil, apperrors.InternalError(err)
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  category.ID,
		Price:       req.Price,
		Duration:    req.Duration,
		Level:       req.Level,
		IsPublished: req.IsPublished,
	}
	if err := s.courses.CreateCourse(course); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toCourseResponse(course)
	resp.Category = category.Name
	return &resp, nil
}

func (s *courseService) GetCourse(id string) (*dto.CourseResponse, error) {
	course, err := s.courses.FindCourseByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toCourseResponse(course)
	if category, cerr := s.courses.FindCategoryByID(course.CategoryID); cerr == nil {
		resp.Category = category.Name
	}
	return &resp, nil
}

func (s *courseService) ListCourses(criteria repositories.CourseFilter) (*dto.CourseListResponse, error) {
	courses, total, err := s.courses.FindCourses(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	names := map[string]string{}
	if categories, cerr := s.courses.FindAllCategories(); cerr == nil {
		for i := range categories {
			names[categories[i].ID] = categories[i].Name
		}
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resp := toCourseResponse(&courses[i])
		resp.Category = names[courses[i].CategoryID]
		items = append(items, resp)
	}
	return &dto.CourseListResponse{
		Courses:  items,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

func (s *courseService) UpdateCourse(id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courses.FindCourseByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, cerr := s.courses.FindCategoryByID(*req.CategoryID); cerr != nil {
			return nil, apperrors.NewBadRequestError("category does not exist")
		}
		course.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.courses.UpdateCourse(course); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) DeleteCourse(id string) error {
	if err := s.courses.DeleteCourse(id); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *courseService) CreateCategory(req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.courses.CreateCategory(category); err != nil {
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := s.toCategoryResponse(category)
	return &resp, nil
}

func (s *courseService) ListCategories() ([]dto.CategoryResponse, error) {
	categories, err := s.courses.FindAllCategories()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, s.toCategoryResponse(&categories[i]))
	}
	return items, nil
}

func (s *courseService) UpdateCategory(id string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.courses.FindCategoryByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.courses.UpdateCategory(category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := s.toCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory leaves courses referencing the category untouched.
func (s *courseService) DeleteCategory(id string) error {
	if err := s.courses.DeleteCategory(id); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *courseService) toCategoryResponse(c *models.Category) dto.CategoryResponse {
	count := int64(0)
	if _, total, err := s.courses.FindCourses(repositories.CourseFilter{CategoryID: c.ID}); err == nil {
		count = total
	}
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CourseCount: count,
		CreatedAt:   c.CreatedAt,
	}
}

func toCourseResponse(c *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CategoryID:  c.CategoryID,
		Price:       c.Price,
		Duration:    c.Duration,
		Level:       c.Level,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
	}
}
