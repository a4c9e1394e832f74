package services

import (
	"errors"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type DepartmentService interface {
	Create(req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetByID(id string) (*dto.DepartmentResponse, error)
	List() ([]dto.DepartmentResponse, error)
	Update(id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(id string) error
}

type departmentService struct {
	departments repositories.DepartmentRepository
	employees   repositories.EmployeeRepository
}

func NewDepartmentService(departments repositories.DepartmentRepository, employees repositories.EmployeeRepository) DepartmentService {
	return &departmentService{departments: departments, employees: employees}
}

func (s *departmentService) Create(req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department := &models.Department{
		Name:        req.Name,
		Head:        req.Head,
		Description: req.Description,
	}
	if err := s.departments.Create(department); err != nil {
		if errors.Is(err, repositories.ErrDepartmentAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(department), nil
}

func (s *departmentService) GetByID(id string) (*dto.DepartmentResponse, error) {
	department, err := s.departments.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(department), nil
}

func (s *departmentService) List() ([]dto.DepartmentResponse, error) {
	departments, err := s.departments.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		items = append(items, *s.toResponse(&departments[i]))
	}
	return items, nil
}

func (s *departmentService) Update(id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := s.departments.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.Head != nil {
		department.Head = *req.Head
	}
	if req.Description != nil {
		department.Description = *req.Description
	}

	if err := s.departments.Update(department); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(department), nil
}

// Delete removes only the department row. Employees keep their
// department_id and must be reassigned explicitly.
func (s *departmentService) Delete(id string) error {
	if err := s.departments.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// toResponse recomputes the employee count on every read instead of
// keeping a stored counter.
func (s *departmentService) toResponse(d *models.Department) *dto.DepartmentResponse {
	count, err := s.employees.CountByDepartment(d.ID)
	if err != nil {
		count = 0
	}
	return &dto.DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Head:          d.Head,
		Description:   d.Description,
		EmployeeCount: count,
		CreatedAt:     d.CreatedAt,
	}
}
