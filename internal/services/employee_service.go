package services

import (
	"errors"
	"time"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type EmployeeService interface {
	Create(req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(id string) (*dto.EmployeeResponse, error)
	List(criteria repositories.EmployeeFilter) (*dto.EmployeeListResponse, error)
	Update(id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(id string) error
}

type employeeService struct {
	employees   repositories.EmployeeRepository
	departments repositories.DepartmentRepository
}

func NewEmployeeService(employees repositories.EmployeeRepository, departments repositories.DepartmentRepository) EmployeeService {
	return &employeeService{employees: employees, departments: departments}
}

func (s *employeeService) Create(req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	department, err := s.departments.FindByID(req.DepartmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.NewBadRequestError("department does not exist")
		}
		return nil, apperrors.InternalError(err)
	}

	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("joiningDate must be YYYY-MM-DD")
	}

	employee := &models.Employee{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: department.ID,
		Position:     req.Position,
		Salary:       req.Salary,
		Status:       models.EmployeeStatusActive,
		JoiningDate:  joiningDate,
	}
	if err := s.employees.Create(employee); err != nil {
		if errors.Is(err, repositories.ErrEmployeeAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := s.toResponse(employee)
	resp.Department = department.Name
	return resp, nil
}

func (s *employeeService) GetByID(id string) (*dto.EmployeeResponse, error) {
	employee, err := s.employees.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := s.toResponse(employee)
	if department, derr := s.departments.FindByID(employee.DepartmentID); derr == nil {
		resp.Department = department.Name
	}
	return resp, nil
}

func (s *employeeService) List(criteria repositories.EmployeeFilter) (*dto.EmployeeListResponse, error) {
	employees, total, err := s.employees.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Resolve department names in one pass.
	names := map[string]string{}
	if departments, derr := s.departments.FindAll(); derr == nil {
		for i := range departments {
			names[departments[i].ID] = departments[i].Name
		}
	}

	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		resp := s.toResponse(&employees[i])
		resp.Department = names[employees[i].DepartmentID]
		items = append(items, *resp)
	}
	return &dto.EmployeeListResponse{
		Employees: items,
		Total:     total,
		Page:      criteria.Page,
		PageSize:  criteria.PageSize,
	}, nil
}

func (s *employeeService) Update(id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.employees.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.DepartmentID != nil {
		if _, derr := s.departments.FindByID(*req.DepartmentID); derr != nil {
			return nil, apperrors.NewBadRequestError("department does not exist")
		}
		employee.DepartmentID = *req.DepartmentID
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}
	if req.Status != nil {
		employee.Status = models.EmployeeStatus(*req.Status)
	}

	if err := s.employees.Update(employee); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponse(employee), nil
}

func (s *employeeService) Delete(id string) error {
	if err := s.employees.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *employeeService) toResponse(e *models.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		Position:     e.Position,
		Salary:       e.Salary,
		Status:       string(e.Status),
		JoiningDate:  e.JoiningDate,
		CreatedAt:    e.CreatedAt,
	}
}
