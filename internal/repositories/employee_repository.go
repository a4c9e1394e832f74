package repositories

import (
	"errors"

	"gorm.io/gorm"

	"prepvio_backend/internal/models"
)

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeAlreadyExists = errors.New("employee already exists")
)

type EmployeeFilter struct {
	DepartmentID string
	Status       models.EmployeeStatus
	Search       string
	Page         int
	PageSize     int
}

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	FindByID(id string) (*models.Employee, error)
	FindWithFilter(criteria EmployeeFilter) ([]models.Employee, int64, error)
	Update(employee *models.Employee) error
	Delete(id string) error
	CountByDepartment(departmentID string) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(employee *models.Employee) error {
	var count int64
	if err := r.db.Model(&models.Employee{}).Where("email = ?", employee.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmployeeAlreadyExists
	}
	return r.db.Create(employee).Error
}

func (r *employeeRepository) FindByID(id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindWithFilter(criteria EmployeeFilter) ([]models.Employee, int64, error) {
	query := r.db.Model(&models.Employee{})

	if criteria.DepartmentID != "" {
		query = query.Where("department_id = ?", criteria.DepartmentID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR position ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var employees []models.Employee
	if err := query.Order("created_at DESC").Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepository) Update(employee *models.Employee) error {
	result := r.db.Save(employee)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) Delete(id string) error {
	result := r.db.Delete(&models.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) CountByDepartment(departmentID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).Where("department_id = ?", departmentID).Count(&count).Error
	return count, err
}
