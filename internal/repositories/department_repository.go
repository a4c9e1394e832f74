package repositories

import (
	"errors"

	"gorm.io/gorm"

	"prepvio_backend/internal/models"
)

var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department already exists")
)

type DepartmentRepository interface {
	Create(department *models.Department) error
	FindByID(id string) (*models.Department, error)
	FindAll() ([]models.Department, error)
	Update(department *models.Department) error
	// Delete removes the department only. Employees referencing it are
	// left in place with a dangling department_id.
	Delete(id string) error
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(department *models.Department) error {
	var count int64
	if err := r.db.Model(&models.Department{}).Where("name = ?", department.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDepartmentAlreadyExists
	}
	return r.db.Create(department).Error
}

func (r *departmentRepository) FindByID(id string) (*models.Department, error) {
	var department models.Department
	err := r.db.First(&department, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll() ([]models.Department, error) {
	var departments []models.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) Update(department *models.Department) error {
	result := r.db.Save(department)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepository) Delete(id string) error {
	result := r.db.Delete(&models.Department{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}
