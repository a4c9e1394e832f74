package repositories

import (
	"errors"

	"gorm.io/gorm"

	"prepvio_backend/internal/models"
)

var (
	ErrCourseNotFound        = errors.New("course not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

type CourseFilter struct {
	CategoryID    string
	PublishedOnly bool
	Search        string
	Page          int
	PageSize      int
}

type CourseRepository interface {
	// Courses
	CreateCourse(course *models.Course) error
	FindCourseByID(id string) (*models.Course, error)
	FindCourses(criteria CourseFilter) ([]models.Course, int64, error)
	UpdateCourse(course *models.Course) error
	DeleteCourse(id string) error

	// Categories
	CreateCategory(category *models.Category) error
	FindCategoryByID(id string) (*models.Category, error)
	FindAllCategories() ([]models.Category, error)
	UpdateCategory(category *models.Category) error
	// DeleteCategory does not touch courses referencing the category.
	DeleteCategory(id string) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) CreateCourse(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindCourseByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindCourses(criteria CourseFilter) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{})

	if criteria.CategoryID != "" {
		query = query.Where("category_id = ?", criteria.CategoryID)
	}
	if criteria.PublishedOnly {
		query = query.Where("is_published = true")
	}
	if criteria.Search != "" {
		query = query.Where("title ILIKE ?", "%"+criteria.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepository) UpdateCourse(course *models.Course) error {
	result := r.db.Save(course)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) DeleteCourse(id string) error {
	result := r.db.Delete(&models.Course{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) CreateCategory(category *models.Category) error {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("name = ?", category.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryAlreadyExists
	}
	return r.db.Create(category).Error
}

func (r *courseRepository) FindCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *courseRepository) FindAllCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *courseRepository) UpdateCategory(category *models.Category) error {
	result := r.db.Save(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *courseRepository) DeleteCategory(id string) error {
	result := r.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
