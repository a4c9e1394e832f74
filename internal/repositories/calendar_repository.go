package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"prepvio_backend/internal/models"
)

var ErrEventNotFound = errors.New("calendar event not found")

type CalendarRepository interface {
	Create(event *models.CalendarEvent) error
	FindByID(id string) (*models.CalendarEvent, error)
	FindInRange(from, to time.Time) ([]models.CalendarEvent, error)
	Update(event *models.CalendarEvent) error
	Delete(id string) error
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(event *models.CalendarEvent) error {
	return r.db.Create(event).Error
}

func (r *calendarRepository) FindByID(id string) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	err := r.db.First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *calendarRepository) FindInRange(from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	query := r.db.Model(&models.CalendarEvent{})
	if !from.IsZero() {
		query = query.Where("ends_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("starts_at <= ?", to)
	}
	err := query.Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *calendarRepository) Update(event *models.CalendarEvent) error {
	result := r.db.Save(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *calendarRepository) Delete(id string) error {
	result := r.db.Delete(&models.CalendarEvent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
