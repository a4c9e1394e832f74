package repositories

import (
	"errors"

	"gorm.io/gorm"

	"prepvio_backend/internal/models"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketFilter struct {
	UserID   string
	Status   models.TicketStatus
	Priority models.TicketPriority
	Page     int
	PageSize int
}

type TicketRepository interface {
	// Create persists the ticket together with its empty conversation.
	Create(ticket *models.Ticket) error
	FindByID(id string) (*models.Ticket, error)
	FindByNumber(number string) (*models.Ticket, error)
	FindWithFilter(criteria TicketFilter) ([]models.Ticket, int64, error)
	UpdateStatus(ticketID string, status models.TicketStatus) error
	AddMessage(message *models.Message) error
	Delete(id string) error
	CountByStatus(status models.TicketStatus) (int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ticket *models.Ticket) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		conversation := &models.Conversation{TicketID: ticket.ID}
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		ticket.Conversation = conversation
		return nil
	})
}

func (r *ticketRepository) FindByID(id string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.
		Preload("Conversation.Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Preload("Conversation").
		First(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByNumber(number string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Preload("Conversation.Messages").Preload("Conversation").
		First(&ticket, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) FindWithFilter(criteria TicketFilter) ([]models.Ticket, int64, error) {
	query := r.db.Model(&models.Ticket{})

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Priority != "" {
		query = query.Where("priority = ?", criteria.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var tickets []models.Ticket
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *ticketRepository) UpdateStatus(ticketID string, status models.TicketStatus) error {
	result := r.db.Model(&models.Ticket{}).Where("id = ?", ticketID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *ticketRepository) AddMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *ticketRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var conversation models.Conversation
		err := tx.First(&conversation, "ticket_id = ?", id).Error
		if err == nil {
			if err := tx.Delete(&models.Message{}, "conversation_id = ?", conversation.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&conversation).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		result := tx.Delete(&models.Ticket{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTicketNotFound
		}
		return nil
	})
}

func (r *ticketRepository) CountByStatus(status models.TicketStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
