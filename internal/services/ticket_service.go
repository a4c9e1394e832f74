package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"prepvio_backend/internal/email"
	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type TicketService interface {
	Create(userID string, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	GetByID(requesterID string, isAdmin bool, ticketID string) (*dto.TicketResponse, error)
	List(criteria repositories.TicketFilter) (*dto.TicketListResponse, error)
	// Reply appends a message and applies the asymmetric status shift:
	// an admin reply marks the ticket Replied; an owner reply reopens a
	// Closed ticket and otherwise leaves the status alone. Anyone who is
	// neither the owner nor an admin is rejected.
	Reply(requesterID string, isAdmin bool, ticketID string, req *dto.ReplyTicketRequest) (*dto.TicketResponse, error)
	// UpdateStatus sets any valid status. Transitions are unrestricted:
	// a Closed ticket can go straight back to In Progress.
	UpdateStatus(ticketID string, req *dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error)
	Delete(ticketID string) error
	Stats() (*dto.TicketStatsResponse, error)
}

type ticketService struct {
	tickets      repositories.TicketRepository
	users        repositories.UserRepository
	mail         email.Provider
	notification NotificationService
}

func NewTicketService(
	tickets repositories.TicketRepository,
	users repositories.UserRepository,
	mail email.Provider,
	notification NotificationService,
) TicketService {
	return &ticketService{
		tickets:      tickets,
		users:        users,
		mail:         mail,
		notification: notification,
	}
}

func (s *ticketService) Create(userID string, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	priority := models.TicketPriority(req.Priority)
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	ticket := &models.Ticket{
		Number:   generateTicketNumber(),
		UserID:   userID,
		Subject:  req.Subject,
		Priority: priority,
		Status:   models.TicketStatusOpen,
	}
	if err := s.tickets.Create(ticket); err != nil {
		return nil, apperrors.InternalError(err)
	}

	message := &models.Message{
		ConversationID: ticket.Conversation.ID,
		SenderID:       userID,
		Sender:         models.MessageSenderUser,
		Body:           req.Body,
	}
	if err := s.tickets.AddMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.load(ticket.ID)
}

func (s *ticketService) GetByID(requesterID string, isAdmin bool, ticketID string) (*dto.TicketResponse, error) {
	ticket, err := s.find(ticketID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ticket.UserID != requesterID {
		return nil, apperrors.ErrTicketAccessDenied
	}
	resp := toTicketResponse(ticket, true)
	return &resp, nil
}

func (s *ticketService) List(criteria repositories.TicketFilter) (*dto.TicketListResponse, error) {
	tickets, total, err := s.tickets.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, toTicketResponse(&tickets[i], false))
	}
	return &dto.TicketListResponse{
		Tickets:  items,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

func (s *ticketService) Reply(requesterID string, isAdmin bool, ticketID string, req *dto.ReplyTicketRequest) (*dto.TicketResponse, error) {
	ticket, err := s.find(ticketID)
	if err != nil {
		return nil, err
	}

	isOwner := ticket.UserID == requesterID
	if !isOwner && !isAdmin {
		return nil, apperrors.ErrTicketAccessDenied
	}

	sender := models.MessageSenderUser
	if isAdmin && !isOwner {
		sender = models.MessageSenderAdmin
	}

	message := &models.Message{
		ConversationID: ticket.Conversation.ID,
		SenderID:       requesterID,
		Sender:         sender,
		Body:           req.Body,
	}
	if err := s.tickets.AddMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Status shift depends on who replied, not on an explicit request.
	var next models.TicketStatus
	switch {
	case sender == models.MessageSenderAdmin:
		next = models.TicketStatusReplied
	case ticket.Status == models.TicketStatusClosed:
		next = models.TicketStatusOpen
	}
	if next != "" && next != ticket.Status {
		if err := s.tickets.UpdateStatus(ticket.ID, next); err != nil {
			return nil, apperrors.InternalError(err)
		}
		if sender == models.MessageSenderAdmin {
			s.notifyOwner(ticket, string(next))
		}
	}

	return s.load(ticket.ID)
}

func (s *ticketService) UpdateStatus(ticketID string, req *dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error) {
	ticket, err := s.find(ticketID)
	if err != nil {
		return nil, err
	}

	status := models.TicketStatus(req.Status)
	if status != ticket.Status {
		if err := s.tickets.UpdateStatus(ticket.ID, status); err != nil {
			return nil, apperrors.InternalError(err)
		}
		s.notifyOwner(ticket, string(status))
	}

	return s.load(ticket.ID)
}

func (s *ticketService) Delete(ticketID string) error {
	if err := s.tickets.Delete(ticketID); err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ticketService) Stats() (*dto.TicketStatsResponse, error) {
	stats := &dto.TicketStatsResponse{}
	counts := []struct {
		status models.TicketStatus
		target *int64
	}{
		{models.TicketStatusOpen, &stats.Open},
		{models.TicketStatusInProgress, &stats.InProgress},
		{models.TicketStatusReplied, &stats.Replied},
		{models.TicketStatusClosed, &stats.Closed},
	}
	for _, c := range counts {
		count, err := s.tickets.CountByStatus(c.status)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		*c.target = count
		stats.Total += count
	}
	return stats, nil
}

func (s *ticketService) find(ticketID string) (*models.Ticket, error) {
	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return ticket, nil
}

func (s *ticketService) load(ticketID string) (*dto.TicketResponse, error) {
	ticket, err := s.find(ticketID)
	if err != nil {
		return nil, err
	}
	resp := toTicketResponse(ticket, true)
	return &resp, nil
}

func (s *ticketService) notifyOwner(ticket *models.Ticket, status string) {
	if s.notification != nil {
		_ = s.notification.Notify(ticket.UserID, repositories.NotificationTypeTicketUpdate,
			"Ticket "+ticket.Number+" updated",
			"Your support ticket is now "+status+".",
			map[string]interface{}{"ticket_id": ticket.ID, "status": status})
	}
	if s.mail != nil && s.users != nil {
		if owner, err := s.users.FindByID(ticket.UserID); err == nil {
			if err := s.mail.SendTicketUpdate(owner.Email, ticket.Number, status); err != nil {
				logger.WithError(err).Warn("ticket update email failed", "ticket_id", ticket.ID)
			}
		}
	}
}

func generateTicketNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(0)
	}
	return fmt.Sprintf("TKT-%06d", n.Int64())
}

func toTicketResponse(t *models.Ticket, withMessages bool) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:        t.ID,
		Number:    t.Number,
		UserID:    t.UserID,
		Subject:   t.Subject,
		Priority:  string(t.Priority),
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if withMessages && t.Conversation != nil {
		for i := range t.Conversation.Messages {
			m := &t.Conversation.Messages[i]
			resp.Messages = append(resp.Messages, dto.MessageResponse{
				ID:        m.ID,
				SenderID:  m.SenderID,
				Sender:    string(m.Sender),
				Body:      m.Body,
				CreatedAt: m.CreatedAt,
			})
		}
	}
	return resp
}
