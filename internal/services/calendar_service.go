package services

import (
	"errors"
	"time"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type CalendarService interface {
	Create(createdBy string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetByID(id string) (*dto.EventResponse, error)
	ListRange(from, to time.Time) ([]dto.EventResponse, error)
	Update(id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(id string) error
}

type calendarService struct {
	events repositories.CalendarRepository
}

func NewCalendarService(events repositories.CalendarRepository) CalendarService {
	return &calendarService{events: events}
}

func (s *calendarService) Create(createdBy string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewBadRequestError("endsAt must be after startsAt")
	}

	event := &models.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		AllDay:      req.AllDay,
		Color:       req.Color,
		CreatedBy:   createdBy,
	}
	if err := s.events.Create(event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := toEventResponse(event)
	return &resp, nil
}

func (s *calendarService) GetByID(id string) (*dto.EventResponse, error) {
	event, err := s.find(id)
	if err != nil {
		return nil, err
	}
	resp := toEventResponse(event)
	return &resp, nil
}

func (s *calendarService) ListRange(from, to time.Time) ([]dto.EventResponse, error) {
	events, err := s.events.FindInRange(from, to)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, toEventResponse(&events[i]))
	}
	return items, nil
}

func (s *calendarService) Update(id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.Color != nil {
		event.Color = *req.Color
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, apperrors.NewBadRequestError("endsAt must be after startsAt")
	}

	if err := s.events.Update(event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := toEventResponse(event)
	return &resp, nil
}

func (s *calendarService) Delete(id string) error {
	if err := s.events.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *calendarService) find(id string) (*models.CalendarEvent, error) {
	event, err := s.events.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

func toEventResponse(e *models.CalendarEvent) dto.EventResponse {
	return dto.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		AllDay:      e.AllDay,
		Color:       e.Color,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
