package services

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

// Publisher pushes a real-time event to a connected user. The websocket
// hub implements it; tests inject a recording fake. A nil-safe no-op is
// available via NopPublisher for setups without a hub.
type Publisher interface {
	Publish(userID string, event string, payload interface{})
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, interface{}) {}

type NotificationService interface {
	Create(req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	Notify(userID, notifType, title, message string, data map[string]interface{}) error
	List(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	UnreadCount(userID string) (int64, error)
	Delete(userID, notificationID string) error
}

type notificationService struct {
	repo      repositories.NotificationRepository
	publisher Publisher
}

func NewNotificationService(repo repositories.NotificationRepository, publisher Publisher) NotificationService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &notificationService{repo: repo, publisher: publisher}
}

func (s *notificationService) Create(req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	notification, err := s.store(req.UserID, req.Type, req.Title, req.Message, req.Data)
	if err != nil {
		return nil, err
	}
	resp := toNotificationResponse(notification)
	return &resp, nil
}

// Notify is the internal trigger used by other services: persist first,
// then push. A push failure never fails the caller.
func (s *notificationService) Notify(userID, notifType, title, message string, data map[string]interface{}) error {
	notification, err := s.store(userID, notifType, title, message, data)
	if err != nil {
		return err
	}
	s.publisher.Publish(userID, "notification", toNotificationResponse(notification))
	return nil
}

func (s *notificationService) store(userID, notifType, title, message string, data map[string]interface{}) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		notification.Data = datatypes.JSON(raw)
	}
	if err := s.repo.Create(notification); err != nil {
		logger.WithError(err).Error("failed to create notification", "user_id", userID, "type", notifType)
		return nil, apperrors.InternalError(err)
	}
	return notification, nil
}

func (s *notificationService) List(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.repo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.repo.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, toNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
		Total:         total,
	}, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	notification, err := s.repo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if notification.UserID != userID {
		return apperrors.NewForbiddenError("notification belongs to another user")
	}
	if err := s.repo.MarkAsRead(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.repo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) UnreadCount(userID string) (int64, error) {
	count, err := s.repo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) Delete(userID, notificationID string) error {
	notification, err := s.repo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if notification.UserID != userID {
		return apperrors.NewForbiddenError("notification belongs to another user")
	}
	if err := s.repo.Delete(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toNotificationResponse(n *models.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(n.Data, &data); err == nil {
			resp.Data = data
		}
	}
	return resp
}
