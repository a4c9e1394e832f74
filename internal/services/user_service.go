package services

import (
	"errors"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

// UserService is the admin-side user management surface.
type UserService interface {
	List(criteria repositories.UserFilter) ([]dto.UserResponse, int64, error)
	GetByID(id string) (*dto.UserResponse, error)
	Suspend(id string) error
	Activate(id string) error
	Delete(id string) error
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(criteria repositories.UserFilter) ([]dto.UserResponse, int64, error) {
	users, total, err := s.users.FindWithFilter(criteria)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	return items, total, nil
}

func (s *userService) GetByID(id string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Suspend(id string) error {
	return s.setStatus(id, models.UserStatusSuspended)
}

func (s *userService) Activate(id string) error {
	return s.setStatus(id, models.UserStatusActive)
}

func (s *userService) setStatus(id string, status models.UserStatus) error {
	if err := s.users.UpdateStatus(id, status); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) Delete(id string) error {
	if err := s.users.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
