package services

import (
	"errors"
	"time"

	"prepvio_backend/internal/auth"
	"prepvio_backend/internal/config"
	"prepvio_backend/internal/email"
	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	// Login authenticates against the given audience. Admin-audience
	// logins require the admin role.
	Login(req *dto.LoginRequest, audience string) (*dto.AuthResponse, error)
	ChangePassword(userID string, req *dto.ChangePasswordRequest) error
	GetProfile(userID string) (*dto.UserResponse, error)
}

type authService struct {
	users        repositories.UserRepository
	payments     repositories.PaymentRepository
	mail         email.Provider
	notification NotificationService
}

func NewAuthService(
	users repositories.UserRepository,
	payments repositories.PaymentRepository,
	mail email.Provider,
	notification NotificationService,
) AuthService {
	return &authService{
		users:        users,
		payments:     payments,
		mail:         mail,
		notification: notification,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// New accounts start on the free plan.
	if plan, planErr := s.payments.FindPlanByCode(models.PlanCodeFree); planErr == nil {
		now := time.Now()
		end := now.AddDate(0, 0, plan.DurationDays)
		sub := &models.Subscription{
			UserID:           user.ID,
			PlanID:           plan.ID,
			IsActive:         true,
			StartDate:        &now,
			EndDate:          &end,
			InterviewCredits: plan.InterviewCredits,
		}
		if err := s.payments.SaveSubscription(sub); err != nil {
			logger.WithError(err).Error("failed to seed free subscription", "user_id", user.ID)
		}
	}

	if s.mail != nil {
		if err := s.mail.SendWelcome(user.Email, user.Name); err != nil {
			logger.WithError(err).Warn("welcome email failed", "user_id", user.ID)
		}
	}
	if s.notification != nil {
		_ = s.notification.Notify(user.ID, repositories.NotificationTypeWelcome,
			"Welcome to PrepVio", "Your account is ready. Start your first mock interview!", nil)
	}

	token, err := s.issueToken(user, auth.AudienceUser)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) Login(req *dto.LoginRequest, audience string) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrUserSuspended
	}
	if audience == auth.AudienceAdmin && user.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if err := s.users.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.WithError(err).Warn("failed to record last login", "user_id", user.ID)
	}

	token, err := s.issueToken(user, audience)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) ChangePassword(userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) GetProfile(userID string) (*dto.UserResponse, error) {
	if userID == auth.AdminSubject {
		// Built-in admin identity, never present in the users table.
		return &dto.UserResponse{
			ID:     auth.AdminSubject,
			Name:   "Administrator",
			Email:  "admin@prepvio.local",
			Role:   string(models.UserRoleAdmin),
			Status: string(models.UserStatusActive),
		}, nil
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) issueToken(user *models.User, audience string) (string, error) {
	cfg := config.GetConfig()
	token, err := auth.GenerateToken(user.ID, user.Role, audience, cfg.JWT.Secret,
		time.Duration(cfg.JWT.TTL)*time.Minute)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return token, nil
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
