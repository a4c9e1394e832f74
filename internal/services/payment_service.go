package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/payment"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type PaymentService interface {
	CreateOrder(userID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	// ProcessWebhook applies a gateway notification. Replays of an
	// already-settled order are acknowledged without side effects.
	ProcessWebhook(notification *payment.WebhookNotification) error
	ListUserPayments(userID string) ([]dto.PaymentResponse, error)
	GetSubscription(userID string) (*dto.SubscriptionResponse, error)
	ListPlans() ([]dto.PlanResponse, error)
}

type paymentService struct {
	payments     repositories.PaymentRepository
	users        repositories.UserRepository
	gateway      payment.Gateway
	notification NotificationService
}

func NewPaymentService(
	payments repositories.PaymentRepository,
	users repositories.UserRepository,
	gateway payment.Gateway,
	notification NotificationService,
) PaymentService {
	return &paymentService{
		payments:     payments,
		users:        users,
		gateway:      gateway,
		notification: notification,
	}
}

func (s *paymentService) CreateOrder(userID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	plan, err := s.payments.FindPlanByCode(req.PlanCode)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.NewBadRequestError("unknown plan")
		}
		return nil, apperrors.InternalError(err)
	}
	if plan.Price <= 0 {
		return nil, apperrors.NewBadRequestError("plan is not purchasable")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	orderID := fmt.Sprintf("PV-%s", uuid.NewString())
	record := &models.Payment{
		UserID:   userID,
		OrderID:  orderID,
		PlanID:   plan.ID,
		Amount:   plan.Price,
		Currency: plan.Currency,
		Status:   models.PaymentStatusPending,
	}
	if err := s.payments.CreatePayment(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	order, err := s.gateway.CreateOrder(orderID, plan.Price, user.Name, user.Email, plan.Name+" plan")
	if err != nil {
		logger.WithError(err).Error("gateway order creation failed", "order_id", orderID)
		if ferr := s.payments.MarkFailed(record.ID); ferr != nil {
			logger.WithError(ferr).Error("failed to mark payment failed", "payment_id", record.ID)
		}
		return nil, apperrors.ErrPaymentGateway.WithError(err)
	}

	return &dto.OrderResponse{
		OrderID:     orderID,
		Token:       order.Token,
		RedirectURL: order.RedirectURL,
		Amount:      plan.Price,
		Currency:    plan.Currency,
	}, nil
}

func (s *paymentService) ProcessWebhook(notification *payment.WebhookNotification) error {
	if !s.gateway.VerifySignature(notification.OrderID, notification.StatusCode,
		notification.GrossAmount, notification.SignatureKey) {
		return apperrors.ErrInvalidPaymentSignature
	}

	record, err := s.payments.FindByOrderID(notification.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	// Idempotent: the gateway retries notifications.
	if record.Status == models.PaymentStatusSuccess {
		return nil
	}

	switch {
	case notification.Settled():
		now := time.Now()
		if err := s.payments.MarkPaid(record.ID, now); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.activateSubscription(record, now); err != nil {
			return err
		}
		if s.notification != nil {
			_ = s.notification.Notify(record.UserID, repositories.NotificationTypePaymentSuccess,
				"Payment received",
				"Your subscription is active. Happy practicing!",
				map[string]interface{}{"order_id": record.OrderID})
		}
	case notification.Failed():
		if err := s.payments.MarkFailed(record.ID); err != nil {
			return apperrors.InternalError(err)
		}
	default:
		// Pending and other intermediate states change nothing.
		logger.Debug("ignoring intermediate payment state",
			"order_id", notification.OrderID, "state", notification.TransactionStatus)
	}
	return nil
}

// activateSubscription upserts the user's single subscription row from
// the paid plan.
func (s *paymentService) activateSubscription(record *models.Payment, paidAt time.Time) error {
	var plan *models.Plan
	plans, err := s.payments.FindActivePlans()
	if err != nil {
		return apperrors.InternalError(err)
	}
	for i := range plans {
		if plans[i].ID == record.PlanID {
			plan = &plans[i]
			break
		}
	}
	if plan == nil {
		return apperrors.InternalError(errors.New("paid plan not in catalog"))
	}

	sub, err := s.payments.FindSubscriptionByUser(record.UserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return apperrors.InternalError(err)
		}
		sub = &models.Subscription{UserID: record.UserID}
	}

	end := paidAt.AddDate(0, 0, plan.DurationDays)
	sub.PlanID = plan.ID
	sub.IsActive = true
	sub.StartDate = &paidAt
	sub.EndDate = &end
	sub.InterviewCredits = plan.InterviewCredits
	sub.InterviewsUsed = 0

	if err := s.payments.SaveSubscription(sub); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *paymentService) ListUserPayments(userID string) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.FindUserPayments(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		items = append(items, dto.PaymentResponse{
			ID:        p.ID,
			OrderID:   p.OrderID,
			PlanID:    p.PlanID,
			Amount:    p.Amount,
			Currency:  p.Currency,
			Status:    string(p.Status),
			PaidAt:    p.PaidAt,
			CreatedAt: p.CreatedAt,
		})
	}
	return items, nil
}

func (s *paymentService) GetSubscription(userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.payments.FindSubscriptionByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoActiveSubscription
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.SubscriptionResponse{
		PlanID:           sub.PlanID,
		IsActive:         sub.IsActive,
		EndDate:          sub.EndDate,
		InterviewCredits: sub.InterviewCredits,
		InterviewsUsed:   sub.InterviewsUsed,
		CreditsLeft:      sub.CreditsLeft(),
	}
	if sub.StartDate != nil {
		resp.StartDate = *sub.StartDate
	}
	if plans, perr := s.payments.FindActivePlans(); perr == nil {
		for i := range plans {
			if plans[i].ID == sub.PlanID {
				resp.PlanCode = plans[i].Code
				break
			}
		}
	}
	return resp, nil
}

func (s *paymentService) ListPlans() ([]dto.PlanResponse, error) {
	plans, err := s.payments.FindActivePlans()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		p := &plans[i]
		items = append(items, dto.PlanResponse{
			ID:               p.ID,
			Code:             p.Code,
			Name:             p.Name,
			Price:            p.Price,
			Currency:         p.Currency,
			DurationDays:     p.DurationDays,
			InterviewCredits: p.InterviewCredits,
		})
	}
	return items, nil
}
