package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"prepvio_backend/internal/models"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// MonthlyRevenueRow is one (year, month) bucket of settled revenue,
// in minor currency units.
type MonthlyRevenueRow struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Total int64 `json:"total"`
}

// PlanMixRow is the settled-payment breakdown for one plan.
type PlanMixRow struct {
	PlanID   string `json:"planId"`
	Payments int64  `json:"payments"`
	Total    int64  `json:"total"`
}

type PaymentRepository interface {
	// Payments
	CreatePayment(payment *models.Payment) error
	FindByOrderID(orderID string) (*models.Payment, error)
	FindUserPayments(userID string) ([]models.Payment, error)
	MarkPaid(paymentID string, at time.Time) error
	MarkFailed(paymentID string) error

	// Subscriptions
	FindSubscriptionByUser(userID string) (*models.Subscription, error)
	SaveSubscription(subscription *models.Subscription) error
	ConsumeInterviewCredit(userID string) error
	CountActiveSubscriptions() (int64, error)
	ExpireSubscriptions(now time.Time) (int64, error)

	// Plans
	FindPlanByCode(code string) (*models.Plan, error)
	FindActivePlans() ([]models.Plan, error)
	SeedPlans(plans []models.Plan) error

	// Revenue aggregation. All sums consider only payments with
	// status = "success"; amounts stay in minor units.
	TotalRevenue() (int64, error)
	PayingUsersCount() (int64, error)
	MonthlyRevenue() ([]MonthlyRevenueRow, error)
	PlanMix() ([]PlanMixRow, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) FindByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindUserPayments(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) MarkPaid(paymentID string, at time.Time) error {
	result := r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(map[string]interface{}{
		"status":  models.PaymentStatusSuccess,
		"paid_at": at,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *paymentRepository) MarkFailed(paymentID string) error {
	result := r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Update("status", models.PaymentStatusFailed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *paymentRepository) FindSubscriptionByUser(userID string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := r.db.First(&subscription, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *paymentRepository) SaveSubscription(subscription *models.Subscription) error {
	return r.db.Save(subscription).Error
}

func (r *paymentRepository) ConsumeInterviewCredit(userID string) error {
	result := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND is_active = true AND interviews_used < interview_credits", userID).
		Update("interviews_used", gorm.Expr("interviews_used + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (r *paymentRepository) CountActiveSubscriptions() (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).Where("is_active = true").Count(&count).Error
	return count, err
}

func (r *paymentRepository) ExpireSubscriptions(now time.Time) (int64, error) {
	result := r.db.Model(&models.Subscription{}).
		Where("is_active = true AND end_date IS NOT NULL AND end_date < ?", now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *paymentRepository) FindPlanByCode(code string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.First(&plan, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *paymentRepository) FindActivePlans() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = true").Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *paymentRepository) SeedPlans(plans []models.Plan) error {
	for i := range plans {
		var count int64
		if err := r.db.Model(&models.Plan{}).Where("code = ?", plans[i].Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := r.db.Create(&plans[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *paymentRepository) TotalRevenue() (int64, error) {
	var total int64
	err := r.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusSuccess).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *paymentRepository) PayingUsersCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusSuccess).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *paymentRepository) MonthlyRevenue() ([]MonthlyRevenueRow, error) {
	var rows []MonthlyRevenueRow
	err := r.db.Model(&models.Payment{}).
		Select("EXTRACT(YEAR FROM paid_at)::int AS year, EXTRACT(MONTH FROM paid_at)::int AS month, SUM(amount) AS total").
		Where("status = ? AND paid_at IS NOT NULL", models.PaymentStatusSuccess).
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *paymentRepository) PlanMix() ([]PlanMixRow, error) {
	var rows []PlanMixRow
	err := r.db.Model(&models.Payment{}).
		Select("plan_id, COUNT(*) AS payments, SUM(amount) AS total").
		Where("status = ?", models.PaymentStatusSuccess).
		Group("plan_id").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}
