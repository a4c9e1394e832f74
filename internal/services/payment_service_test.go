package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/payment"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(userID string, at time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (f *fakeUserRepo) Delete(userID string) error {
	if _, ok := f.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) FindWithFilter(criteria repositories.UserFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) CountAll() (int64, error) {
	return int64(len(f.users)), nil
}

// fakeGateway accepts any signature equal to "valid".
type fakeGateway struct {
	failCreate bool
	created    []string
}

func (f *fakeGateway) CreateOrder(orderID string, amount int64, name, email, desc string) (*payment.Order, error) {
	if f.failCreate {
		return nil, errors.New("gateway unavailable")
	}
	f.created = append(f.created, orderID)
	return &payment.Order{OrderID: orderID, Token: "tok", RedirectURL: "https://pay.example/" + orderID}, nil
}

func (f *fakeGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return signature == "valid"
}

func newPaymentFixture(t *testing.T) (PaymentService, *fakePaymentRepo, *fakeUserRepo, *fakeGateway, string) {
	t.Helper()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SeedPlans(models.DefaultPlans))

	users := newFakeUserRepo()
	buyer := &models.User{Name: "Dana", Email: "dana@prepvio.app"}
	require.NoError(t, users.Create(buyer))

	gateway := &fakeGateway{}
	svc := NewPaymentService(payments, users, gateway, nil)
	return svc, payments, users, gateway, buyer.ID
}

func TestCreateOrder(t *testing.T) {
	svc, payments, _, gateway, buyerID := newPaymentFixture(t)

	resp, err := svc.CreateOrder(buyerID, &dto.CreateOrderRequest{PlanCode: models.PlanCodeStarter})
	require.NoError(t, err)

	assert.Equal(t, int64(99900), resp.Amount)
	assert.NotEmpty(t, resp.Token)
	assert.Len(t, gateway.created, 1)

	stored, err := payments.FindByOrderID(resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
}

func TestCreateOrder_FreePlanRejected(t *testing.T) {
	svc, _, _, _, buyerID := newPaymentFixture(t)

	_, err := svc.CreateOrder(buyerID, &dto.CreateOrderRequest{PlanCode: models.PlanCodeFree})
	require.Error(t, err)
}

func TestCreateOrder_GatewayFailureMarksFailed(t *testing.T) {
	svc, payments, _, gateway, buyerID := newPaymentFixture(t)
	gateway.failCreate = true

	_, err := svc.CreateOrder(buyerID, &dto.CreateOrderRequest{PlanCode: models.PlanCodePro})
	require.Error(t, err)

	for _, p := range payments.payments {
		assert.Equal(t, models.PaymentStatusFailed, p.Status)
	}
}

func TestProcessWebhook_SettlementActivatesSubscription(t *testing.T) {
	svc, payments, _, _, buyerID := newPaymentFixture(t)
	order, err := svc.CreateOrder(buyerID, &dto.CreateOrderRequest{PlanCode: models.PlanCodeStarter})
	require.NoError(t, err)

	notification := &payment.WebhookNotification{
		OrderID:           order.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "999.00",
		SignatureKey:      "valid",
	}
	require.NoError(t, svc.ProcessWebhook(notification))

	stored, err := payments.FindByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, stored.Status)

	sub, err := payments.FindSubscriptionByUser(buyerID)
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	assert.Equal(t, 10, sub.InterviewCredits)
	assert.Equal(t, 0, sub.InterviewsUsed)

	// Replays are acknowledged without another activation.
	sub.InterviewsUsed = 3
	require.NoError(t, svc.ProcessWebhook(notification))
	assert.Equal(t, 3, sub.InterviewsUsed)
}

func TestProcessWebhook_BadSignatureRejected(t *testing.T) {
	svc, _, _, _, buyerID := newPaymentFixture(t)
	order, err := svc.CreateOrder(buyerID, &dto.CreateOrderRequest{PlanCode: models.PlanCodeStarter})
	require.NoError(t, err)

	err = svc.ProcessWebhook(&payment.WebhookNotification{
		OrderID:           order.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "999.00",
		SignatureKey:      "forged",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentSignature)
}

func TestProcessWebhook_FailureMarksFailed(t *testing.T) {
	svc, payments, _, _, buyerID := newPaymentFixture(t)
	order, err := svc.CreateOrder(buyerID, &dto.CreateOrderRequest{PlanCode: models.PlanCodeStarter})
	require.NoError(t, err)

	require.NoError(t, svc.ProcessWebhook(&payment.WebhookNotification{
		OrderID:           order.OrderID,
		TransactionStatus: "expire",
		StatusCode:        "407",
		GrossAmount:       "999.00",
		SignatureKey:      "valid",
	}))

	stored, err := payments.FindByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)

	_, err = payments.FindSubscriptionByUser(buyerID)
	assert.ErrorIs(t, err, repositories.ErrSubscriptionNotFound)
}

func TestProcessWebhook_UnknownOrder(t *testing.T) {
	svc, _, _, _, _ := newPaymentFixture(t)

	err := svc.ProcessWebhook(&payment.WebhookNotification{
		OrderID:           "PV-missing",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "999.00",
		SignatureKey:      "valid",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
