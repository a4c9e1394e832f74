package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/sandbox"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type fakeInterviewRepo struct {
	sessions map[string]*models.InterviewSession
	nextID   int
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{sessions: map[string]*models.InterviewSession{}}
}

func (f *fakeInterviewRepo) Create(session *models.InterviewSession) error {
	f.nextID++
	session.ID = fmt.Sprintf("sess-%d", f.nextID)
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeInterviewRepo) FindByID(id string) (*models.InterviewSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repositories.ErrInterviewNotFound
	}
	return s, nil
}

func (f *fakeInterviewRepo) FindWithFilter(criteria repositories.InterviewFilter) ([]models.InterviewSession, int64, error) {
	var out []models.InterviewSession
	for _, s := range f.sessions {
		if criteria.UserID != "" && s.UserID != criteria.UserID {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInterviewRepo) UpdateStatus(sessionID string, status models.InterviewStatus) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return repositories.ErrInterviewNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeInterviewRepo) Complete(sessionID string, score *float64, at time.Time) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return repositories.ErrInterviewNotFound
	}
	s.Status = models.InterviewStatusCompleted
	s.Score = score
	s.CompletedAt = &at
	return nil
}

func (f *fakeInterviewRepo) SetReportURL(sessionID, url string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return repositories.ErrInterviewNotFound
	}
	s.ReportURL = url
	return nil
}

func (f *fakeInterviewRepo) AppendTranscript(entries []models.TranscriptEntry) error {
	for _, e := range entries {
		s, ok := f.sessions[e.SessionID]
		if !ok {
			return repositories.ErrInterviewNotFound
		}
		s.Transcript = append(s.Transcript, e)
	}
	return nil
}

func (f *fakeInterviewRepo) NextTranscriptOrdinal(sessionID string) (int, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return 0, repositories.ErrInterviewNotFound
	}
	max := 0
	for _, e := range s.Transcript {
		if e.Ordinal > max {
			max = e.Ordinal
		}
	}
	return max + 1, nil
}

func (f *fakeInterviewRepo) AddProblem(problem *models.SolvedProblem) error {
	s, ok := f.sessions[problem.SessionID]
	if !ok {
		return repositories.ErrInterviewNotFound
	}
	s.Problems = append(s.Problems, *problem)
	return nil
}

func (f *fakeInterviewRepo) AddHighlight(highlight *models.Highlight) error {
	s, ok := f.sessions[highlight.SessionID]
	if !ok {
		return repositories.ErrInterviewNotFound
	}
	s.Highlights = append(s.Highlights, *highlight)
	return nil
}

// fakePaymentRepo keeps subscriptions, plans and payments in memory.
type fakePaymentRepo struct {
	payments      map[string]*models.Payment
	subscriptions map[string]*models.Subscription
	plans         []models.Plan
	nextID        int
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments:      map[string]*models.Payment{},
		subscriptions: map[string]*models.Subscription{},
	}
}

func (f *fakePaymentRepo) id() string {
	f.nextID++
	return fmt.Sprintf("pay-%d", f.nextID)
}

func (f *fakePaymentRepo) CreatePayment(payment *models.Payment) error {
	payment.ID = f.id()
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByOrderID(orderID string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentRepo) FindUserPayments(userID string) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) MarkPaid(paymentID string, at time.Time) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	p.Status = models.PaymentStatusSuccess
	p.PaidAt = &at
	return nil
}

func (f *fakePaymentRepo) MarkFailed(paymentID string) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	p.Status = models.PaymentStatusFailed
	return nil
}

func (f *fakePaymentRepo) FindSubscriptionByUser(userID string) (*models.Subscription, error) {
	s, ok := f.subscriptions[userID]
	if !ok {
		return nil, repositories.ErrSubscriptionNotFound
	}
	return s, nil
}

func (f *fakePaymentRepo) SaveSubscription(subscription *models.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = f.id()
	}
	f.subscriptions[subscription.UserID] = subscription
	return nil
}

func (f *fakePaymentRepo) ConsumeInterviewCredit(userID string) error {
	s, ok := f.subscriptions[userID]
	if !ok || !s.IsActive || s.InterviewsUsed >= s.InterviewCredits {
		return repositories.ErrSubscriptionNotFound
	}
	s.InterviewsUsed++
	return nil
}

func (f *fakePaymentRepo) CountActiveSubscriptions() (int64, error) {
	var n int64
	for _, s := range f.subscriptions {
		if s.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakePaymentRepo) ExpireSubscriptions(now time.Time) (int64, error) {
	var n int64
	for _, s := range f.subscriptions {
		if s.IsActive && s.EndDate != nil && s.EndDate.Before(now) {
			s.IsActive = false
			n++
		}
	}
	return n, nil
}

func (f *fakePaymentRepo) FindPlanByCode(code string) (*models.Plan, error) {
	for i := range f.plans {
		if f.plans[i].Code == code {
			return &f.plans[i], nil
		}
	}
	return nil, repositories.ErrPlanNotFound
}

func (f *fakePaymentRepo) FindActivePlans() ([]models.Plan, error) {
	return f.plans, nil
}

func (f *fakePaymentRepo) SeedPlans(plans []models.Plan) error {
	for i := range plans {
		if plans[i].ID == "" {
			plans[i].ID = f.id()
		}
		f.plans = append(f.plans, plans[i])
	}
	return nil
}

func (f *fakePaymentRepo) TotalRevenue() (int64, error) {
	var total int64
	for _, p := range f.payments {
		if p.Status == models.PaymentStatusSuccess {
			total += p.Amount
		}
	}
	return total, nil
}

func (f *fakePaymentRepo) PayingUsersCount() (int64, error) {
	seen := map[string]bool{}
	for _, p := range f.payments {
		if p.Status == models.PaymentStatusSuccess {
			seen[p.UserID] = true
		}
	}
	return int64(len(seen)), nil
}

func (f *fakePaymentRepo) MonthlyRevenue() ([]repositories.MonthlyRevenueRow, error) {
	return nil, nil
}

func (f *fakePaymentRepo) PlanMix() ([]repositories.PlanMixRow, error) {
	return nil, nil
}

func activeSubscription(userID string, credits, used int) *models.Subscription {
	now := time.Now()
	end := now.AddDate(0, 1, 0)
	return &models.Subscription{
		UserID:           userID,
		IsActive:         true,
		StartDate:        &now,
		EndDate:          &end,
		InterviewCredits: credits,
		InterviewsUsed:   used,
	}
}

func TestInterviewStart_ConsumesCredit(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 2, 0)))

	svc := NewInterviewService(interviews, payments, nil, nil)

	resp, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "System Design"})
	require.NoError(t, err)

	assert.Equal(t, string(models.InterviewStatusStarted), resp.Status)
	assert.Equal(t, 1, payments.subscriptions["user-1"].InterviewsUsed)
}

func TestInterviewStart_NoSubscription(t *testing.T) {
	svc := NewInterviewService(newFakeInterviewRepo(), newFakePaymentRepo(), nil, nil)

	_, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "System Design"})
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSubscription)
}

func TestInterviewStart_NoCreditsLeft(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 1, 1)))

	svc := NewInterviewService(interviews, payments, nil, nil)

	_, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "System Design"})
	assert.ErrorIs(t, err, apperrors.ErrNoInterviewCredits)
}

func TestInterviewTranscript_OrdinalsAndStatus(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 5, 0)))

	svc := NewInterviewService(interviews, payments, nil, nil)
	started, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "Go"})
	require.NoError(t, err)

	require.NoError(t, svc.AppendTranscript("user-1", started.ID, &dto.AppendTranscriptRequest{Speaker: "ai", Text: "First question"}))
	require.NoError(t, svc.AppendTranscript("user-1", started.ID, &dto.AppendTranscriptRequest{Speaker: "user", Text: "Answer"}))

	session := interviews.sessions[started.ID]
	require.Len(t, session.Transcript, 2)
	assert.Equal(t, 1, session.Transcript[0].Ordinal)
	assert.Equal(t, 2, session.Transcript[1].Ordinal)
	assert.Equal(t, models.InterviewStatusInProgress, session.Status)
}

func TestInterviewComplete_SetsScore(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 5, 0)))

	svc := NewInterviewService(interviews, payments, nil, nil)
	started, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "Go"})
	require.NoError(t, err)

	resp, err := svc.Complete("user-1", started.ID, &dto.CompleteInterviewRequest{Score: 82.5})
	require.NoError(t, err)

	assert.Equal(t, string(models.InterviewStatusCompleted), resp.Status)
	require.NotNil(t, resp.Score)
	assert.Equal(t, 82.5, *resp.Score)

	// Completing twice is rejected.
	_, err = svc.Complete("user-1", started.ID, &dto.CompleteInterviewRequest{Score: 90})
	require.Error(t, err)
}

func TestInterviewAccess_StrangerRejected(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 5, 0)))

	svc := NewInterviewService(interviews, payments, nil, nil)
	started, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "Go"})
	require.NoError(t, err)

	_, err = svc.GetByID("intruder", false, started.ID)
	require.Error(t, err)

	err = svc.AppendTranscript("intruder", started.ID, &dto.AppendTranscriptRequest{Speaker: "user", Text: "hi"})
	require.Error(t, err)
}

// fakeRunner returns a canned verdict for every submission.
type fakeRunner struct {
	verdict string
	calls   int
}

func (f *fakeRunner) Execute(ctx context.Context, language, code, stdin string) (*sandbox.Result, error) {
	f.calls++
	return &sandbox.Result{Verdict: f.verdict}, nil
}

func TestInterviewAddProblem_SandboxVerdict(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 5, 0)))

	runner := &fakeRunner{verdict: "accepted"}
	svc := NewInterviewService(interviews, payments, nil, runner)
	started, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "Go"})
	require.NoError(t, err)

	err = svc.AddProblem(context.Background(), "user-1", started.ID, &dto.AddProblemRequest{
		Title:    "Two Sum",
		Language: "go",
		Code:     "package main",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)

	session := interviews.sessions[started.ID]
	require.Len(t, session.Problems, 1)
	assert.Equal(t, "accepted", session.Problems[0].Verdict)
}

func TestInterviewAddProblem_ClientVerdictKept(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 5, 0)))

	runner := &fakeRunner{verdict: "accepted"}
	svc := NewInterviewService(interviews, payments, nil, runner)
	started, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "Go"})
	require.NoError(t, err)

	err = svc.AddProblem(context.Background(), "user-1", started.ID, &dto.AddProblemRequest{
		Title:   "Two Sum",
		Verdict: "wrong_answer",
	})
	require.NoError(t, err)

	// A verdict supplied with the submission skips the sandbox.
	assert.Equal(t, 0, runner.calls)
	assert.Equal(t, "wrong_answer", interviews.sessions[started.ID].Problems[0].Verdict)
}

func TestInterviewAddHighlight(t *testing.T) {
	interviews := newFakeInterviewRepo()
	payments := newFakePaymentRepo()
	require.NoError(t, payments.SaveSubscription(activeSubscription("user-1", 5, 0)))

	svc := NewInterviewService(interviews, payments, nil, nil)
	started, err := svc.Start("user-1", &dto.StartInterviewRequest{Topic: "Go"})
	require.NoError(t, err)

	err = svc.AddHighlight("user-1", started.ID, &dto.AddHighlightRequest{
		Label:    "Strong closing answer",
		StartSec: 120,
		EndSec:   180,
	})
	require.NoError(t, err)
	require.Len(t, interviews.sessions[started.ID].Highlights, 1)
}
