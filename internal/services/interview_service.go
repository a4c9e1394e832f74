package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/sandbox"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type InterviewService interface {
	// Start consumes one interview credit and opens a session.
	Start(userID string, req *dto.StartInterviewRequest) (*dto.InterviewResponse, error)
	GetByID(requesterID string, isAdmin bool, sessionID string) (*dto.InterviewResponse, error)
	List(criteria repositories.InterviewFilter) (*dto.InterviewListResponse, error)
	AppendTranscript(requesterID string, sessionID string, req *dto.AppendTranscriptRequest) error
	AddProblem(ctx context.Context, requesterID string, sessionID string, req *dto.AddProblemRequest) error
	AddHighlight(requesterID string, sessionID string, req *dto.AddHighlightRequest) error
	Complete(requesterID string, sessionID string, req *dto.CompleteInterviewRequest) (*dto.InterviewResponse, error)
	Abandon(requesterID string, sessionID string) error
}

type interviewService struct {
	interviews   repositories.InterviewRepository
	payments     repositories.PaymentRepository
	notification NotificationService
	runner       sandbox.Runner
}

func NewInterviewService(
	interviews repositories.InterviewRepository,
	payments repositories.PaymentRepository,
	notification NotificationService,
	runner sandbox.Runner,
) InterviewService {
	if runner == nil {
		runner = sandbox.NopRunner{}
	}
	return &interviewService{
		interviews:   interviews,
		payments:     payments,
		notification: notification,
		runner:       runner,
	}
}

func (s *interviewService) Start(userID string, req *dto.StartInterviewRequest) (*dto.InterviewResponse, error) {
	sub, err := s.payments.FindSubscriptionByUser(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoActiveSubscription
		}
		return nil, apperrors.InternalError(err)
	}
	if !sub.IsActive {
		return nil, apperrors.ErrNoActiveSubscription
	}

	// The guarded UPDATE is the actual gate: two concurrent starts on
	// the last credit race and only one wins.
	if err := s.payments.ConsumeInterviewCredit(userID); err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoInterviewCredits
		}
		return nil, apperrors.InternalError(err)
	}

	session := &models.InterviewSession{
		UserID:    userID,
		Topic:     req.Topic,
		Position:  req.Position,
		Status:    models.InterviewStatusStarted,
		StartedAt: time.Now(),
	}
	if err := s.interviews.Create(session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toInterviewResponse(session, false)
	return &resp, nil
}

func (s *interviewService) GetByID(requesterID string, isAdmin bool, sessionID string) (*dto.InterviewResponse, error) {
	session, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && session.UserID != requesterID {
		return nil, apperrors.NewForbiddenError("interview belongs to another user")
	}
	resp := toInterviewResponse(session, true)
	return &resp, nil
}

func (s *interviewService) List(criteria repositories.InterviewFilter) (*dto.InterviewListResponse, error) {
	sessions, total, err := s.interviews.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.InterviewResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, toInterviewResponse(&sessions[i], false))
	}
	return &dto.InterviewListResponse{
		Interviews: items,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
	}, nil
}

func (s *interviewService) AppendTranscript(requesterID string, sessionID string, req *dto.AppendTranscriptRequest) error {
	session, err := s.findOpenOwned(requesterID, sessionID)
	if err != nil {
		return err
	}

	ordinal, err := s.interviews.NextTranscriptOrdinal(sessionID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	entry := models.TranscriptEntry{
		SessionID:  sessionID,
		Speaker:    req.Speaker,
		Text:       req.Text,
		IsFeedback: req.IsFeedback,
		Ordinal:    ordinal,
	}
	if err := s.interviews.AppendTranscript([]models.TranscriptEntry{entry}); err != nil {
		return apperrors.InternalError(err)
	}

	if session.Status == models.InterviewStatusStarted {
		if err := s.interviews.UpdateStatus(sessionID, models.InterviewStatusInProgress); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *interviewService) AddProblem(ctx context.Context, requesterID string, sessionID string, req *dto.AddProblemRequest) error {
	session, err := s.findOpenOwned(requesterID, sessionID)
	if err != nil {
		return err
	}

	verdict := req.Verdict
	if verdict == "" && req.Code != "" {
		result, err := s.runner.Execute(ctx, req.Language, req.Code, "")
		if err != nil {
			return apperrors.ErrCodeExecution.WithError(err)
		}
		if result != nil {
			verdict = result.Verdict
		}
	}

	problem := &models.SolvedProblem{
		SessionID:  session.ID,
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Language:   req.Language,
		Code:       req.Code,
		Verdict:    verdict,
	}
	if len(req.Meta) > 0 {
		raw, err := json.Marshal(req.Meta)
		if err != nil {
			return apperrors.NewBadRequestError("invalid problem metadata")
		}
		problem.Meta = datatypes.JSON(raw)
	}
	if err := s.interviews.AddProblem(problem); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *interviewService) AddHighlight(requesterID string, sessionID string, req *dto.AddHighlightRequest) error {
	session, err := s.findOpenOwned(requesterID, sessionID)
	if err != nil {
		return err
	}

	highlight := &models.Highlight{
		SessionID: session.ID,
		Label:     req.Label,
		ClipURL:   req.ClipURL,
		StartSec:  req.StartSec,
		EndSec:    req.EndSec,
	}
	if err := s.interviews.AddHighlight(highlight); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// findOpenOwned loads a session and rejects strangers and finished sessions.
func (s *interviewService) findOpenOwned(requesterID string, sessionID string) (*models.InterviewSession, error) {
	session, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != requesterID {
		return nil, apperrors.NewForbiddenError("interview belongs to another user")
	}
	if session.Status == models.InterviewStatusCompleted || session.Status == models.InterviewStatusAbandoned {
		return nil, apperrors.ErrInvalidStatus("interview", "session is already finished")
	}
	return session, nil
}

func (s *interviewService) Complete(requesterID string, sessionID string, req *dto.CompleteInterviewRequest) (*dto.InterviewResponse, error) {
	session, err := s.find(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != requesterID {
		return nil, apperrors.NewForbiddenError("interview belongs to another user")
	}
	if session.Status == models.InterviewStatusCompleted {
		return nil, apperrors.ErrInvalidStatus("interview", "session is already completed")
	}

	score := req.Score
	if err := s.interviews.Complete(sessionID, &score, time.Now()); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.notification != nil {
		_ = s.notification.Notify(session.UserID, repositories.NotificationTypeAchievement,
			"Interview completed",
			"Your mock interview on "+session.Topic+" is done. The report will be ready shortly.",
			map[string]interface{}{"session_id": sessionID})
	}

	return s.GetByID(requesterID, true, sessionID)
}

func (s *interviewService) Abandon(requesterID string, sessionID string) error {
	session, err := s.find(sessionID)
	if err != nil {
		return err
	}
	if session.UserID != requesterID {
		return apperrors.NewForbiddenError("interview belongs to another user")
	}
	if session.Status == models.InterviewStatusCompleted {
		return apperrors.ErrInvalidStatus("interview", "session is already completed")
	}
	if err := s.interviews.UpdateStatus(sessionID, models.InterviewStatusAbandoned); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *interviewService) find(sessionID string) (*models.InterviewSession, error) {
	session, err := s.interviews.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return session, nil
}

func toInterviewResponse(s *models.InterviewSession, withTranscript bool) dto.InterviewResponse {
	resp := dto.InterviewResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Topic:       s.Topic,
		Position:    s.Position,
		Status:      string(s.Status),
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
		Score:       s.Score,
		ReportURL:   s.ReportURL,
	}
	if withTranscript {
		for i := range s.Problems {
			p := &s.Problems[i]
			resp.Problems = append(resp.Problems, dto.SolvedProblemResponse{
				ID:         p.ID,
				Title:      p.Title,
				Difficulty: p.Difficulty,
				Language:   p.Language,
				Verdict:    p.Verdict,
			})
		}
		for i := range s.Highlights {
			h := &s.Highlights[i]
			resp.Highlights = append(resp.Highlights, dto.HighlightResponse{
				ID:       h.ID,
				Label:    h.Label,
				ClipURL:  h.ClipURL,
				StartSec: h.StartSec,
				EndSec:   h.EndSec,
			})
		}
		for i := range s.Transcript {
			e := &s.Transcript[i]
			resp.Transcript = append(resp.Transcript, dto.TranscriptEntryResponse{
				ID:         e.ID,
				Speaker:    e.Speaker,
				Text:       e.Text,
				IsFeedback: e.IsFeedback,
				Ordinal:    e.Ordinal,
				CreatedAt:  e.CreatedAt,
			})
		}
	}
	return resp
}
