package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/report"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/internal/storage"
	"prepvio_backend/pkg/apperrors"
)

type ReportService interface {
	// Generate renders the session transcript into a PDF, stores it and
	// records the URL on the session. Only completed sessions get a
	// report; regenerating overwrites the previous file.
	Generate(ctx context.Context, sessionID string) (*dto.ReportResponse, error)
}

type reportService struct {
	interviews repositories.InterviewRepository
	users      repositories.UserRepository
	renderer   *report.Renderer
	files      storage.Storage
}

func NewReportService(
	interviews repositories.InterviewRepository,
	users repositories.UserRepository,
	renderer *report.Renderer,
	files storage.Storage,
) ReportService {
	return &reportService{
		interviews: interviews,
		users:      users,
		renderer:   renderer,
		files:      files,
	}
}

func (s *reportService) Generate(ctx context.Context, sessionID string) (*dto.ReportResponse, error) {
	session, err := s.interviews.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if session.Status != models.InterviewStatusCompleted {
		return nil, apperrors.ErrInterviewNotCompleted
	}

	candidate := "Candidate"
	if user, uerr := s.users.FindByID(session.UserID); uerr == nil {
		candidate = user.Name
	}

	completedAt := time.Now()
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	meta := report.Meta{
		Title:       "Interview Report",
		Candidate:   candidate,
		Topic:       session.Topic,
		CompletedAt: completedAt,
	}
	pdf, err := s.renderer.Render(meta, BuildTranscriptText(session.Transcript))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	path := fmt.Sprintf("reports/%s.pdf", session.ID)
	if err := s.files.Save(ctx, path, bytes.NewReader(pdf), "application/pdf"); err != nil {
		logger.WithError(err).Error("failed to store report", "session_id", session.ID)
		return nil, apperrors.InternalError(err)
	}
	url, err := s.files.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.interviews.SetReportURL(session.ID, url); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ReportResponse{SessionID: session.ID, ReportURL: url}, nil
}

// BuildTranscriptText flattens stored transcript entries into the line
// format the renderer classifies: speaker prefixes for dialogue, a
// bracket prefix for feedback, blank lines between entries.
func BuildTranscriptText(entries []models.TranscriptEntry) string {
	var sb strings.Builder
	for i := range entries {
		e := &entries[i]
		switch {
		case e.IsFeedback:
			sb.WriteString("[Feedback]: ")
		case e.Speaker == "ai":
			sb.WriteString("AI: ")
		default:
			sb.WriteString("User: ")
		}
		sb.WriteString(e.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
