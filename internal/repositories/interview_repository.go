package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"prepvio_backend/internal/models"
)

var ErrInterviewNotFound = errors.New("interview session not found")

type InterviewFilter struct {
	UserID   string
	Status   models.InterviewStatus
	Page     int
	PageSize int
}

type InterviewRepository interface {
	Create(session *models.InterviewSession) error
	FindByID(id string) (*models.InterviewSession, error)
	FindWithFilter(criteria InterviewFilter) ([]models.InterviewSession, int64, error)
	UpdateStatus(sessionID string, status models.InterviewStatus) error
	Complete(sessionID string, score *float64, at time.Time) error
	SetReportURL(sessionID, url string) error
	AppendTranscript(entries []models.TranscriptEntry) error
	NextTranscriptOrdinal(sessionID string) (int, error)
	AddProblem(problem *models.SolvedProblem) error
	AddHighlight(highlight *models.Highlight) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(session *models.InterviewSession) error {
	return r.db.Create(session).Error
}

func (r *interviewRepository) FindByID(id string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.db.
		Preload("Transcript", func(db *gorm.DB) *gorm.DB {
			return db.Order("transcript_entries.ordinal ASC")
		}).
		Preload("Problems").
		Preload("Highlights").
		First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *interviewRepository) FindWithFilter(criteria InterviewFilter) ([]models.InterviewSession, int64, error) {
	query := r.db.Model(&models.InterviewSession{})

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if criteria.Page > 0 && criteria.PageSize > 0 {
		query = query.Offset((criteria.Page - 1) * criteria.PageSize).Limit(criteria.PageSize)
	}

	var sessions []models.InterviewSession
	if err := query.Order("started_at DESC").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *interviewRepository) UpdateStatus(sessionID string, status models.InterviewStatus) error {
	result := r.db.Model(&models.InterviewSession{}).Where("id = ?", sessionID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *interviewRepository) Complete(sessionID string, score *float64, at time.Time) error {
	updates := map[string]interface{}{
		"status":       models.InterviewStatusCompleted,
		"completed_at": at,
	}
	if score != nil {
		updates["score"] = *score
	}
	result := r.db.Model(&models.InterviewSession{}).Where("id = ?", sessionID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *interviewRepository) SetReportURL(sessionID, url string) error {
	result := r.db.Model(&models.InterviewSession{}).Where("id = ?", sessionID).Update("report_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *interviewRepository) AppendTranscript(entries []models.TranscriptEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.Create(&entries).Error
}

func (r *interviewRepository) NextTranscriptOrdinal(sessionID string) (int, error) {
	var max int
	err := r.db.Model(&models.TranscriptEntry{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(ordinal), 0)").
		Scan(&max).Error
	return max + 1, err
}

func (r *interviewRepository) AddProblem(problem *models.SolvedProblem) error {
	return r.db.Create(problem).Error
}

func (r *interviewRepository) AddHighlight(highlight *models.Highlight) error {
	return r.db.Create(highlight).Error
}
