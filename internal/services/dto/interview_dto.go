package dto

import "time"

type StartInterviewRequest struct {
	Topic    string `json:"topic" validate:"required,min=2,max=200"`
	Position string `json:"position" validate:"max=200"`
}

type AppendTranscriptRequest struct {
	Speaker    string `json:"speaker" validate:"required,oneof=ai user"`
	Text       string `json:"text" validate:"required,max=10000"`
	IsFeedback bool   `json:"isFeedback"`
}

type AddProblemRequest struct {
	Title      string                 `json:"title" validate:"required,max=200"`
	Difficulty string                 `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Language   string                 `json:"language" validate:"max=50"`
	Code       string                 `json:"code" validate:"max=50000"`
	Verdict    string                 `json:"verdict" validate:"max=30"`
	Meta       map[string]interface{} `json:"meta"`
}

type AddHighlightRequest struct {
	Label    string `json:"label" validate:"required,max=200"`
	ClipURL  string `json:"clipUrl" validate:"omitempty,url"`
	StartSec int    `json:"startSec" validate:"gte=0"`
	EndSec   int    `json:"endSec" validate:"gtefield=StartSec"`
}

type CompleteInterviewRequest struct {
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

type TranscriptEntryResponse struct {
	ID         string    `json:"id"`
	Speaker    string    `json:"speaker"`
	Text       string    `json:"text"`
	IsFeedback bool      `json:"isFeedback"`
	Ordinal    int       `json:"ordinal"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SolvedProblemResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty,omitempty"`
	Language   string `json:"language,omitempty"`
	Verdict    string `json:"verdict,omitempty"`
}

type HighlightResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ClipURL  string `json:"clipUrl,omitempty"`
	StartSec int    `json:"startSec"`
	EndSec   int    `json:"endSec"`
}

type InterviewResponse struct {
	ID          string                    `json:"id"`
	UserID      string                    `json:"userId"`
	Topic       string                    `json:"topic"`
	Position    string                    `json:"position"`
	Status      string                    `json:"status"`
	StartedAt   time.Time                 `json:"startedAt"`
	CompletedAt *time.Time                `json:"completedAt,omitempty"`
	Score       *float64                  `json:"score,omitempty"`
	ReportURL   string                    `json:"reportUrl,omitempty"`
	Transcript  []TranscriptEntryResponse `json:"transcript,omitempty"`
	Problems    []SolvedProblemResponse   `json:"problems,omitempty"`
	Highlights  []HighlightResponse       `json:"highlights,omitempty"`
}

type InterviewListResponse struct {
	Interviews []InterviewResponse `json:"interviews"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
}

type ReportResponse struct {
	SessionID string `json:"sessionId"`
	ReportURL string `json:"reportUrl"`
}
