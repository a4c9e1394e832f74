package models

import (
	"time"

	"gorm.io/datatypes"
)

// InterviewSession is one mock-interview attempt. Status is free-running:
// nothing times sessions out automatically, an abandoned session stays
// "in-progress" until the client reports otherwise.
type InterviewSession struct {
	BaseModel
	UserID      string          `gorm:"type:uuid;not null;index" json:"userId"`
	Topic       string          `gorm:"not null" json:"topic"`
	Position    string          `json:"position"`
	Status      InterviewStatus `gorm:"type:varchar(20);not null;default:'started';index" json:"status"`
	StartedAt   time.Time       `gorm:"not null" json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	Score       *float64        `json:"score,omitempty"`
	ReportURL   string          `json:"reportUrl,omitempty"`

	Transcript []TranscriptEntry `gorm:"foreignKey:SessionID" json:"transcript,omitempty"`
	Problems   []SolvedProblem   `gorm:"foreignKey:SessionID" json:"problems,omitempty"`
	Highlights []Highlight       `gorm:"foreignKey:SessionID" json:"highlights,omitempty"`
}

type TranscriptEntry struct {
	BaseModel
	SessionID  string `gorm:"type:uuid;not null;index" json:"sessionId"`
	Speaker    string `gorm:"type:varchar(10);not null" json:"speaker"` // "ai" or "user"
	Text       string `gorm:"type:text;not null" json:"text"`
	IsFeedback bool   `gorm:"default:false" json:"isFeedback"`
	Ordinal    int    `gorm:"not null" json:"ordinal"`
}

type SolvedProblem struct {
	BaseModel
	SessionID  string         `gorm:"type:uuid;not null;index" json:"sessionId"`
	Title      string         `gorm:"not null" json:"title"`
	Difficulty string         `gorm:"type:varchar(20)" json:"difficulty"`
	Language   string         `json:"language"`
	Code       string         `gorm:"type:text" json:"code"`
	Verdict    string         `gorm:"type:varchar(30)" json:"verdict"`
	Meta       datatypes.JSON `gorm:"type:jsonb" json:"meta,omitempty"`
}

type Highlight struct {
	BaseModel
	SessionID string `gorm:"type:uuid;not null;index" json:"sessionId"`
	Label     string `json:"label"`
	ClipURL   string `json:"clipUrl"`
	StartSec  int    `json:"startSec"`
	EndSec    int    `json:"endSec"`
}
