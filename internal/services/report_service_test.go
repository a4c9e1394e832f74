package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prepvio_backend/internal/models"
)

func TestBuildTranscriptText(t *testing.T) {
	entries := []models.TranscriptEntry{
		{Speaker: "ai", Text: "Tell me about a hard bug.", Ordinal: 1},
		{Speaker: "user", Text: "A race in our cache layer.", Ordinal: 2},
		{Speaker: "ai", Text: "Good depth on the diagnosis.", IsFeedback: true, Ordinal: 3},
	}

	text := BuildTranscriptText(entries)

	assert.Contains(t, text, "AI: Tell me about a hard bug.")
	assert.Contains(t, text, "User: A race in our cache layer.")
	assert.Contains(t, text, "[Feedback]: Good depth on the diagnosis.")
}

func TestBuildTranscriptText_Empty(t *testing.T) {
	assert.Empty(t, BuildTranscriptText(nil))
}
