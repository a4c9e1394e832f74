package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeta() Meta {
	return Meta{
		Title:       "Interview Report",
		Candidate:   "Dana Smith",
		Topic:       "Backend Engineering",
		CompletedAt: time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	transcript := strings.Join([]string{
		"AI: Walk me through a recent project.",
		"",
		"User: I built a payment reconciliation service.",
		"",
		"[Feedback]: Clear answer, quantify the impact next time.",
		"",
		"=== FINAL ANALYSIS ===",
		"",
		"**Strengths**",
		"- Structured answers",
		"- Solid system design vocabulary",
		"",
		"Overall a strong performance with **8/10**.",
	}, "\n")

	pdf, err := NewRenderer().Render(testMeta(), transcript)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"), "output must start with PDF magic")
	assert.Greater(t, len(pdf), 1000)
}

func TestRender_EmptyTranscript(t *testing.T) {
	pdf, err := NewRenderer().Render(testMeta(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
}

func TestRender_LongTranscriptPaginates(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("AI: Question about goroutine scheduling and channel semantics.\n\n")
		sb.WriteString("User: A fairly detailed answer that takes several lines when wrapped at the content width of the page.\n\n")
	}

	pdf, err := NewRenderer().Render(testMeta(), sb.String())
	require.NoError(t, err)
	// Multi-page documents carry multiple page objects.
	assert.Greater(t, strings.Count(string(pdf), "/Type /Page"), 1)
}
