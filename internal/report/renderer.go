package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Meta is the session information printed in the page header.
type Meta struct {
	Title       string
	Candidate   string
	Topic       string
	CompletedAt time.Time
}

// Layout constants, in millimeters (A4 portrait).
const (
	pageMarginLeft  = 15.0
	pageMarginTop   = 22.0
	pageMarginRight = 15.0
	lineHeight      = 5.5
	bulletIndent    = 6.0
	// breakThreshold is where the cursor forces a manual page break so a
	// block never starts hugging the footer.
	breakThreshold = 270.0
)

// Renderer converts an interview transcript into a paginated PDF. One
// top-to-bottom pass; the caller is responsible for producing the
// transcript in the expected line convention.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PDF bytes for a transcript.
func (r *Renderer) Render(meta Meta, transcript string) ([]byte, error) {
	blocks := ParseTranscript(transcript)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginLeft, pageMarginTop, pageMarginRight)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	// Core fonts are cp1252; transcripts arrive as UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := meta.Title
	if title == "" {
		title = "Interview Report"
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetY(8)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		sub := meta.Candidate
		if meta.Topic != "" {
			sub = fmt.Sprintf("%s — %s", sub, meta.Topic)
		}
		if !meta.CompletedAt.IsZero() {
			sub = fmt.Sprintf("%s — %s", sub, meta.CompletedAt.Format("Jan 2, 2006"))
		}
		pdf.CellFormat(0, 4, tr(sub), "", 1, "L", false, 0, "")
		pdf.SetDrawColor(180, 180, 180)
		pdf.Line(pageMarginLeft, 19, 210-pageMarginRight, 19)
		pdf.SetY(pageMarginTop)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("PrepVio — page %d of {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()

	for _, b := range blocks {
		r.renderBlock(pdf, tr, b)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderBlock(pdf *gofpdf.Fpdf, tr func(string) string, b Block) {
	// Force a break before a block that would start at the very bottom.
	if pdf.GetY() > breakThreshold && b.Kind != BlockBlank {
		pdf.AddPage()
	}

	switch b.Kind {
	case BlockBlank:
		pdf.Ln(lineHeight / 2)

	case BlockSection:
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(b.Text), "B", 1, "L", false, 0, "")
		pdf.Ln(2)

	case BlockHeading:
		text, _ := StripInlineBold(b.Text)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, lineHeight+0.5, tr(text), "", "L", false)

	case BlockAI:
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(22, lineHeight, "Interviewer", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		r.flowText(pdf, tr, b.Text)

	case BlockUser:
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(40, 40, 150)
		pdf.CellFormat(22, lineHeight, "Candidate", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		r.flowText(pdf, tr, b.Text)
		pdf.SetTextColor(0, 0, 0)

	case BlockFeedback:
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.SetX(pageMarginLeft + bulletIndent)
		pdf.MultiCell(0, lineHeight-0.5, tr("Feedback: "+b.Text), "", "L", false)
		pdf.SetTextColor(0, 0, 0)

	case BlockBullet:
		text, bold := StripInlineBold(b.Text)
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetX(pageMarginLeft + bulletIndent)
		pdf.MultiCell(0, lineHeight, tr("• "+text), "", "L", false)

	default: // BlockPlain
		text, bold := StripInlineBold(b.Text)
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.MultiCell(0, lineHeight, tr(text), "", "L", false)
	}
}

// flowText continues a speaker line after its label cell.
func (r *Renderer) flowText(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.MultiCell(0, lineHeight, tr(text), "", "L", false)
}
