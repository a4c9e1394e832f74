package report

import "strings"

// BlockKind classifies one transcript line by its prefix convention.
// The transcript format is produced by the interview client: "AI:" and
// "User:" turns, "[Feedback]:" annotations after a user turn, a
// "FINAL ANALYSIS" marker opening the summary section, "**...**" headings
// and "- " bullets inside it.
type BlockKind int

const (
	BlockPlain BlockKind = iota
	BlockAI
	BlockUser
	BlockFeedback
	BlockHeading
	BlockBullet
	BlockSection
	BlockBlank
)

const (
	prefixAI       = "AI:"
	prefixUser     = "User:"
	prefixFeedback = "[Feedback]:"
	sectionMarker  = "FINAL ANALYSIS"
)

// Block is one classified line with its prefix stripped.
type Block struct {
	Kind BlockKind
	Text string
}

// ClassifyLine maps a raw transcript line to a styled block. Unknown
// shapes fall through as plain text; nothing is rejected.
func ClassifyLine(line string) Block {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return Block{Kind: BlockBlank}
	case strings.HasPrefix(trimmed, prefixAI):
		return Block{Kind: BlockAI, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, prefixAI))}
	case strings.HasPrefix(trimmed, prefixUser):
		return Block{Kind: BlockUser, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, prefixUser))}
	case strings.HasPrefix(trimmed, prefixFeedback):
		return Block{Kind: BlockFeedback, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, prefixFeedback))}
	case strings.Contains(strings.ToUpper(trimmed), sectionMarker):
		return Block{Kind: BlockSection, Text: sectionMarker}
	case strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") && len(trimmed) > 4:
		return Block{Kind: BlockHeading, Text: strings.TrimSuffix(strings.TrimPrefix(trimmed, "**"), "**")}
	case strings.HasPrefix(trimmed, "- "):
		return Block{Kind: BlockBullet, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, "- "))}
	default:
		return Block{Kind: BlockPlain, Text: trimmed}
	}
}

// ParseTranscript classifies every line of a flat transcript, dropping
// runs of consecutive blank lines down to one.
func ParseTranscript(transcript string) []Block {
	lines := strings.Split(transcript, "\n")
	blocks := make([]Block, 0, len(lines))

	prevBlank := false
	for _, line := range lines {
		b := ClassifyLine(line)
		if b.Kind == BlockBlank {
			if prevBlank || len(blocks) == 0 {
				continue
			}
			prevBlank = true
		} else {
			prevBlank = false
		}
		blocks = append(blocks, b)
	}

	// Trailing blank carries no layout meaning.
	if n := len(blocks); n > 0 && blocks[n-1].Kind == BlockBlank {
		blocks = blocks[:n-1]
	}
	return blocks
}

// StripInlineBold removes "**" markers, returning the plain text and
// whether any bold span was present. Inline spans are rendered fully
// bold rather than mixed; the transcript convention only bolds short
// labels.
func StripInlineBold(text string) (string, bool) {
	if !strings.Contains(text, "**") {
		return text, false
	}
	return strings.ReplaceAll(text, "**", ""), true
}
