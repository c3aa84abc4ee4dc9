package service

import (
	"strings"

	"github.com/Ismailk12/ASK-AI/internal/domain"
)

const promptPreamble = `You are ASK AI — a smart, friendly, and conversational assistant.
Adjust your tone based on the question:

1. Casual or fun questions (jokes, riddles, entertainment): Be humorous, light, and friendly. Grammar corrections are not needed.
2. Factual, technical, or academic questions (history, science, math, definitions, technology, latest devices): Be clear, concise, and confident. Avoid jokes, unnecessary apologies, or filler.

Use ongoing chat context if needed, web info only to verify or update facts, and PDF content only if relevant.

Guidelines:
- Keep answers short, clear, and conversational.
- Maintain context from previous messages without repeating the question unnecessarily.
- Avoid unrelated brands, products, or extra commentary.`

// ComposePrompt renders the full instruction prompt. Sections appear in a
// fixed order; web and PDF sections are omitted entirely when empty.
// turns must already be most-recent-first.
func ComposePrompt(message string, turns []domain.Turn, webContext, pdfText string) string {
	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("\n\nConversation context (most recent first):\n")
	b.WriteString(renderTurns(turns))

	if webContext != "" {
		b.WriteString("\n\nWeb context summary (use only if directly relevant):\n")
		b.WriteString(webContext)
	}

	if pdfText != "" {
		b.WriteString("\n\nPDF content (use only if directly relevant):\n")
		b.WriteString(pdfText)
	}

	b.WriteString("\n\nUser question: ")
	b.WriteString(message)
	b.WriteString("\n\nNow respond naturally, conversationally, and context-aware.")

	return b.String()
}

func renderTurns(turns []domain.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		prefix := "AI: "
		if t.IsUser() {
			prefix = "User: "
		}
		lines = append(lines, prefix+t.Text)
	}
	return strings.Join(lines, "\n")
}
