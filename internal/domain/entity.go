package domain

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn 单条消息实体
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// IsUser checks if the turn came from a user
func (t *Turn) IsUser() bool {
	return t.Role == RoleUser
}

// Session 会话实体 (Aggregate Root)
type Session struct {
	ID        string
	Title     string
	Turns     []Turn
	CreatedAt time.Time
}

// SetTitle derives a display title from the first message content.
// "Good Taste": Eliminate edge cases by handling length checks internally.
func (s *Session) SetTitle(content string) {
	const maxLen = 40
	runes := []rune(content)
	if len(runes) > maxLen {
		s.Title = string(runes[:maxLen])
	} else {
		s.Title = content
	}
}

// SessionSummary 会话列表视图
type SessionSummary struct {
	Title     string `json:"title"`
	TurnCount int    `json:"turn_count"`
}

// Citation is a web source reference attached to a grounded answer.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Reply is the generation result. Text is always usable: upstream
// failures are embedded as "Error: ..." text rather than surfaced as errors.
type Reply struct {
	Text      string
	Citations []Citation
}
