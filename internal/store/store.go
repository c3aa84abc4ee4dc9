package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Ismailk12/ASK-AI/internal/domain"
)

// ChatStore owns all chat sessions. Callers pass ids and get copies back;
// no mutable session state leaves the store.
//
// Lookup semantics are lenient: reads on an unknown id return empty
// results, delete/rename silently no-op. Stale client-supplied ids must
// never break the chat flow.
type ChatStore interface {
	CreateSession(ctx context.Context) (string, error)
	AppendTurn(ctx context.Context, id string, role domain.Role, text string) error
	// RecentContext returns up to limit most recent turns, most-recent-first,
	// without mutating stored order.
	RecentContext(ctx context.Context, id string, limit int) ([]domain.Turn, error)
	DeleteSession(ctx context.Context, id string) error
	RenameSession(ctx context.Context, id, title string) error
	ListSessions(ctx context.Context) (map[string]domain.SessionSummary, error)
}

// NewChatID generates an opaque chat id, e.g. "chat_3f2a9c01".
func NewChatID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "chat_" + hex[:8]
}
