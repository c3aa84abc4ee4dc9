package store

import (
	"context"
	"sync"
	"time"

	"github.com/Ismailk12/ASK-AI/internal/domain"
)

// MemoryStore keeps sessions in a process-lifetime map. All state is lost
// on restart. Appends to the same id are serialized by the store lock.
type MemoryStore struct {
	mu       sync.RWMutex
	maxPairs int
	sessions map[string]*domain.Session
}

func NewMemoryStore(maxPairs int) *MemoryStore {
	return &MemoryStore{
		maxPairs: maxPairs,
		sessions: make(map[string]*domain.Session),
	}
}

func (s *MemoryStore) CreateSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := NewChatID()
	s.sessions[id] = &domain.Session{
		ID:        id,
		Title:     "New Chat",
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (s *MemoryStore) AppendTurn(ctx context.Context, id string, role domain.Role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		// 容忍客户端携带过期id，隐式重建会话
		sess = &domain.Session{
			ID:        id,
			Title:     "New Chat",
			CreatedAt: time.Now(),
		}
		s.sessions[id] = sess
	}

	if len(sess.Turns) == 0 && role == domain.RoleUser {
		sess.SetTitle(text)
	}

	sess.Turns = append(sess.Turns, domain.Turn{
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	})

	// 滑动窗口：只保留最近 maxPairs 对消息
	if window := 2 * s.maxPairs; len(sess.Turns) > window {
		kept := make([]domain.Turn, window)
		copy(kept, sess.Turns[len(sess.Turns)-window:])
		sess.Turns = kept
	}
	return nil
}

func (s *MemoryStore) RecentContext(ctx context.Context, id string, limit int) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || limit <= 0 {
		return nil, nil
	}

	turns := sess.Turns
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	// 倒序拷贝，最近的消息在前
	out := make([]domain.Turn, len(turns))
	for i, t := range turns {
		out[len(turns)-1-i] = t
	}
	return out, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) RenameSession(ctx context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.Title = title
	}
	return nil
}

func (s *MemoryStore) ListSessions(ctx context.Context) (map[string]domain.SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.SessionSummary, len(s.sessions))
	for id, sess := range s.sessions {
		out[id] = domain.SessionSummary{
			Title:     sess.Title,
			TurnCount: len(sess.Turns),
		}
	}
	return out, nil
}
