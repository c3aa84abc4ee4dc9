package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Ismailk12/ASK-AI/internal/domain"
)

// RedisStore is the swappable backend behind ChatStore: same lenient
// semantics as MemoryStore, but history survives process restarts.
//
// Keys:
//
//	chat:{id}        hash  title / created_at
//	chat:{id}:turns  list  JSON-encoded turns, oldest first
type RedisStore struct {
	client   *redis.Client
	maxPairs int
}

func NewRedisStore(addr, password string, db, maxPairs int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, maxPairs: maxPairs}, nil
}

func sessionKey(id string) string { return "chat:" + id }
func turnsKey(id string) string   { return "chat:" + id + ":turns" }

func (s *RedisStore) CreateSession(ctx context.Context) (string, error) {
	id := NewChatID()
	err := s.client.HSet(ctx, sessionKey(id),
		"title", "New Chat",
		"created_at", time.Now().Format(time.RFC3339),
	).Err()
	if err != nil {
		return "", fmt.Errorf("save session failed: %w", err)
	}
	return id, nil
}

func (s *RedisStore) AppendTurn(ctx context.Context, id string, role domain.Role, text string) error {
	turn := domain.Turn{Role: role, Text: text, CreatedAt: time.Now()}
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("encode turn failed: %w", err)
	}

	// 隐式重建：过期id不报错
	if err := s.client.HSetNX(ctx, sessionKey(id), "created_at", time.Now().Format(time.RFC3339)).Err(); err != nil {
		return fmt.Errorf("ensure session failed: %w", err)
	}

	n, err := s.client.RPush(ctx, turnsKey(id), data).Result()
	if err != nil {
		return fmt.Errorf("append turn failed: %w", err)
	}

	if n == 1 && role == domain.RoleUser {
		sess := domain.Session{}
		sess.SetTitle(text)
		s.client.HSet(ctx, sessionKey(id), "title", sess.Title)
	} else {
		s.client.HSetNX(ctx, sessionKey(id), "title", "New Chat")
	}

	// 滑动窗口
	return s.client.LTrim(ctx, turnsKey(id), -int64(2*s.maxPairs), -1).Err()
}

func (s *RedisStore) RecentContext(ctx context.Context, id string, limit int) ([]domain.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}
	items, err := s.client.LRange(ctx, turnsKey(id), -int64(limit), -1).Result()
	if err == redis.Nil || len(items) == 0 {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read turns failed: %w", err)
	}

	// 倒序，最近的消息在前
	out := make([]domain.Turn, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		var turn domain.Turn
		if err := json.Unmarshal([]byte(items[i]), &turn); err != nil {
			log.Printf("[WARN] Skipping corrupt turn in %s: %v", id, err)
			continue
		}
		out = append(out, turn)
	}
	return out, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id), turnsKey(id)).Err()
}

func (s *RedisStore) RenameSession(ctx context.Context, id, title string) error {
	exists, err := s.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil || exists == 0 {
		return err
	}
	return s.client.HSet(ctx, sessionKey(id), "title", title).Err()
}

func (s *RedisStore) ListSessions(ctx context.Context) (map[string]domain.SessionSummary, error) {
	keys, err := s.client.Keys(ctx, "chat:*").Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions failed: %w", err)
	}

	out := make(map[string]domain.SessionSummary)
	for _, key := range keys {
		if strings.HasSuffix(key, ":turns") {
			continue
		}
		id := strings.TrimPrefix(key, "chat:")
		title, err := s.client.HGet(ctx, key, "title").Result()
		if err != nil {
			continue
		}
		count, _ := s.client.LLen(ctx, turnsKey(id)).Result()
		out[id] = domain.SessionSummary{
			Title:     title,
			TurnCount: int(count),
		}
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
