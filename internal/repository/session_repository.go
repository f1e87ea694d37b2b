package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/samarthbanodia/yatrafy/internal/model"
)

const (
	historyKeyPrefix = "chat:history:"
	sessionSetKey    = "chat:sessions"
)

// SessionRepository keeps chat transcripts in Redis lists (one per user,
// append order preserved) and the session roster in a set, so the
// session count is just SCARD.
type SessionRepository struct {
	redis *redis.Client
}

// NewSessionRepository creates a session repository.
func NewSessionRepository(redis *redis.Client) *SessionRepository {
	return &SessionRepository{redis: redis}
}

// AppendMessage pushes one chat turn onto the user's transcript.
func (r *SessionRepository) AppendMessage(ctx context.Context, userID string, msg model.ChatMessage) error {
	encoded, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("append message: encode: %w", err)
	}
	if err := r.redis.RPush(ctx, historyKeyPrefix+userID, encoded).Err(); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// History returns the user's full transcript in append order.
// An unknown user gets an empty (non-nil) transcript.
func (r *SessionRepository) History(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	raw, err := r.redis.LRange(ctx, historyKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	messages := make([]model.ChatMessage, 0, len(raw))
	for _, entry := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("history: decode: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// RegisterSession adds the user to the roster and reports whether they
// were new (SADD returns the number of members actually added).
func (r *SessionRepository) RegisterSession(ctx context.Context, userID string) (bool, error) {
	added, err := r.redis.SAdd(ctx, sessionSetKey, userID).Result()
	if err != nil {
		return false, fmt.Errorf("register session: %w", err)
	}
	return added == 1, nil
}

// SessionCount returns the number of distinct users seen.
func (r *SessionRepository) SessionCount(ctx context.Context) (int, error) {
	n, err := r.redis.SCard(ctx, sessionSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("session count: %w", err)
	}
	return int(n), nil
}
