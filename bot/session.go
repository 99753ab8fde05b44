package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"facilitybot/models"

	"github.com/go-redis/redis/v8"
)

// sessionTTL bounds how long an abandoned wizard lingers. A pending draft
// survives commit failures within this window, so a retry never forces the
// user to re-enter anything.
const sessionTTL = 45 * time.Minute

// SessionStore persists one wizard session per chat in Redis. Sessions are
// written wholesale on every transition; there is no partial field mutation.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(chatID int64) string {
	return "session:" + strconv.FormatInt(chatID, 10)
}

// Get returns the chat's session, or nil when no wizard is running.
func (s *SessionStore) Get(ctx context.Context, chatID int64) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session for chat %d: %w", chatID, err)
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session for chat %d: %w", chatID, err)
	}
	return &session, nil
}

// Put replaces the chat's session.
func (s *SessionStore) Put(ctx context.Context, chatID int64, session models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session for chat %d: %w", chatID, err)
	}
	if err := s.client.Set(ctx, sessionKey(chatID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("store session for chat %d: %w", chatID, err)
	}
	return nil
}

// Clear ends the chat's wizard.
func (s *SessionStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("clear session for chat %d: %w", chatID, err)
	}
	return nil
}
