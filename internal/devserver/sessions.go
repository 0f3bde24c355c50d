package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"business-dashboard/internal/common/database"
	"business-dashboard/internal/models"
)

const sessionKeyPrefix = "dashboard:session:"

// SessionStore maps session cookie ids to signed-in users.
type SessionStore interface {
	Create(ctx context.Context, user models.User) (string, error)
	Lookup(ctx context.Context, id string) (models.User, bool, error)
	// Delete ends a session and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// RedisSessions keeps sessions in redis with a fixed TTL.
type RedisSessions struct {
	redis *database.RedisClient
	ttl   time.Duration
	newID func() string
}

func NewRedisSessions(rc *database.RedisClient, ttl time.Duration) *RedisSessions {
	return &RedisSessions{redis: rc, ttl: ttl, newID: uuid.NewString}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *RedisSessions) Create(ctx context.Context, user models.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	id := s.newID()
	if err := s.redis.Set(ctx, sessionKey(id), string(data), s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *RedisSessions) Lookup(ctx context.Context, id string) (models.User, bool, error) {
	if id == "" {
		return models.User{}, false, nil
	}
	raw, err := s.redis.Get(ctx, sessionKey(id))
	if errors.Is(err, redis.Nil) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("load session: %w", err)
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, false, fmt.Errorf("decode session: %w", err)
	}
	return user, true, nil
}

func (s *RedisSessions) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	n, err := s.redis.Del(ctx, sessionKey(id))
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	return n > 0, nil
}
