package service

import (
	"context"
	"errors"
	"time"

	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the ephemeral per-identity session state: the active
// token JTI and the admin-only viewing-as-student flag. Nothing here is
// persisted beyond the token TTL.
type SessionStore interface {
	SetSession(ctx context.Context, identity, jti string, ttl time.Duration) error
	GetSession(ctx context.Context, identity string) (string, error)
	ClearSession(ctx context.Context, identity string) error
	SetStudentView(ctx context.Context, identity string, on bool, ttl time.Duration) error
	StudentView(ctx context.Context, identity string) (bool, error)
}

// RedisSessionStore is the Redis-backed SessionStore.
type RedisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore creates a SessionStore over a Redis client.
func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) SetSession(ctx context.Context, identity, jti string, ttl time.Duration) error {
	return s.rdb.Set(ctx, config.SessionKey.SessionKey(identity), jti, ttl).Err()
}

// GetSession returns the active JTI, or "" when no session exists.
func (s *RedisSessionStore) GetSession(ctx context.Context, identity string) (string, error) {
	jti, err := s.rdb.Get(ctx, config.SessionKey.SessionKey(identity)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return jti, err
}

func (s *RedisSessionStore) ClearSession(ctx context.Context, identity string) error {
	return s.rdb.Del(ctx,
		config.SessionKey.SessionKey(identity),
		config.SessionKey.StudentViewKey(identity),
	).Err()
}

func (s *RedisSessionStore) SetStudentView(ctx context.Context, identity string, on bool, ttl time.Duration) error {
	key := config.SessionKey.StudentViewKey(identity)
	if !on {
		return s.rdb.Del(ctx, key).Err()
	}
	return s.rdb.Set(ctx, key, "1", ttl).Err()
}

func (s *RedisSessionStore) StudentView(ctx context.Context, identity string) (bool, error) {
	v, err := s.rdb.Get(ctx, config.SessionKey.StudentViewKey(identity)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "1", nil
}
