package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"interviewapi/internal/config"
	"interviewapi/internal/model"
	"interviewapi/internal/session"
)

// Store is a Redis implementation of session.Store. Sessions are stored as JSON
// strings with a per-key TTL; Redis handles expiry server-side.
type Store struct {
	client *goredis.Client
}

var _ session.Store = (*Store)(nil)

// New creates a Redis-backed session store and verifies connectivity.
func New(cfg config.RedisConfig) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{client: client}, nil
}

// Close releases the underlying Redis connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// Save serializes the session and writes it with the TTL.
func (s *Store) Save(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, session.Key(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Find loads and deserializes a session. Missing or expired keys map to
// session.ErrSessionNotFound.
func (s *Store) Find(ctx context.Context, id string) (*model.Session, error) {
	payload, err := s.client.Get(ctx, session.Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Touch extends the TTL of an existing session.
func (s *Store) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, session.Key(id), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire: %w", err)
	}
	if !ok {
		return session.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session key. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, session.Key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
