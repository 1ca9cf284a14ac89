package session

// Package session contains the live interview session store abstraction.
// Implementations live in subpackages (redis for production, memory for local
// development and tests).

import (
	"context"
	"errors"
	"time"

	"interviewapi/internal/model"
)

// ErrSessionNotFound is returned when a session does not exist or its TTL has
// expired. Callers cannot distinguish the two cases; an expired session is gone.
var ErrSessionNotFound = errors.New("session not found")

// Store is a TTL-based key-value store for live interview sessions.
// Every successful Save resets the session TTL.
type Store interface {
	// Save persists the session as JSON under its ID with the given TTL.
	Save(ctx context.Context, s *model.Session, ttl time.Duration) error

	// Find loads a session by ID. Returns ErrSessionNotFound if absent or expired.
	Find(ctx context.Context, id string) (*model.Session, error)

	// Touch extends the TTL of an existing session without rewriting it.
	// Returns ErrSessionNotFound if the session is absent or expired.
	Touch(ctx context.Context, id string, ttl time.Duration) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}

// Key builds the store key for a session ID.
func Key(id string) string {
	return "interview:session:" + id
}
