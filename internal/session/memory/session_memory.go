package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"interviewapi/internal/model"
	"interviewapi/internal/session"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// Store is an in-process session.Store for local development and tests.
// Sessions are kept as JSON payloads to mirror the Redis store's semantics:
// callers always get an independent copy, never a shared pointer. Expiry is
// checked lazily on access.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	// now is swappable in tests.
	now func() time.Time
}

var _ session.Store = (*Store)(nil)

// New creates an empty in-memory session store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *Store) Save(_ context.Context, sess *model.Session, ttl time.Duration) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.Key(sess.ID)] = entry{
		payload:   payload,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *Store) Find(_ context.Context, id string) (*model.Session, error) {
	key := session.Key(id)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		s.evict(key)
		return nil, session.ErrSessionNotFound
	}

	var sess model.Session
	if err := json.Unmarshal(e.payload, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *Store) Touch(_ context.Context, id string, ttl time.Duration) error {
	key := session.Key(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return session.ErrSessionNotFound
	}

	e.expiresAt = s.now().Add(ttl)
	s.entries[key] = e
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, session.Key(id))
	return nil
}

func (s *Store) expired(e entry) bool {
	return s.now().After(e.expiresAt)
}

func (s *Store) evict(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
