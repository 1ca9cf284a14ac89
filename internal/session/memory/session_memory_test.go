package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewapi/internal/model"
	"interviewapi/internal/session"
)

func newSession(id string) *model.Session {
	return &model.Session{
		ID:            id,
		CandidateName: "Jane",
		Role:          "backend",
		Status:        model.StatusActive,
		Phase:         model.PhaseIntro,
		Difficulty:    2,
	}
}

func TestStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Save(ctx, newSession("s1"), time.Minute))

	got, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, model.PhaseIntro, got.Phase)
}

func TestStoreFindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Save(ctx, newSession("s1"), time.Minute))

	first, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	first.CandidateName = "mutated"

	second, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", second.CandidateName)
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := New()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, newSession("s1"), time.Minute))

	// Still alive just before the deadline.
	now = now.Add(59 * time.Second)
	_, err := store.Find(ctx, "s1")
	assert.NoError(t, err)

	// Gone after the TTL elapses.
	now = now.Add(2 * time.Second)
	_, err = store.Find(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestStoreTouchExtendsTTL(t *testing.T) {
	ctx := context.Background()
	store := New()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, newSession("s1"), time.Minute))

	now = now.Add(50 * time.Second)
	require.NoError(t, store.Touch(ctx, "s1", time.Minute))

	// Original deadline passed, but the touched session survives.
	now = now.Add(30 * time.Second)
	_, err := store.Find(ctx, "s1")
	assert.NoError(t, err)
}

func TestStoreTouchMissing(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.Touch(ctx, "nope", time.Minute)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Save(ctx, newSession("s1"), time.Minute))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Find(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestStoreSaveResetsTTL(t *testing.T) {
	ctx := context.Background()
	store := New()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, newSession("s1"), time.Minute))

	now = now.Add(50 * time.Second)
	require.NoError(t, store.Save(ctx, newSession("s1"), time.Minute))

	now = now.Add(50 * time.Second)
	_, err := store.Find(ctx, "s1")
	assert.NoError(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "interview:session:abc", session.Key("abc"))
}
