package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notch-chatbot/internal/common/errors"
)

// ==========================
// Test Helpers
// ==========================

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func turn(user, assistant string) []Message {
	at := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	return []Message{
		{Role: RoleUser, Content: user, CreatedAt: at},
		{Role: RoleAssistant, Content: assistant, CreatedAt: at},
	}
}

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, store Store) {
	ctx := context.Background()

	id, err := store.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	history, err := store.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, store.Append(ctx, id, turn("Do you work with fintech?", "Yes, we do.")...))
	require.NoError(t, store.Append(ctx, id, turn("Tell me more", "We built a neobank onboarding flow.")...))

	history, err = store.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "Do you work with fintech?", history[0].Content)
	assert.Equal(t, "We built a neobank onboarding flow.", history[3].Content)

	other, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	otherHistory, err := store.History(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, otherHistory)

	require.NoError(t, store.Delete(ctx, id))
	history, err = store.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

// ==========================
// Memory Store
// ==========================

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	id, _ := store.Create(ctx)
	require.NoError(t, store.Append(ctx, id, turn("hi", "hello")...))

	now = now.Add(9 * time.Minute)
	history, _ := store.History(ctx, id)
	assert.Len(t, history, 2)

	now = now.Add(2 * time.Minute)
	history, _ = store.History(ctx, id)
	assert.Empty(t, history)
}

func TestMemoryStore_CreateSweepsAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	abandoned, _ := store.Create(ctx)
	active, _ := store.Create(ctx)

	now = now.Add(8 * time.Minute)
	require.NoError(t, store.Append(ctx, active, turn("hi", "hello")...))

	now = now.Add(3 * time.Minute)
	fresh, _ := store.Create(ctx)

	store.mu.Lock()
	_, hasAbandoned := store.entries[abandoned]
	_, hasActive := store.entries[active]
	_, hasFresh := store.entries[fresh]
	size := len(store.entries)
	store.mu.Unlock()

	assert.False(t, hasAbandoned, "expired session should be swept without being read")
	assert.True(t, hasActive)
	assert.True(t, hasFresh)
	assert.Equal(t, 2, size)
}

func TestMemoryStore_HistoryIsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	id, _ := store.Create(ctx)
	require.NoError(t, store.Append(ctx, id, turn("hi", "hello")...))

	history, _ := store.History(ctx, id)
	history[0].Content = "changed"

	again, _ := store.History(ctx, id)
	assert.Equal(t, "hi", again[0].Content)
}

// ==========================
// Redis Store
// ==========================

func TestRedisStore(t *testing.T) {
	_, client := setupRedis(t)
	exerciseStore(t, NewRedisStore(client, time.Hour))
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewRedisStore(client, 30*time.Minute)

	id, _ := store.Create(ctx)
	require.NoError(t, store.Append(ctx, id, turn("hi", "hello")...))

	assert.True(t, mr.Exists(keyPrefix+id))
	assert.Equal(t, 30*time.Minute, mr.TTL(keyPrefix+id))

	mr.FastForward(31 * time.Minute)
	history, err := store.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRedisStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewRedisStore(client, time.Minute)
	mr.Close()

	err := store.Append(ctx, "abc", turn("hi", "hello")...)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionFailed))

	_, err = store.History(ctx, "abc")
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionFailed))
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	store := NewRedisStore(client, time.Minute)

	_, err := mr.RPush(keyPrefix+"bad", "not json")
	require.NoError(t, err)

	_, err = store.History(ctx, "bad")
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionFailed))
}
