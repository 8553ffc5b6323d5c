package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/apaise/internal/safety"
)

func newTestStore(t *testing.T, opts ...StoreOption) *memoryStore {
	t.Helper()
	store, err := NewStore(StoreTypeMemory, opts...)
	require.NoError(t, err)
	return store.(*memoryStore)
}

func TestMemoryStore_GetOrCreate_LazyCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.Key)
	assert.Equal(t, safety.StateNormal, sess.State)
	assert.Equal(t, int64(1), sess.Version)

	// Second read returns the same session, not a fresh one.
	again, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sess.CreatedAt, again.CreatedAt)
}

func TestMemoryStore_Update_OptimisticLocking(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)

	stale := *sess

	sess.State = safety.StateAwaitingSuicideConfirm
	sess.Reason = safety.ReasonSuicide
	require.NoError(t, store.Update(ctx, sess))
	assert.Equal(t, int64(2), sess.Version)

	// The mutation is visible to the very next read.
	next, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, safety.StateAwaitingSuicideConfirm, next.State)

	// A stale writer loses.
	stale.State = safety.StateBlocked
	assert.ErrorIs(t, store.Update(ctx, &stale), ErrVersionConflict)
}

func TestMemoryStore_Update_UnknownKey(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(context.Background(), &Session{Key: "ghost", Version: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := newTestStore(t, WithTTL(10*time.Minute))
	ctx := context.Background()

	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	sess, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	sess.State = safety.StateBlocked
	require.NoError(t, store.Update(ctx, sess))

	// Within the idle window the blocked state survives.
	current = current.Add(5 * time.Minute)
	kept, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, safety.StateBlocked, kept.State)

	// Past the idle window the entry is recreated fresh.
	current = current.Add(11 * time.Minute)
	fresh, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, safety.StateNormal, fresh.State)
	assert.Equal(t, int64(1), fresh.Version)
}

func TestMemoryStore_CapacityEviction(t *testing.T) {
	store := newTestStore(t, WithCapacity(2))
	ctx := context.Background()

	current := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return current }

	_, err := store.GetOrCreate(ctx, "first")
	require.NoError(t, err)

	current = current.Add(time.Minute)
	_, err = store.GetOrCreate(ctx, "second")
	require.NoError(t, err)

	// Third session evicts "first", the least recently touched.
	current = current.Add(time.Minute)
	_, err = store.GetOrCreate(ctx, "third")
	require.NoError(t, err)

	store.mu.Lock()
	_, hasFirst := store.sessions["first"]
	_, hasSecond := store.sessions["second"]
	_, hasThird := store.sessions["third"]
	store.mu.Unlock()

	assert.False(t, hasFirst)
	assert.True(t, hasSecond)
	assert.True(t, hasThird)
}

func TestMemoryStore_DistinctKeysAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const turns = 50
	var wg sync.WaitGroup
	wg.Add(2)

	// Two sessions hammered concurrently must never see each other's state.
	go func() {
		defer wg.Done()
		for i := 0; i < turns; i++ {
			sess, err := store.GetOrCreate(ctx, "blocked-user")
			if err != nil {
				continue
			}
			sess.State = safety.StateBlocked
			sess.Reason = safety.ReasonSuicide
			_ = store.Update(ctx, sess)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < turns; i++ {
			_, _ = store.GetOrCreate(ctx, fmt.Sprintf("normal-user-%d", i))
		}
	}()
	wg.Wait()

	blocked, err := store.GetOrCreate(ctx, "blocked-user")
	require.NoError(t, err)
	assert.Equal(t, safety.StateBlocked, blocked.State)

	for i := 0; i < turns; i++ {
		sess, err := store.GetOrCreate(ctx, fmt.Sprintf("normal-user-%d", i))
		require.NoError(t, err)
		assert.Equal(t, safety.StateNormal, sess.State, "key: normal-user-%d", i)
	}
}

func TestNewStore_UnknownDriver(t *testing.T) {
	_, err := NewStore(StoreType("bolt"))
	assert.ErrorIs(t, err, ErrInvalidStoreType)
}

func TestNewStore_RedisRequiresClient(t *testing.T) {
	_, err := NewStore(StoreTypeRedis)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
