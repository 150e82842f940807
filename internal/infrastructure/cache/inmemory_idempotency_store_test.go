package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *time.Time) {
	t.Helper()
	store := NewInMemoryIdempotencyStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestInMemoryIdempotencyStore_Claim(t *testing.T) {
	store, now := newTestStore(t)
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		ok, err := store.Claim(ctx, "POST:/api/outward:abc", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Claim(ctx, "POST:/api/outward:abc", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired claim can be retaken", func(t *testing.T) {
		ok, _ := store.Claim(ctx, "short", time.Minute)
		require.True(t, ok)

		*now = now.Add(time.Minute)
		claimed, err := store.IsClaimed(ctx, "short")
		require.NoError(t, err)
		assert.False(t, claimed)

		ok, _ = store.Claim(ctx, "short", time.Minute)
		assert.True(t, ok)
	})
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ok, _ := store.Claim(ctx, "k", time.Hour)
	require.True(t, ok)
	require.NoError(t, store.Release(ctx, "k"))
	require.NoError(t, store.Release(ctx, "missing"))

	claimed, err := store.IsClaimed(ctx, "k")
	require.NoError(t, err)
	assert.False(t, claimed)

	ok, _ = store.Claim(ctx, "k", time.Hour)
	assert.True(t, ok)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store, now := newTestStore(t)
	ctx := context.Background()

	_, _ = store.Claim(ctx, "old", time.Minute)
	_, _ = store.Claim(ctx, "fresh", time.Hour)
	*now = now.Add(2 * time.Minute)

	store.cleanup()

	assert.Equal(t, 1, store.Size())
	claimed, _ := store.IsClaimed(ctx, "fresh")
	assert.True(t, claimed)
}

func TestInMemoryIdempotencyStore_ConcurrentClaims(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	defer store.Close()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.Claim(context.Background(), "same-key", time.Hour); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
