package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRedisLocker(t *testing.T, ttl time.Duration, log *zap.Logger) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, ttl, log), mr
}

func TestRedisLockerReleases(t *testing.T) {
	l, mr := newRedisLocker(t, 0, nil)
	ctx := context.Background()
	key := ShoppingListKey("a")

	unlock, err := l.Lock(ctx, key)
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+key))

	unlock()
	unlock()
	assert.False(t, mr.Exists(keyPrefix+key))

	unlock, err = l.Lock(ctx, key)
	require.NoError(t, err)
	unlock()
}

func TestRedisLockerHonoursContext(t *testing.T) {
	l, _ := newRedisLocker(t, 0, nil)
	key := MenuPlanKey("a")

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, key)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisLockerExpiredHolderKeepsNewLock(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second, nil)
	ctx := context.Background()
	key := InventoryKey("u")

	first, err := l.Lock(ctx, key)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	second, err := l.Lock(ctx, key)
	require.NoError(t, err)

	first()
	assert.True(t, mr.Exists(keyPrefix+key))

	second()
	assert.False(t, mr.Exists(keyPrefix+key))
}

func TestRedisLockerLogsFailedRelease(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l, mr := newRedisLocker(t, 0, zap.New(core))

	unlock, err := l.Lock(context.Background(), ShoppingListKey("b"))
	require.NoError(t, err)

	mr.Close()
	unlock()
	unlock()

	entries := logs.FilterMessage("release entity lock").All()
	require.Len(t, entries, 1)
	assert.Equal(t, ShoppingListKey("b"), entries[0].ContextMap()["key"])
}
