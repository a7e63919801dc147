package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koita-chat-api/internal/infrastructure/cache"
)

const testLockTTL = 2 * time.Second

func newTestRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	locker := NewRedisLocker(redisCache, testLockTTL)
	locker.retryDelay = 10 * time.Millisecond
	return locker, mr
}

func TestRedisLockerWaitsForHolder(t *testing.T) {
	locker, _ := newTestRedisLocker(t)

	unlock, err := locker.Lock(context.Background(), "conversation:1")
	require.NoError(t, err)

	// held well past what a fixed retry budget at this delay would allow
	const hold = 600 * time.Millisecond
	go func() {
		time.Sleep(hold)
		unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	unlockSecond, err := locker.Lock(ctx, "conversation:1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), hold-50*time.Millisecond)
	unlockSecond()
}

func TestRedisLockerHonoursContext(t *testing.T) {
	locker, _ := newTestRedisLocker(t)

	unlock, err := locker.Lock(context.Background(), "conversation:1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "conversation:1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisLockerSerializesSameKey(t *testing.T) {
	locker, _ := newTestRedisLocker(t)

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			unlock, err := locker.Lock(ctx, "conversation:1")
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestRedisLockerExtendsWhileHeld(t *testing.T) {
	locker, mr := newTestRedisLocker(t)
	key := cache.Key(lockKeyPrefix + "conversation:1")

	unlock, err := locker.Lock(context.Background(), "conversation:1")
	require.NoError(t, err)

	mr.FastForward(1500 * time.Millisecond)
	require.LessOrEqual(t, mr.TTL(key), 500*time.Millisecond)

	assert.Eventually(t, func() bool {
		return mr.TTL(key) > time.Second
	}, 2*time.Second, 20*time.Millisecond)

	unlock()
	assert.False(t, mr.Exists(key))
}
