package lock

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"

	"koita-chat-api/internal/domain/chat"
	"koita-chat-api/internal/infrastructure/cache"
	"koita-chat-api/internal/infrastructure/logger"
)

const (
	// DefaultLockTTL outlives the longest model stream so a held lock is not stolen mid-reply.
	DefaultLockTTL = 3 * time.Minute
	// DefaultRetryDelay is how often a waiting caller polls a taken lock.
	DefaultRetryDelay = 100 * time.Millisecond
	lockKeyPrefix     = "lock:"
)

// RedisLocker serializes work per key across replicas with redsync.
// Lock waits until the key is free or ctx ends, and the expiry is extended while held.
type RedisLocker struct {
	cache      *cache.RedisCache
	ttl        time.Duration
	retryDelay time.Duration
}

var _ chat.Locker = (*RedisLocker)(nil)

func NewRedisLocker(redisCache *cache.RedisCache, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{cache: redisCache, ttl: ttl, retryDelay: DefaultRetryDelay}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.cache.NewMutex(cache.Key(lockKeyPrefix+key), l.ttl,
		// bounded by ctx, not by a retry count
		redsync.WithTries(math.MaxInt32),
		redsync.WithRetryDelay(l.retryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	stop := make(chan struct{})
	stopped := make(chan struct{})
	go l.keepAlive(mutex, key, stop, stopped)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-stopped

			// the caller may already be cancelled; unlocking must still reach redis
			unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := mutex.UnlockContext(unlockCtx); err != nil {
				log := logger.GetLogger()
				log.Error().Err(err).Str("key", key).Msg("Failed to unlock mutex")
			}
		})
	}, nil
}

// keepAlive extends the mutex every third of its TTL until stop is closed.
func (l *RedisLocker) keepAlive(mutex *redsync.Mutex, key string, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	interval := l.ttl / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			ok, err := mutex.ExtendContext(ctx)
			cancel()
			if !ok || err != nil {
				log := logger.GetLogger()
				log.Warn().Err(err).Str("key", key).Msg("Failed to extend mutex")
			}
		}
	}
}
