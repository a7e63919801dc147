package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"koita-chat-api/internal/infrastructure/logger"
)

const CacheVersion = "v1"

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = redis.Nil

type RedisCache struct {
	client redis.UniversalClient
	rs     *redsync.Redsync
}

// NewRedisCache connects to one address, or a cluster when given a comma separated list.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("Redis URL must be provided")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	log := logger.GetLogger()
	if len(opts.Addrs) > 1 && opts.DB != 0 {
		log.Warn().Msg("Ignoring non-zero DB when using Redis Cluster configuration")
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Msg("Successfully connected to Redis cache")
	return &RedisCache{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
	}, nil
}

func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
		if opts.DialTimeout == 0 {
			opts.DialTimeout = parsed.DialTimeout
		}
		if opts.PoolSize == 0 {
			opts.PoolSize = parsed.PoolSize
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no Redis addresses provided")
	}
	return opts, nil
}

// Client exposes the underlying client for stores that need it, such as the rate limiter.
func (r *RedisCache) Client() redis.UniversalClient {
	return r.client
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get returns ErrCacheMiss when the key is absent.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get value from cache: %w", err)
	}
	return val, nil
}

func SetJSON[T any](ctx context.Context, rdb *RedisCache, key string, value T, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON for cache: %w", err)
	}
	return rdb.Set(ctx, key, string(raw), expiration)
}

func GetJSON[T any](ctx context.Context, rdb *RedisCache, key string) (*T, error) {
	val, err := rdb.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var obj T
	if unmarshalErr := json.Unmarshal([]byte(val), &obj); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from cache: %w", unmarshalErr)
	}
	return &obj, nil
}

// NewMutex returns a distributed mutex on name; opts tune retries.
func (r *RedisCache) NewMutex(name string, ttl time.Duration, opts ...redsync.Option) *redsync.Mutex {
	return r.rs.NewMutex(name, append([]redsync.Option{redsync.WithExpiry(ttl)}, opts...)...)
}

// HealthCheck pings redis.
func (r *RedisCache) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Key namespaces a cache key with the cache version.
func Key(parts ...string) string {
	return CacheVersion + ":" + strings.Join(parts, ":")
}
