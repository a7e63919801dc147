package search

import (
	"context"
	"errors"
	"time"

	domainsearch "koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/infrastructure/cache"
	"koita-chat-api/internal/infrastructure/logger"
)

// ResultStore caches successful search results.
type ResultStore interface {
	Get(ctx context.Context, key string) (domainsearch.Result, bool)
	Set(ctx context.Context, key string, result domainsearch.Result, ttl time.Duration)
}

type MemoryResultStore struct {
	cache *cache.MemoryCache[domainsearch.Result]
}

func NewMemoryResultStore(size int) (*MemoryResultStore, error) {
	if size <= 0 {
		size = 256
	}
	c, err := cache.NewMemoryCache[domainsearch.Result](size, 10*time.Minute)
	if err != nil {
		return nil, err
	}
	return &MemoryResultStore{cache: c}, nil
}

func (s *MemoryResultStore) Get(_ context.Context, key string) (domainsearch.Result, bool) {
	return s.cache.Get(key)
}

func (s *MemoryResultStore) Set(_ context.Context, key string, result domainsearch.Result, ttl time.Duration) {
	s.cache.Set(key, result, ttl)
}

// RedisResultStore shares cached results between replicas.
type RedisResultStore struct {
	cache *cache.RedisCache
}

func NewRedisResultStore(redisCache *cache.RedisCache) *RedisResultStore {
	return &RedisResultStore{cache: redisCache}
}

func (s *RedisResultStore) Get(ctx context.Context, key string) (domainsearch.Result, bool) {
	result, err := cache.GetJSON[domainsearch.Result](ctx, s.cache, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log := logger.GetLogger()
			log.Warn().Err(err).Msg("search cache read failed")
		}
		return domainsearch.Result{}, false
	}
	return *result, true
}

func (s *RedisResultStore) Set(ctx context.Context, key string, result domainsearch.Result, ttl time.Duration) {
	if err := cache.SetJSON(ctx, s.cache, key, result, ttl); err != nil {
		log := logger.GetLogger()
		log.Warn().Err(err).Msg("search cache write failed")
	}
}
