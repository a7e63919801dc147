package search

import (
	"time"

	domainsearch "koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/infrastructure/cache"
	"koita-chat-api/internal/utils/httpclients"
)

type Config struct {
	Provider  string
	APIKey    string
	Timeout   time.Duration
	CacheTTL  time.Duration
	CacheSize int
}

// NewProvider builds the configured backend wrapped with caching and a circuit breaker.
// The redis cache is optional; without it results are cached in process.
func NewProvider(cfg Config, redisCache *cache.RedisCache) (*ResilientProvider, error) {
	client := httpclients.NewClient("search-"+cfg.Provider, cfg.Timeout)

	var backend domainsearch.Provider
	switch cfg.Provider {
	case ProviderTavily:
		backend = NewTavilyProvider(client, cfg.APIKey)
	default:
		backend = NewSerperProvider(client, cfg.APIKey)
	}

	var store ResultStore
	if redisCache != nil {
		store = NewRedisResultStore(redisCache)
	} else {
		memory, err := NewMemoryResultStore(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		store = memory
	}

	return NewResilientProvider(backend, store, cfg.CacheTTL), nil
}
