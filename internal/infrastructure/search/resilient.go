package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	domainsearch "koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/infrastructure/cache"
	"koita-chat-api/internal/infrastructure/logger"
	"koita-chat-api/internal/infrastructure/metrics"
)

const (
	breakerConsecutiveFailures = 5
	breakerOpenTimeout         = 30 * time.Second

	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeCached      = "cached"
	OutcomeCircuitOpen = "circuit_open"
	OutcomeUnavailable = "not_configured"
)

var errSearchFailed = errors.New("search failed")

// ResilientProvider adds a result cache and a circuit breaker in front of a provider.
// Unconfigured results do not count as breaker failures.
type ResilientProvider struct {
	next    domainsearch.Provider
	store   ResultStore
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
}

var _ domainsearch.Provider = (*ResilientProvider)(nil)

func NewResilientProvider(next domainsearch.Provider, store ResultStore, ttl time.Duration) *ResilientProvider {
	log := logger.GetLogger()
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "search-" + next.Name(),
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("search circuit breaker state changed")
		},
	})
	return &ResilientProvider{next: next, store: store, ttl: ttl, breaker: breaker}
}

func (p *ResilientProvider) Name() string {
	return p.next.Name()
}

func (p *ResilientProvider) Search(ctx context.Context, query string) domainsearch.Result {
	key := cacheKey(p.next.Name(), query)
	if p.store != nil {
		if cached, ok := p.store.Get(ctx, key); ok {
			metrics.RecordSearch(p.Name(), OutcomeCached)
			cached.Query = query
			return cached
		}
	}

	var result domainsearch.Result
	_, err := p.breaker.Execute(func() (any, error) {
		result = p.next.Search(ctx, query)
		if !result.Success && result.Error != domainsearch.MsgNotConfigured {
			return nil, errSearchFailed
		}
		return nil, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordSearch(p.Name(), OutcomeCircuitOpen)
		return domainsearch.Failed(query, domainsearch.MsgFailed)
	case err != nil:
		metrics.RecordSearch(p.Name(), OutcomeFailure)
		return result
	case !result.Success:
		metrics.RecordSearch(p.Name(), OutcomeUnavailable)
		return result
	}

	metrics.RecordSearch(p.Name(), OutcomeSuccess)
	if p.store != nil {
		p.store.Set(ctx, key, result, p.ttl)
	}
	return result
}

// State reports the breaker state, for diagnostics.
func (p *ResilientProvider) State() gobreaker.State {
	return p.breaker.State()
}

func cacheKey(provider, query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return cache.Key("search", provider, normalized)
}
