package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"koita-chat-api/internal/config"
	"koita-chat-api/internal/domain/chat"
	"koita-chat-api/internal/domain/conversation"
	domainsearch "koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/domain/user"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/infrastructure/auth"
	"koita-chat-api/internal/infrastructure/cache"
	"koita-chat-api/internal/infrastructure/crontab"
	"koita-chat-api/internal/infrastructure/database"
	"koita-chat-api/internal/infrastructure/database/transaction"
	"koita-chat-api/internal/infrastructure/inference"
	"koita-chat-api/internal/infrastructure/lock"
	"koita-chat-api/internal/infrastructure/logger"
	"koita-chat-api/internal/infrastructure/search"
	"koita-chat-api/internal/interfaces/httpserver/handlers"
	"koita-chat-api/internal/interfaces/httpserver/middlewares"
	"koita-chat-api/internal/utils/httpclients"
	chatclient "koita-chat-api/internal/utils/httpclients/chat"
)

// lockSlack covers reply persistence after the model stream ends.
const lockSlack = 30 * time.Second

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return log.With().Str("service", cfg.ServiceName).Logger(), nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DatabaseURL: cfg.DatabaseURL,
		ReadReplica: cfg.DatabaseRead1,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg *config.Config, dbCfg database.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(ctx, db); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

// newRedisCache returns nil when REDIS_URL is unset; callers fall back to in-process stores.
func newRedisCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*cache.RedisCache, func(), error) {
	if cfg.RedisURL == "" {
		log.Info().Msg("redis not configured, using in-process locks and rate limit store")
		return nil, func() {}, nil
	}
	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}, nil
}

func newLocker(cfg *config.Config, redisCache *cache.RedisCache) chat.Locker {
	if redisCache == nil {
		return lock.NewLocalLocker()
	}
	return lock.NewRedisLocker(redisCache, cfg.HTTPTimeout+lockSlack)
}

func newRateLimitStore(redisCache *cache.RedisCache) (limiter.Store, error) {
	if redisCache == nil {
		return middlewares.NewRateLimitStore(nil)
	}
	return middlewares.NewRateLimitStore(redisCache.Client())
}

func newTokenService(cfg *config.Config) (*auth.TokenService, error) {
	return auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
}

func newPasswordHasher(cfg *config.Config) *auth.BcryptHasher {
	return auth.NewBcryptHasher(cfg.BcryptCost)
}

func newModelGateway(cfg *config.Config) *inference.MistralGateway {
	client := chatclient.NewChatCompletionClient(
		httpclients.NewClient("MistralClient", cfg.HTTPTimeout),
		"mistral",
		cfg.MistralBaseURL,
		cfg.MistralAPIKey,
	)
	return inference.NewMistralGateway(client)
}

func newSearchProvider(cfg *config.Config, redisCache *cache.RedisCache) (domainsearch.Provider, error) {
	return search.NewProvider(search.Config{
		Provider:  cfg.SearchProvider,
		APIKey:    cfg.SearchAPIKey(),
		Timeout:   cfg.SearchTimeout,
		CacheTTL:  cfg.SearchCacheTTL,
		CacheSize: cfg.SearchCacheSize,
	}, redisCache)
}

func newUserService(
	users user.Repository,
	settings usersettings.Repository,
	conversations conversation.Repository,
	db *transaction.Database,
	hasher *auth.BcryptHasher,
	tokens *auth.TokenService,
	log zerolog.Logger,
) *user.Service {
	return user.NewService(users, settings, conversations, db, hasher, tokens, tokens, log)
}

func newOrchestrator(
	conversations conversation.Repository,
	settings *usersettings.Service,
	model *inference.MistralGateway,
	searchProvider domainsearch.Provider,
	locker chat.Locker,
	log zerolog.Logger,
) *chat.Orchestrator {
	return chat.NewOrchestrator(conversations, settings, model, searchProvider, locker, log)
}

func newHandlerProvider(
	users *user.Service,
	orchestrator *chat.Orchestrator,
	conversations *conversation.Service,
	settings *usersettings.Service,
	voices handlers.VoiceService,
	log zerolog.Logger,
) *handlers.Provider {
	return handlers.NewProvider(users, orchestrator, conversations, users, settings, voices, log)
}

func newCrontab(cfg *config.Config, conversations *conversation.Service) *crontab.Crontab {
	return crontab.NewCrontab(conversations, crontab.Config{
		PurgeSchedule: cfg.TempConversationPurgeCron,
		Retention:     cfg.TempConversationTTL,
	})
}
