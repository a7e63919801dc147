package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"gorm.io/gorm"

	_ "koita-chat-api/docs/swagger"
	"koita-chat-api/internal/config"
	"koita-chat-api/internal/infrastructure/cache"
	"koita-chat-api/internal/infrastructure/database"
	middleware "koita-chat-api/internal/interfaces/httpserver/middlewares"
	"koita-chat-api/internal/interfaces/httpserver/responses"
	"koita-chat-api/internal/interfaces/httpserver/routes"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	HealthMessage = "Backend Mistral Chat complet en ligne!"
	readyTimeout  = 2 * time.Second
)

var healthFeatures = []string{"auth", "chat", "voice", "profiles", "search"}

// HTTPServer wraps the gin engine with graceful shutdown helpers.
type HTTPServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
	db     *gorm.DB
	redis  *cache.RedisCache
}

// NewHTTPServer constructs the HTTP server with default middleware and routes.
// redisCache may be nil when redis is not configured.
func NewHTTPServer(
	cfg *config.Config,
	log zerolog.Logger,
	routeProvider *routes.Provider,
	db *gorm.DB,
	redisCache *cache.RedisCache,
	rateLimitStore limiter.Store,
) (*HTTPServer, error) {
	gin.SetMode(gin.ReleaseMode)

	server := &HTTPServer{
		cfg:    cfg,
		engine: gin.New(),
		log:    log,
		db:     db,
		redis:  redisCache,
	}

	// client IPs feed the rate limiter; forwarded headers only count from known proxies
	if err := server.engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	server.engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		platformerrors.WriteInternalError(c, platformerrors.GenericErrorMessage)
	}))
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(log))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	server.engine.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	server.engine.Use(middleware.BodyLimit(cfg.BodyLimitBytes))

	server.bindHealth()
	if cfg.EnableSwagger {
		server.engine.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	rateLimit, err := middleware.RateLimitMiddleware(cfg.RateLimit, rateLimitStore, log)
	if err != nil {
		return nil, err
	}
	routeProvider.Register(server.engine, rateLimit)

	return server, nil
}

func (s *HTTPServer) bindHealth() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.HealthResponse{
			Status:    "OK",
			Message:   HealthMessage,
			Features:  healthFeatures,
			Timestamp: time.Now().UTC(),
		})
	})

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	s.engine.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := database.Ping(ctx, s.db); err != nil {
			s.log.Warn().Err(err).Str("dependency", "database").Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		if s.redis != nil {
			if err := s.redis.HealthCheck(ctx); err != nil {
				s.log.Warn().Err(err).Str("dependency", "redis").Msg("readiness check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}

// Handler exposes the engine for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HTTPServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
