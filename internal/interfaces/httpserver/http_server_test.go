package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"koita-chat-api/internal/config"
	"koita-chat-api/internal/infrastructure/cache"
	"koita-chat-api/internal/interfaces/httpserver/handlers"
	middleware "koita-chat-api/internal/interfaces/httpserver/middlewares"
	"koita-chat-api/internal/interfaces/httpserver/responses"
	"koita-chat-api/internal/interfaces/httpserver/routes"
)

func newTestServer(t *testing.T) (*HTTPServer, sqlmock.Sqlmock) {
	t.Helper()
	return newTestServerWithConfig(t, nil)
}

func newTestServerWithConfig(t *testing.T, adjust func(cfg *config.Config)) (*HTTPServer, sqlmock.Sqlmock) {
	t.Helper()
	return buildTestServer(t, adjust, nil)
}

func buildTestServer(t *testing.T, adjust func(cfg *config.Config), redisCache *cache.RedisCache) (*HTTPServer, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	cfg := &config.Config{
		ServiceName:     "chat-api",
		FrontendURL:     "http://localhost:3000",
		RateLimit:       "100-15M",
		BodyLimitBytes:  1 << 20,
		EnableSwagger:   true,
		ShutdownTimeout: time.Second,
	}
	if adjust != nil {
		adjust(cfg)
	}

	handlerProvider := handlers.NewProvider(nil, nil, nil, nil, nil, nil, zerolog.Nop())
	routeProvider := routes.NewProvider(handlerProvider, nil, zerolog.Nop())
	store, err := middleware.NewRateLimitStore(nil)
	require.NoError(t, err)

	server, err := NewHTTPServer(cfg, zerolog.Nop(), routeProvider, db, redisCache, store)
	require.NoError(t, err)
	return server, mock
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body responses.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, HealthMessage, body.Message)
	assert.Equal(t, []string{"auth", "chat", "voice", "profiles", "search"}, body.Features)
	assert.False(t, body.Timestamp.IsZero())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestReadiness(t *testing.T) {
	server, mock := newTestServer(t)

	mock.ExpectPing()
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadyzChecksRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisCache(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	server, mock := buildTestServer(t, nil, redisCache)

	mock.ExpectPing()
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	mr.Close()
	mock.ExpectPing()
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server, _ := newTestServer(t)

	for _, path := range []string{"/api/chat/conversations", "/api/users/profile", "/api/voice/voices"} {
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, w.Body.String(), middleware.MsgTokenRequired, path)
	}
}

func TestSwaggerDocIsValidJSON(t *testing.T) {
	server, _ := newTestServer(t)

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/api/chat/send")
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	server, _ := newTestServerWithConfig(t, func(cfg *config.Config) {
		cfg.RateLimit = "2-M"
	})

	statuses := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, []int{
		http.StatusOK, http.StatusOK,
		http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, statuses)
}

func TestRateLimitHonorsTrustedProxy(t *testing.T) {
	server, _ := newTestServerWithConfig(t, func(cfg *config.Config) {
		cfg.RateLimit = "2-M"
		cfg.TrustedProxies = []string{"10.0.0.0/8"}
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.RemoteAddr = "10.1.2.3:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "client %d", i+1)
	}
}

func TestInvalidTrustedProxyIsRejected(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	store, err := middleware.NewRateLimitStore(nil)
	require.NoError(t, err)
	routeProvider := routes.NewProvider(handlers.NewProvider(nil, nil, nil, nil, nil, nil, zerolog.Nop()), nil, zerolog.Nop())

	_, err = NewHTTPServer(&config.Config{RateLimit: "100-15M", TrustedProxies: []string{"not-an-ip"}},
		zerolog.Nop(), routeProvider, db, nil, store)
	assert.Error(t, err)
}
