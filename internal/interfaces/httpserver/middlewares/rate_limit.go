package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"koita-chat-api/internal/utils/platformerrors"
)

const (
	rateLimitPrefix  = "koita:ratelimit"
	MsgRateLimited   = "Trop de requêtes, veuillez réessayer plus tard."
	rateLimitErrUUID = "3c5e7a9b-1d2f-4e6a-8b0c-2d4f6a8c0e57"
)

// NewRateLimitStore returns a Redis store when a client is given, otherwise an in-process one.
func NewRateLimitStore(client redis.UniversalClient) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix}), nil
	}
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
}

// RateLimitMiddleware limits requests per client IP. rate uses the limiter format, e.g. "100-15M".
func RateLimitMiddleware(rate string, store limiter.Store, logger zerolog.Logger) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	return mgin.NewMiddleware(
		limiter.New(store, parsed),
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return "ip:" + c.ClientIP()
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn().
				Str("client_ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("rate limit reached")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, platformerrors.HTTPErrorResponse{
				Error:     MsgRateLimited,
				Code:      rateLimitErrUUID,
				RequestID: RequestIDFromContext(c),
			})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// fail open when the store is unreachable
			logger.Error().Err(err).Msg("rate limit store failure")
			c.Next()
		}),
	), nil
}
