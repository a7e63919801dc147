package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/auth"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	principalContextKey = "principal"
	authTokenHeader     = "X-Auth-Token"

	MsgTokenRequired = "Token d'accès requis"
)

// Authenticator resolves a bearer token to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// AuthMiddleware requires a valid bearer token and stores the caller's principal.
func AuthMiddleware(authenticator Authenticator, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			logger.Debug().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			platformerrors.WriteUnauthorized(c, MsgTokenRequired)
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			platformerrors.WriteError(c, err, logger)
			return
		}

		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (auth.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return auth.Principal{}, false
	}
	principal, ok := val.(auth.Principal)
	return principal, ok
}

func tokenFromRequest(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return strings.TrimSpace(c.GetHeader(authTokenHeader))
}
