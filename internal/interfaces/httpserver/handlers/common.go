package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/auth"
	"koita-chat-api/internal/interfaces/httpserver/middlewares"
	"koita-chat-api/internal/interfaces/httpserver/requests"
	"koita-chat-api/internal/utils/platformerrors"
)

// bindJSON decodes and validates the body into req, writing the error response on failure.
func bindJSON(c *gin.Context, req any, log zerolog.Logger) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if middlewares.IsBodyTooLarge(err) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, platformerrors.HTTPErrorResponse{
				Error:     "Requête trop volumineuse",
				RequestID: middlewares.RequestIDFromContext(c),
			})
			return false
		}
		platformerrors.WriteValidationError(c, requests.MsgInvalidRequest)
		return false
	}
	if err := requests.Validate(c.Request.Context(), req); err != nil {
		platformerrors.WriteHTTPError(c, platformerrors.GetPlatformError(err), log)
		return false
	}
	return true
}

// requirePrincipal returns the caller set by AuthMiddleware.
func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok || principal.UserID == "" {
		platformerrors.WriteUnauthorized(c, middlewares.MsgTokenRequired)
		return auth.Principal{}, false
	}
	return principal, true
}
