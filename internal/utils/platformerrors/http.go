package platformerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// GenericErrorMessage is returned to clients for every server-side failure.
const GenericErrorMessage = "Erreur interne du serveur"

// PublicMessageKey names the context field holding a client-safe message for external failures.
const PublicMessageKey = "public_message"

// HTTPErrorResponse is the error body understood by the web client.
type HTTPErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteHTTPError logs a PlatformError and writes its client-safe representation.
func WriteHTTPError(c *gin.Context, err *PlatformError, log zerolog.Logger) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPErrorResponse{Error: GenericErrorMessage})
		return
	}

	LogError(log, err)

	status := ErrorTypeToHTTPStatus(err.Type)
	c.AbortWithStatusJSON(status, HTTPErrorResponse{
		Error:     ClientMessage(err),
		Code:      err.UUID,
		RequestID: err.RequestID,
	})
}

// WriteError writes any error as an HTTP response; non platform errors are internal.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	if err == nil {
		WriteHTTPError(c, nil, log)
		return
	}

	if platformErr := GetPlatformError(err); platformErr != nil {
		WriteHTTPError(c, platformErr, log)
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPErrorResponse{Error: GenericErrorMessage})
}

// WriteValidationError writes a 400 Bad Request response.
func WriteValidationError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, HTTPErrorResponse{Error: message})
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, HTTPErrorResponse{Error: message})
}

// WriteInternalError writes a 500 response carrying a caller-chosen generic message.
func WriteInternalError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, HTTPErrorResponse{Error: message})
}

// ClientMessage returns the message safe to expose for the error.
// Upstream, database and internal failures never leak their detail.
func ClientMessage(err *PlatformError) string {
	switch err.Type {
	case ErrorTypeInternal, ErrorTypeDatabaseError:
		return GenericErrorMessage
	case ErrorTypeExternal:
		for current := err; current != nil; {
			if msg, ok := current.Context[PublicMessageKey].(string); ok && msg != "" {
				return msg
			}
			current = GetPlatformError(current.Err)
		}
		return GenericErrorMessage
	default:
		return RootMessage(err)
	}
}
