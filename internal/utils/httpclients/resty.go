package httpclients

import (
	"context"
	"time"

	"resty.dev/v3"

	"koita-chat-api/internal/infrastructure/logger"
	"koita-chat-api/internal/utils/platformerrors"
)

type HTTPClientStartsAt struct{}

// NewClient returns a resty client that logs every upstream call at debug level.
// Request and response bodies are not logged; they carry prompts and API keys.
func NewClient(clientName string, timeout time.Duration) *resty.Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		ctx := context.WithValue(r.Context(), HTTPClientStartsAt{}, time.Now())
		r.SetContext(ctx)
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		startTime, _ := r.Request.Context().Value(HTTPClientStartsAt{}).(time.Time)
		requestID, _ := r.Request.Context().Value(platformerrors.RequestIDKey{}).(string)

		event := log.Debug().
			Str("request_id", requestID).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		if raw := r.Request.RawRequest; raw != nil {
			event = event.Str("method", raw.Method).Str("path", raw.URL.Path)
		}
		event.Msg("HTTP client request")
		return nil
	})
	return client
}
