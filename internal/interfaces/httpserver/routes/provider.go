package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/interfaces/httpserver/handlers"
	"koita-chat-api/internal/interfaces/httpserver/middlewares"
	"koita-chat-api/internal/interfaces/httpserver/routes/api"
)

// Provider coordinates all route registrations.
type Provider struct {
	API *api.Routes
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider, authenticator middlewares.Authenticator, log zerolog.Logger) *Provider {
	return &Provider{
		API: api.NewRoutes(handlerProvider, middlewares.AuthMiddleware(authenticator, log)),
	}
}

// Register attaches all available routes; extra middleware (rate limiting) applies to /api only.
func (p *Provider) Register(engine *gin.Engine, apiMiddleware ...gin.HandlerFunc) {
	p.API.Register(engine.Group("/api", apiMiddleware...))
}
