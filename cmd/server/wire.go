//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/config"
	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/user"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/domain/voice"
	"koita-chat-api/internal/infrastructure/database/repository/conversationrepo"
	"koita-chat-api/internal/infrastructure/database/repository/userrepo"
	"koita-chat-api/internal/infrastructure/database/repository/usersettingsrepo"
	"koita-chat-api/internal/infrastructure/database/transaction"
	"koita-chat-api/internal/interfaces/httpserver"
	"koita-chat-api/internal/interfaces/httpserver/handlers"
	"koita-chat-api/internal/interfaces/httpserver/middlewares"
	"koita-chat-api/internal/interfaces/httpserver/routes"
)

var infrastructureSet = wire.NewSet(
	newDatabaseConfig,
	newGormDB,
	transaction.NewDatabase,
	newRedisCache,
	newLocker,
	newRateLimitStore,
	newTokenService,
	newPasswordHasher,
	newModelGateway,
	newSearchProvider,
)

var repositorySet = wire.NewSet(
	userrepo.NewUserGormRepository,
	usersettingsrepo.NewUserSettingsGormRepository,
	conversationrepo.NewConversationGormRepository,
)

var domainSet = wire.NewSet(
	usersettings.NewService,
	conversation.NewService,
	newUserService,
	newOrchestrator,
	voice.NewService,
	wire.Bind(new(handlers.VoiceService), new(*voice.Service)),
	wire.Bind(new(middlewares.Authenticator), new(*user.Service)),
)

// CreateApplication assembles the server object graph from the provider sets.
func CreateApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		newHandlerProvider,
		routes.NewProvider,
		httpserver.NewHTTPServer,
		newCrontab,
		NewApplication,
	)
	return nil, nil, nil
}
