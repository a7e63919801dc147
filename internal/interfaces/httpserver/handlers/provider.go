package handlers

import (
	"github.com/rs/zerolog"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Auth  *AuthHandler
	Chat  *ChatHandler
	User  *UserHandler
	Voice *VoiceHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	accounts AccountService,
	chatService ChatService,
	conversations ConversationService,
	profiles ProfileService,
	settings SettingsService,
	voices VoiceService,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Auth:  NewAuthHandler(accounts, log),
		Chat:  NewChatHandler(chatService, conversations, log),
		User:  NewUserHandler(profiles, settings, log),
		Voice: NewVoiceHandler(voices, log),
	}
}
