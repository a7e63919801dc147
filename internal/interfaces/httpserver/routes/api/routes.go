package api

import (
	"github.com/gin-gonic/gin"

	"koita-chat-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates the /api route registration.
type Routes struct {
	handlers *handlers.Provider
	auth     gin.HandlerFunc
}

// NewRoutes builds the /api route registrar; auth guards every protected route.
func NewRoutes(handlerProvider *handlers.Provider, auth gin.HandlerFunc) *Routes {
	return &Routes{
		handlers: handlerProvider,
		auth:     auth,
	}
}

// Register attaches all routes under the given /api group.
func (r *Routes) Register(group *gin.RouterGroup) {
	registerAuthRoutes(group.Group("/auth"), r.handlers.Auth)
	registerChatRoutes(group.Group("/chat"), r.handlers.Chat, r.auth)
	registerUserRoutes(group.Group("/users", r.auth), r.handlers.User)
	registerVoiceRoutes(group.Group("/voice", r.auth), r.handlers.Voice)
}

func registerAuthRoutes(router gin.IRoutes, handler *handlers.AuthHandler) {
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)
	router.POST("/logout", handler.Logout)
}

func registerChatRoutes(router gin.IRoutes, handler *handlers.ChatHandler, auth gin.HandlerFunc) {
	router.POST("/send", auth, handler.Send)
	router.GET("/conversations", auth, handler.ListConversations)
	router.GET("/conversations/:id", auth, handler.GetConversation)
	router.DELETE("/conversations/:id", auth, handler.DeleteConversation)
	// temporary chat is public
	router.POST("/temp-chat", handler.TempChat)
}

func registerUserRoutes(router gin.IRoutes, handler *handlers.UserHandler) {
	router.GET("/profile", handler.GetProfile)
	router.PUT("/profile", handler.UpdateProfile)
	router.PUT("/settings", handler.UpdateSettings)
	router.PUT("/password", handler.ChangePassword)
}

func registerVoiceRoutes(router gin.IRoutes, handler *handlers.VoiceHandler) {
	router.GET("/voices", handler.Voices)
	router.POST("/text-to-speech", handler.TextToSpeech)
	router.POST("/speech-to-text", handler.SpeechToText)
}
