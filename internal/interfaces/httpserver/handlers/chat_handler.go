package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/chat"
	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/infrastructure/metrics"
	"koita-chat-api/internal/interfaces/httpserver/middlewares"
	"koita-chat-api/internal/interfaces/httpserver/requests"
	"koita-chat-api/internal/interfaces/httpserver/responses"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	MsgTemporaryNote       = "Conversation non sauvegardée"
	MsgConversationDeleted = "Conversation supprimée"

	streamOutcomeCompleted   = "completed"
	streamOutcomeFailed      = "failed"
	streamOutcomeInterrupted = "interrupted"
	streamOutcomeCancelled   = "cancelled"
)

// ChatService runs chat turns.
type ChatService interface {
	Send(ctx context.Context, in chat.SendInput, sink chat.EventSink) (*chat.SendResult, error)
	TempChat(ctx context.Context, message string) (string, error)
}

// ConversationService reads and deletes a user's conversations.
type ConversationService interface {
	List(ctx context.Context, userID string) ([]*conversation.Conversation, error)
	Get(ctx context.Context, userID, id string) (*conversation.Conversation, error)
	Delete(ctx context.Context, userID, id string) error
}

// ChatHandler exposes the /api/chat endpoints.
type ChatHandler struct {
	chat          ChatService
	conversations ConversationService
	log           zerolog.Logger
}

func NewChatHandler(chatService ChatService, conversations ConversationService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chat:          chatService,
		conversations: conversations,
		log:           log.With().Str("handler", "chat").Logger(),
	}
}

// Send handles POST /api/chat/send
// @Summary Send a chat message
// @Description Streams the assistant reply as server-sent events: one "conversation" event,
// @Description then "chunk" events, then "done" (or "error" when the model fails mid-stream)
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce text/event-stream
// @Param request body requests.SendMessageRequest true "Message"
// @Success 200 {object} chat.Event
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /api/chat/send [post]
func (h *ChatHandler) Send(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req requests.SendMessageRequest
	if !bindJSON(c, &req, h.log) {
		return
	}

	metrics.ActiveStreams.Inc()
	defer metrics.ActiveStreams.Dec()

	sink := middlewares.NewSSESink(c)
	result, err := h.chat.Send(c.Request.Context(), chat.SendInput{
		UserID:         principal.UserID,
		Message:        req.Message,
		ConversationID: req.ConversationID,
		IsTemp:         req.IsTemp,
		UseWebSearch:   req.UseWebSearch,
	}, sink)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			metrics.RecordChatStream(streamOutcomeCancelled)
			h.log.Debug().Str("user_id", principal.UserID).Msg("chat send cancelled by client")
			c.Abort()
			return
		}
		metrics.RecordChatStream(streamOutcomeFailed)
		if sink.Started() {
			h.log.Error().Err(err).Str("user_id", principal.UserID).Msg("chat send failed after stream start")
			return
		}
		platformerrors.WriteError(c, err, h.log)
		return
	}

	if result.Created {
		metrics.RecordConversationCreated(req.IsTemp)
	}

	switch {
	case c.Request.Context().Err() != nil:
		metrics.RecordChatStream(streamOutcomeCancelled)
	case result.Interrupted:
		metrics.RecordChatStream(streamOutcomeInterrupted)
	default:
		metrics.RecordChatStream(streamOutcomeCompleted)
	}
}

// ListConversations handles GET /api/chat/conversations
// @Summary List conversations
// @Description Saved conversations, most recently updated first, each with its latest message
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ConversationListResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /api/chat/conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	conversations, err := h.conversations.List(c.Request.Context(), principal.UserID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.NewConversationListResponse(conversations))
}

// GetConversation handles GET /api/chat/conversations/:id
// @Summary Get a conversation
// @Description Returns a conversation owned by the caller with its full transcript
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} responses.ConversationDetailResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /api/chat/conversations/{id} [get]
func (h *ChatHandler) GetConversation(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	conv, err := h.conversations.Get(c.Request.Context(), principal.UserID, c.Param("id"))
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.ConversationDetailResponse{Conversation: responses.NewConversationDetail(conv)})
}

// DeleteConversation handles DELETE /api/chat/conversations/:id
// @Summary Delete a conversation
// @Tags Chat
// @Security BearerAuth
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /api/chat/conversations/{id} [delete]
func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.conversations.Delete(c.Request.Context(), principal.UserID, c.Param("id")); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: MsgConversationDeleted})
}

// TempChat handles POST /api/chat/temp-chat
// @Summary Temporary chat
// @Description One buffered reply with default model options; nothing is stored
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body requests.TempChatRequest true "Message"
// @Success 200 {object} responses.TempChatResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /api/chat/temp-chat [post]
func (h *ChatHandler) TempChat(c *gin.Context) {
	var req requests.TempChatRequest
	if !bindJSON(c, &req, h.log) {
		return
	}

	reply, err := h.chat.TempChat(c.Request.Context(), req.Message)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.TempChatResponse{
		Response:  reply,
		Temporary: true,
		Note:      MsgTemporaryNote,
	})
}
