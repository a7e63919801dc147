package chat

import (
	"context"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/usersettings"
)

const (
	// HistoryLimit is how many of the latest messages are sent to the model.
	HistoryLimit = 10

	// WebContextPrefix introduces search context injected as a system message.
	WebContextPrefix = "Informations web récentes: "

	MsgMissingMessage   = "Message manquant"
	MsgGenerationFailed = "Erreur lors de la génération"
)

// Message is one turn sent to the model.
type Message struct {
	Role    conversation.Role
	Content string
}

// Completion is a buffered model reply.
type Completion struct {
	Content      string
	Model        string
	FinishReason string
}

// TokenHandler receives each non-empty text delta. Returning an error aborts the stream.
type TokenHandler func(delta string) error

// ModelGateway talks to the chat-completion provider.
type ModelGateway interface {
	ChatCompletion(ctx context.Context, messages []Message, opts usersettings.ModelOptions) (*Completion, error)
	// StreamChatCompletion relays deltas to onToken and returns the accumulated reply.
	// The partial reply is returned alongside any error.
	StreamChatCompletion(ctx context.Context, messages []Message, opts usersettings.ModelOptions, onToken TokenHandler) (string, error)
}

// Locker serializes work on a key across concurrent requests.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type EventType string

const (
	EventChunk        EventType = "chunk"
	EventConversation EventType = "conversation"
	EventDone         EventType = "done"
	EventError        EventType = "error"
)

// Event is one server-sent event of the chat stream.
type Event struct {
	Content        string    `json:"content,omitempty"`
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversationId,omitempty"`
}

// EventSink is the downstream side of the relay.
// Start commits the streaming response; nothing may be written before it.
type EventSink interface {
	Start() error
	Send(event Event) error
}

// SettingsProvider resolves a user's generation preferences.
type SettingsProvider interface {
	Get(ctx context.Context, userID string) (*usersettings.UserSettings, error)
}

type SendInput struct {
	UserID         string
	Message        string
	ConversationID string
	IsTemp         bool
	UseWebSearch   bool
}

type SendResult struct {
	ConversationID string
	Created        bool
	Reply          string
	Model          string
	// Interrupted is set when the stream failed after it had started.
	Interrupted bool
}
