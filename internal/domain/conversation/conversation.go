package conversation

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

const (
	// ListLimit bounds the conversation listing.
	ListLimit = 50
	// ProfileListLimit bounds the recent conversations embedded in the profile.
	ProfileListLimit = 5
)

type Conversation struct {
	ID        string
	UserID    string
	Title     string
	IsTemp    bool
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID             string
	ConversationID string
	Role           Role
	Content        string
	CreatedAt      time.Time
}

// Repository persists conversations and their append-only message log.
// Every conversation lookup is scoped by the owning user.
type Repository interface {
	Create(ctx context.Context, conv *Conversation) (*Conversation, error)
	FindByIDForUser(ctx context.Context, id, userID string) (*Conversation, error)
	FindWithMessagesForUser(ctx context.Context, id, userID string) (*Conversation, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]*Conversation, error)
	ListRecentForUser(ctx context.Context, userID string, limit int) ([]*Conversation, error)
	UpdateTitle(ctx context.Context, id, title string) error
	Touch(ctx context.Context, id string, at time.Time) error
	DeleteForUser(ctx context.Context, id, userID string) (bool, error)
	DeleteTemporaryBefore(ctx context.Context, cutoff time.Time) (int64, error)

	AppendMessage(ctx context.Context, msg *Message) (*Message, error)
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)
	CountMessages(ctx context.Context, conversationID string) (int64, error)
}
