package dbschema

import (
	"time"

	"koita-chat-api/internal/domain/conversation"
)

// Message rows are append-only; there is no UpdatedAt.
type Message struct {
	ID             string    `gorm:"type:varchar(40);primaryKey"`
	ConversationID string    `gorm:"type:varchar(40);not null;index:ix_messages_conversation_created,priority:1"`
	Role           string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"not null;index:ix_messages_conversation_created,priority:2"`
}

func NewSchemaMessage(m *conversation.Message) *Message {
	return &Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           string(m.Role),
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func (m *Message) EtoD() conversation.Message {
	return conversation.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           conversation.Role(m.Role),
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}
