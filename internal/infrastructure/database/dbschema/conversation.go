package dbschema

import (
	"koita-chat-api/internal/domain/conversation"
)

type Conversation struct {
	BaseModel
	UserID   string    `gorm:"type:varchar(40);not null;index:ix_conversations_user_updated,priority:1"`
	Title    string    `gorm:"type:varchar(255);not null;default:''"`
	IsTemp   bool      `gorm:"not null;default:false;index:ix_conversations_user_updated,priority:2"`
	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		UserID: c.UserID,
		Title:  c.Title,
		IsTemp: c.IsTemp,
	}
}

// EtoD converts the row and whatever messages were preloaded.
func (c *Conversation) EtoD() *conversation.Conversation {
	result := &conversation.Conversation{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     c.Title,
		IsTemp:    c.IsTemp,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if len(c.Messages) > 0 {
		result.Messages = make([]conversation.Message, 0, len(c.Messages))
		for i := range c.Messages {
			result.Messages = append(result.Messages, c.Messages[i].EtoD())
		}
	}
	return result
}
