package responses

import (
	"time"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/user"
	"koita-chat-api/internal/domain/usersettings"
)

// UserResponse is the public view of a user. Settings holds the display preferences
// after registration and the full UserSettings after login.
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *string `json:"avatar"`
	Settings  any     `json:"settings,omitempty"`
}

type AuthResponse struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Message string       `json:"message,omitempty"`
}

type MessageOnlyResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	ID             string            `json:"id"`
	ConversationID string            `json:"conversationId"`
	Role           conversation.Role `json:"role"`
	Content        string            `json:"content"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type ConversationResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	IsTemp    bool              `json:"isTemp"`
	UserID    string            `json:"userId"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Messages  []MessageResponse `json:"messages,omitempty"`
}

type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

// ConversationDetail always carries the transcript, even when empty.
type ConversationDetail struct {
	ConversationResponse
	Messages []MessageResponse `json:"messages"`
}

type ConversationDetailResponse struct {
	Conversation ConversationDetail `json:"conversation"`
}

type TempChatResponse struct {
	Response  string `json:"response"`
	Temporary bool   `json:"temporary"`
	Note      string `json:"note"`
}

type ProfileUserResponse struct {
	ID            string                     `json:"id"`
	Email         string                     `json:"email"`
	FirstName     string                     `json:"firstName"`
	LastName      string                     `json:"lastName"`
	Avatar        *string                    `json:"avatar"`
	Preferences   user.Preferences           `json:"preferences"`
	Settings      *usersettings.UserSettings `json:"settings"`
	Conversations []ConversationResponse     `json:"conversations"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

type ProfileResponse struct {
	User    ProfileUserResponse `json:"user"`
	Welcome string              `json:"welcome"`
}

type UpdateProfileResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

type UpdateSettingsResponse struct {
	Success  bool                       `json:"success"`
	Settings *usersettings.UserSettings `json:"settings"`
	Message  string                     `json:"message"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type VoicesResponse struct {
	Voices []string `json:"voices"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Features  []string  `json:"features"`
	Timestamp time.Time `json:"timestamp"`
}

// Welcome is the greeting shown after login and on the profile page.
func Welcome(u *user.User) string {
	return "Bonjour " + u.FullName() + " ! Bienvenue sur Mistral AI Chat."
}

func NewUserResponse(u *user.User, settings any) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Settings:  settings,
	}
}

func NewMessageResponse(m conversation.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func NewConversationResponse(c *conversation.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:        c.ID,
		Title:     c.Title,
		IsTemp:    c.IsTemp,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Messages != nil {
		resp.Messages = make([]MessageResponse, 0, len(c.Messages))
		for _, m := range c.Messages {
			resp.Messages = append(resp.Messages, NewMessageResponse(m))
		}
	}
	return resp
}

func NewConversationDetail(c *conversation.Conversation) ConversationDetail {
	resp := NewConversationResponse(c)
	messages := resp.Messages
	if messages == nil {
		messages = []MessageResponse{}
	}
	resp.Messages = nil
	return ConversationDetail{ConversationResponse: resp, Messages: messages}
}

func NewConversationListResponse(conversations []*conversation.Conversation) ConversationListResponse {
	data := make([]ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		if c == nil {
			continue
		}
		data = append(data, NewConversationResponse(c))
	}
	return ConversationListResponse{Conversations: data}
}

func NewProfileResponse(p *user.Profile) ProfileResponse {
	list := NewConversationListResponse(p.Conversations)
	return ProfileResponse{
		User: ProfileUserResponse{
			ID:            p.User.ID,
			Email:         p.User.Email,
			FirstName:     p.User.FirstName,
			LastName:      p.User.LastName,
			Avatar:        p.User.Avatar,
			Preferences:   p.User.Preferences,
			Settings:      p.Settings,
			Conversations: list.Conversations,
			CreatedAt:     p.User.CreatedAt,
			UpdatedAt:     p.User.UpdatedAt,
		},
		Welcome: Welcome(p.User),
	}
}
