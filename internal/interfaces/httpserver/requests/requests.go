package requests

import "koita-chat-api/internal/domain/usersettings"

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SendMessageRequest struct {
	Message        string `json:"message" validate:"required"`
	ConversationID string `json:"conversationId,omitempty" validate:"omitempty,max=64"`
	IsTemp         bool   `json:"isTemp"`
	UseWebSearch   bool   `json:"useWebSearch"`
}

type TempChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// UpdateProfileRequest leaves absent fields unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=100"`
	Avatar    *string `json:"avatar,omitempty" validate:"omitempty,max=2048"`
}

type UpdateSettingsRequest struct {
	Settings *usersettings.Patch `json:"settings" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type TextToSpeechRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language,omitempty" validate:"omitempty,max=10"`
	Voice    string `json:"voice,omitempty" validate:"omitempty,max=50"`
}

type SpeechToTextRequest struct {
	Audio    string `json:"audio" validate:"required"`
	Language string `json:"language,omitempty" validate:"omitempty,max=10"`
}
