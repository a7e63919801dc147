package requests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/utils/platformerrors"
)

func ptr[T any](v T) *T { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     any
		wantMsg string
	}{
		{
			name: "valid register",
			req:  &RegisterRequest{Email: "a@b.fr", Password: "secret1", FirstName: "Ada", LastName: "L"},
		},
		{
			name:    "short password",
			req:     &RegisterRequest{Email: "a@b.fr", Password: "123", FirstName: "Ada", LastName: "L"},
			wantMsg: "Le mot de passe doit contenir au moins 6 caractères",
		},
		{
			name:    "bad email",
			req:     &RegisterRequest{Email: "nope", Password: "secret1", FirstName: "Ada", LastName: "L"},
			wantMsg: "Email invalide",
		},
		{
			name:    "missing first name",
			req:     &RegisterRequest{Email: "a@b.fr", Password: "secret1", LastName: "L"},
			wantMsg: "Prénom requis",
		},
		{
			name:    "missing message",
			req:     &SendMessageRequest{},
			wantMsg: MsgMissingMessage,
		},
		{
			name:    "missing text",
			req:     &TextToSpeechRequest{},
			wantMsg: MsgMissingText,
		},
		{
			name:    "missing audio",
			req:     &SpeechToTextRequest{},
			wantMsg: MsgMissingAudio,
		},
		{
			name:    "missing settings",
			req:     &UpdateSettingsRequest{},
			wantMsg: "Paramètres manquants",
		},
		{
			name:    "temperature too high",
			req:     &UpdateSettingsRequest{Settings: &usersettings.Patch{Temperature: ptr(2.0)}},
			wantMsg: "La température doit être comprise entre 0 et 1.5",
		},
		{
			name:    "unknown theme",
			req:     &UpdateSettingsRequest{Settings: &usersettings.Patch{Theme: ptr("neon")}},
			wantMsg: "Thème invalide",
		},
		{
			name: "zero temperature allowed",
			req:  &UpdateSettingsRequest{Settings: &usersettings.Patch{Temperature: ptr(0.0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(context.Background(), tt.req)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
			assert.Equal(t, tt.wantMsg, platformerrors.GetPlatformError(err).Message)
		})
	}
}
