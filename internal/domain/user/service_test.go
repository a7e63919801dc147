package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/user"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/infrastructure/auth"
	"koita-chat-api/internal/infrastructure/database/databasetest"
	"koita-chat-api/internal/infrastructure/database/repository/conversationrepo"
	"koita-chat-api/internal/infrastructure/database/repository/userrepo"
	"koita-chat-api/internal/infrastructure/database/repository/usersettingsrepo"
	"koita-chat-api/internal/utils/platformerrors"
)

type fixture struct {
	service       *user.Service
	users         user.Repository
	settings      usersettings.Repository
	conversations conversation.Repository
	tokens        *auth.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := databasetest.NewDatabase(t)
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		users:         userrepo.NewUserGormRepository(db),
		settings:      usersettingsrepo.NewUserSettingsGormRepository(db),
		conversations: conversationrepo.NewConversationGormRepository(db),
		tokens:        tokens,
	}
	f.service = user.NewService(f.users, f.settings, f.conversations, db,
		auth.NewBcryptHasher(bcrypt.MinCost), tokens, tokens, zerolog.Nop())
	return f
}

func register(t *testing.T, f *fixture, email string) *user.AuthResult {
	t.Helper()
	result, err := f.service.Register(context.Background(), user.RegisterInput{
		Email: email, Password: "radium88", FirstName: " Marie ", LastName: "Curie",
	})
	require.NoError(t, err)
	return result
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	result := register(t, f, "Marie@Example.fr ")

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "marie@example.fr", result.User.Email)
	assert.Equal(t, "Marie", result.User.FirstName)
	assert.NotEqual(t, "radium88", result.User.PasswordHash)
	assert.Equal(t, user.DefaultPreferences(), result.User.Preferences)

	stored, err := f.settings.FindByUserID(context.Background(), result.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, usersettings.DefaultAIModel, stored.AIModel)
	assert.Equal(t, usersettings.DefaultMaxTokens, stored.MaxTokens)

	principal, err := f.tokens.Verify(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, principal.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	register(t, f, "marie@example.fr")

	_, err := f.service.Register(context.Background(), user.RegisterInput{
		Email: "MARIE@example.fr", Password: "autre-mdp", FirstName: "M", LastName: "C",
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))
	assert.Equal(t, user.MsgEmailTaken, platformerrors.GetPlatformError(err).Message)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	registered := register(t, f, "marie@example.fr")

	result, err := f.service.Login(context.Background(), "MARIE@example.fr", "radium88")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	require.NotNil(t, result.Settings)
	assert.Equal(t, usersettings.DefaultTheme, result.Settings.Theme)

	_, wrongPassword := f.service.Login(context.Background(), "marie@example.fr", "polonium")
	_, unknownEmail := f.service.Login(context.Background(), "pierre@example.fr", "radium88")
	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)

	for _, err := range []error{wrongPassword, unknownEmail} {
		perr := platformerrors.GetPlatformError(err)
		require.NotNil(t, perr)
		assert.Equal(t, platformerrors.ErrorTypeInvalidCredentials, perr.Type)
		assert.Equal(t, user.MsgInvalidCredentials, perr.Message)
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	registered := register(t, f, "marie@example.fr")

	principal, err := f.service.Authenticate(context.Background(), registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, principal.UserID)
	assert.Equal(t, "marie@example.fr", principal.Email)

	ghost, err := f.tokens.Issue("usr_ghost", "ghost@example.fr")
	require.NoError(t, err)
	_, err = f.service.Authenticate(context.Background(), ghost)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))

	_, err = f.service.Authenticate(context.Background(), "garbage")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestGetProfile(t *testing.T) {
	f := newFixture(t)
	registered := register(t, f, "marie@example.fr")
	ctx := context.Background()

	_, err := f.conversations.Create(ctx, &conversation.Conversation{ID: "conv_saved", UserID: registered.User.ID, Title: "Saved"})
	require.NoError(t, err)
	_, err = f.conversations.Create(ctx, &conversation.Conversation{ID: "conv_temp", UserID: registered.User.ID, Title: "Temp", IsTemp: true})
	require.NoError(t, err)

	profile, err := f.service.GetProfile(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, profile.User.ID)
	require.NotNil(t, profile.Settings)
	require.Len(t, profile.Conversations, 1)
	assert.Equal(t, "conv_saved", profile.Conversations[0].ID)

	_, err = f.service.GetProfile(ctx, "usr_missing")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	registered := register(t, f, "marie@example.fr")

	first := "  Pierre "
	avatar := "https://example.fr/p.png"
	updated, err := f.service.UpdateProfile(context.Background(), registered.User.ID, user.ProfileUpdate{FirstName: &first, Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Pierre", updated.FirstName)
	assert.Equal(t, "Curie", updated.LastName)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, avatar, *updated.Avatar)

	_, err = f.service.UpdateProfile(context.Background(), "usr_missing", user.ProfileUpdate{FirstName: &first})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	registered := register(t, f, "marie@example.fr")
	ctx := context.Background()

	err := f.service.ChangePassword(ctx, registered.User.ID, "wrong", "nouveau-mdp")
	require.Error(t, err)
	assert.Equal(t, user.MsgWrongPassword, platformerrors.GetPlatformError(err).Message)

	require.NoError(t, f.service.ChangePassword(ctx, registered.User.ID, "radium88", "nouveau-mdp"))

	_, err = f.service.Login(ctx, "marie@example.fr", "radium88")
	assert.Error(t, err)
	_, err = f.service.Login(ctx, "marie@example.fr", "nouveau-mdp")
	assert.NoError(t, err)
}
