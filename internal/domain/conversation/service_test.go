package conversation_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/infrastructure/database/databasetest"
	"koita-chat-api/internal/infrastructure/database/repository/conversationrepo"
	"koita-chat-api/internal/utils/platformerrors"
)

func setup(t *testing.T) (*conversation.Service, conversation.Repository) {
	t.Helper()
	repo := conversationrepo.NewConversationGormRepository(databasetest.NewDatabase(t))
	return conversation.NewService(repo, zerolog.Nop()), repo
}

func create(t *testing.T, repo conversation.Repository, id, userID string, temp bool) {
	t.Helper()
	_, err := repo.Create(context.Background(), &conversation.Conversation{ID: id, UserID: userID, Title: id, IsTemp: temp})
	require.NoError(t, err)
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	create(t, repo, "conv_1", "usr_1", false)
	_, err := repo.AppendMessage(ctx, &conversation.Message{ID: "msg_1", ConversationID: "conv_1", Role: conversation.RoleUser, Content: "Salut"})
	require.NoError(t, err)

	conv, err := svc.Get(ctx, "usr_1", "conv_1")
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)

	tests := []struct {
		name   string
		userID string
		id     string
	}{
		{"foreign owner", "usr_2", "conv_1"},
		{"missing", "usr_1", "conv_missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(ctx, tt.userID, tt.id)
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
			assert.Equal(t, "Conversation non trouvée", platformerrors.GetPlatformError(err).Message)
		})
	}
}

func TestListSkipsTemporary(t *testing.T) {
	svc, repo := setup(t)
	create(t, repo, "conv_saved", "usr_1", false)
	create(t, repo, "conv_temp", "usr_1", true)
	create(t, repo, "conv_other", "usr_2", false)

	list, err := svc.List(context.Background(), "usr_1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "conv_saved", list[0].ID)
}

func TestDelete(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	create(t, repo, "conv_1", "usr_1", false)

	err := svc.Delete(ctx, "usr_2", "conv_1")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	require.NoError(t, svc.Delete(ctx, "usr_1", "conv_1"))

	err = svc.Delete(ctx, "usr_1", "conv_1")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestPurgeTemporary(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	create(t, repo, "conv_old_temp", "usr_1", true)
	create(t, repo, "conv_new_temp", "usr_1", true)
	create(t, repo, "conv_old_saved", "usr_1", false)
	old := time.Now().UTC().Add(-48 * time.Hour)
	require.NoError(t, repo.Touch(ctx, "conv_old_temp", old))
	require.NoError(t, repo.Touch(ctx, "conv_old_saved", old))

	purged, err := svc.PurgeTemporary(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	gone, err := repo.FindByIDForUser(ctx, "conv_old_temp", "usr_1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.FindByIDForUser(ctx, "conv_new_temp", "usr_1")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
