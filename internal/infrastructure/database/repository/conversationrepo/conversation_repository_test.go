package conversationrepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/infrastructure/database/databasetest"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seedConversation(t *testing.T, repo conversation.Repository, id, userID string, temp bool) {
	t.Helper()
	_, err := repo.Create(context.Background(), &conversation.Conversation{ID: id, UserID: userID, Title: id, IsTemp: temp})
	require.NoError(t, err)
}

func seedMessage(t *testing.T, repo conversation.Repository, convID string, n int) {
	t.Helper()
	role := conversation.RoleUser
	if n%2 == 1 {
		role = conversation.RoleAssistant
	}
	_, err := repo.AppendMessage(context.Background(), &conversation.Message{
		ID:             fmt.Sprintf("msg_%s_%02d", convID, n),
		ConversationID: convID,
		Role:           role,
		Content:        fmt.Sprintf("message %d", n),
		CreatedAt:      base.Add(time.Duration(n) * time.Minute),
	})
	require.NoError(t, err)
}

func TestFindIsScopedByUser(t *testing.T) {
	repo := NewConversationGormRepository(databasetest.NewDatabase(t))
	ctx := context.Background()
	seedConversation(t, repo, "conv_a", "usr_1", false)

	found, err := repo.FindByIDForUser(ctx, "conv_a", "usr_1")
	require.NoError(t, err)
	require.NotNil(t, found)

	other, err := repo.FindByIDForUser(ctx, "conv_a", "usr_2")
	require.NoError(t, err)
	assert.Nil(t, other)

	transcript, err := repo.FindWithMessagesForUser(ctx, "conv_a", "usr_2")
	require.NoError(t, err)
	assert.Nil(t, transcript)
}

func TestRecentMessagesChronological(t *testing.T) {
	repo := NewConversationGormRepository(databasetest.NewDatabase(t))
	ctx := context.Background()
	seedConversation(t, repo, "conv_a", "usr_1", false)
	for i := 0; i < 14; i++ {
		seedMessage(t, repo, "conv_a", i)
	}

	messages, err := repo.RecentMessages(ctx, "conv_a", 10)
	require.NoError(t, err)
	require.Len(t, messages, 10)
	assert.Equal(t, "message 4", messages[0].Content)
	assert.Equal(t, "message 13", messages[9].Content)

	count, err := repo.CountMessages(ctx, "conv_a")
	require.NoError(t, err)
	assert.Equal(t, int64(14), count)

	transcript, err := repo.FindWithMessagesForUser(ctx, "conv_a", "usr_1")
	require.NoError(t, err)
	require.Len(t, transcript.Messages, 14)
	assert.Equal(t, "message 0", transcript.Messages[0].Content)
}

func TestListForUserExcludesTempAndOthers(t *testing.T) {
	repo := NewConversationGormRepository(databasetest.NewDatabase(t))
	ctx := context.Background()

	seedConversation(t, repo, "conv_old", "usr_1", false)
	seedConversation(t, repo, "conv_new", "usr_1", false)
	seedConversation(t, repo, "conv_temp", "usr_1", true)
	seedConversation(t, repo, "conv_foreign", "usr_2", false)

	require.NoError(t, repo.Touch(ctx, "conv_old", base))
	require.NoError(t, repo.Touch(ctx, "conv_new", base.Add(time.Hour)))

	seedMessage(t, repo, "conv_new", 0)
	seedMessage(t, repo, "conv_new", 1)

	list, err := repo.ListForUser(ctx, "usr_1", conversation.ListLimit)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "conv_new", list[0].ID)
	assert.Equal(t, "conv_old", list[1].ID)

	require.Len(t, list[0].Messages, 1)
	assert.Equal(t, "message 1", list[0].Messages[0].Content)
	assert.Empty(t, list[1].Messages)

	recent, err := repo.ListRecentForUser(ctx, "usr_1", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "conv_new", recent[0].ID)

	empty, err := repo.ListForUser(ctx, "usr_3", conversation.ListLimit)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDeleteForUser(t *testing.T) {
	repo := NewConversationGormRepository(databasetest.NewDatabase(t))
	ctx := context.Background()
	seedConversation(t, repo, "conv_a", "usr_1", false)
	seedMessage(t, repo, "conv_a", 0)

	deleted, err := repo.DeleteForUser(ctx, "conv_a", "usr_2")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteForUser(ctx, "conv_a", "usr_1")
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := repo.CountMessages(ctx, "conv_a")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteTemporaryBefore(t *testing.T) {
	repo := NewConversationGormRepository(databasetest.NewDatabase(t))
	ctx := context.Background()

	seedConversation(t, repo, "conv_stale", "usr_1", true)
	seedConversation(t, repo, "conv_fresh", "usr_1", true)
	seedConversation(t, repo, "conv_saved", "usr_1", false)
	seedMessage(t, repo, "conv_stale", 0)

	require.NoError(t, repo.Touch(ctx, "conv_stale", base.Add(-48*time.Hour)))
	require.NoError(t, repo.Touch(ctx, "conv_fresh", base))
	require.NoError(t, repo.Touch(ctx, "conv_saved", base.Add(-48*time.Hour)))

	purged, err := repo.DeleteTemporaryBefore(ctx, base.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	stale, err := repo.FindByIDForUser(ctx, "conv_stale", "usr_1")
	require.NoError(t, err)
	assert.Nil(t, stale)

	count, err := repo.CountMessages(ctx, "conv_stale")
	require.NoError(t, err)
	assert.Zero(t, count)

	for _, id := range []string{"conv_fresh", "conv_saved"} {
		kept, err := repo.FindByIDForUser(ctx, id, "usr_1")
		require.NoError(t, err)
		assert.NotNil(t, kept, id)
	}
}

func TestReadAfterWriteUsesPrimary(t *testing.T) {
	repo := NewConversationGormRepository(databasetest.NewDatabaseWithLaggingReplica(t))
	ctx := context.Background()
	seedConversation(t, repo, "conv_a", "usr_1", false)
	seedMessage(t, repo, "conv_a", 0)

	found, err := repo.FindByIDForUser(ctx, "conv_a", "usr_1")
	require.NoError(t, err)
	require.NotNil(t, found)

	recent, err := repo.RecentMessages(ctx, "conv_a", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "message 0", recent[0].Content)

	// listings tolerate lag and stay on the replica
	listed, err := repo.ListForUser(ctx, "usr_1", 50)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
