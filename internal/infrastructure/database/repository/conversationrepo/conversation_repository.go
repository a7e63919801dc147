package conversationrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/infrastructure/database/dbschema"
	"koita-chat-api/internal/infrastructure/database/transaction"
	"koita-chat-api/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) (*conversation.Conversation, error) {
	now := time.Now().UTC()
	entity := dbschema.NewSchemaConversation(conv)
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation", err, "c4f1a2b3-5d6e-4f70-8a9b-0c1d2e3f4a51")
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) FindByIDForUser(ctx context.Context, id, userID string) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	// a follow-up send may arrive right after the thread was created
	err := repo.db.GetPrimary(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation", err, "d5a2b3c4-6e7f-4081-9bac-1d2e3f4a5b62")
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) FindWithMessagesForUser(ctx context.Context, id, userID string) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.GetTx(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load conversation transcript", err, "e6b3c4d5-7f80-4192-acbd-2e3f4a5b6c73")
	}
	return entity.EtoD(), nil
}

// ListForUser returns saved conversations, newest updated first, each carrying only its latest message.
func (repo *ConversationGormRepository) ListForUser(ctx context.Context, userID string, limit int) ([]*conversation.Conversation, error) {
	entities, err := repo.listSaved(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return []*conversation.Conversation{}, nil
	}

	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}

	var latest []dbschema.Message
	err = repo.db.GetTx(ctx).
		Where("conversation_id IN ?", ids).
		Where("created_at = (SELECT MAX(latest.created_at) FROM messages AS latest WHERE latest.conversation_id = messages.conversation_id)").
		Order("id DESC").
		Find(&latest).
		Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load latest messages", err, "f7c4d5e6-8091-42a3-bdce-3f4a5b6c7d84")
	}

	byConversation := make(map[string]dbschema.Message, len(latest))
	for _, msg := range latest {
		if _, seen := byConversation[msg.ConversationID]; !seen {
			byConversation[msg.ConversationID] = msg
		}
	}

	result := make([]*conversation.Conversation, 0, len(entities))
	for i := range entities {
		conv := entities[i].EtoD()
		if msg, ok := byConversation[conv.ID]; ok {
			conv.Messages = []conversation.Message{msg.EtoD()}
		}
		result = append(result, conv)
	}
	return result, nil
}

func (repo *ConversationGormRepository) ListRecentForUser(ctx context.Context, userID string, limit int) ([]*conversation.Conversation, error) {
	entities, err := repo.listSaved(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	result := make([]*conversation.Conversation, 0, len(entities))
	for i := range entities {
		result = append(result, entities[i].EtoD())
	}
	return result, nil
}

func (repo *ConversationGormRepository) listSaved(ctx context.Context, userID string, limit int) ([]dbschema.Conversation, error) {
	var entities []dbschema.Conversation
	query := repo.db.GetTx(ctx).
		Where("user_id = ? AND is_temp = ?", userID, false).
		Order("updated_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations", err, "a8d5e6f7-91a2-43b4-acdf-4a5b6c7d8e95")
	}
	return entities, nil
}

func (repo *ConversationGormRepository) UpdateTitle(ctx context.Context, id, title string) error {
	err := repo.db.GetTx(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", id).
		Update("title", title).
		Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation title", err, "b9e6f7a8-a2b3-44c5-9def-5b6c7d8e9fa6")
	}
	return nil
}

// Touch sets updated_at explicitly so the value does not depend on gorm's autoUpdateTime.
func (repo *ConversationGormRepository) Touch(ctx context.Context, id string, at time.Time) error {
	err := repo.db.GetTx(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at.UTC()).
		Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to touch conversation", err, "caf7a8b9-b3c4-45d6-8ef0-6c7d8e9fab17")
	}
	return nil
}

func (repo *ConversationGormRepository) DeleteForUser(ctx context.Context, id, userID string) (bool, error) {
	deleted := false
	err := repo.db.WithTransaction(ctx, func(txCtx context.Context) error {
		tx := repo.db.GetTx(txCtx)

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&dbschema.Conversation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("conversation_id = ?", id).Delete(&dbschema.Message{}).Error
	})
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation", err, "db08b9ca-c4d5-46e7-9f01-7d8e9fabc028")
	}
	return deleted, nil
}

// DeleteTemporaryBefore removes temporary conversations idle since cutoff together with their messages.
func (repo *ConversationGormRepository) DeleteTemporaryBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	err := repo.db.WithTransaction(ctx, func(txCtx context.Context) error {
		tx := repo.db.GetTx(txCtx)

		stale := tx.Model(&dbschema.Conversation{}).
			Select("id").
			Where("is_temp = ? AND updated_at < ?", true, cutoff.UTC())

		if err := tx.Where("conversation_id IN (?)", stale).Delete(&dbschema.Message{}).Error; err != nil {
			return err
		}

		result := tx.Where("is_temp = ? AND updated_at < ?", true, cutoff.UTC()).Delete(&dbschema.Conversation{})
		if result.Error != nil {
			return result.Error
		}
		purged = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to purge temporary conversations", err, "ec19cadb-d5e6-47f8-a012-8e9fabcd1039")
	}
	return purged, nil
}

func (repo *ConversationGormRepository) AppendMessage(ctx context.Context, msg *conversation.Message) (*conversation.Message, error) {
	entity := dbschema.NewSchemaMessage(msg)
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now().UTC()
	}

	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to append message", err, "fd2adbec-e6f7-4809-b123-9fabcde2104a")
	}
	saved := entity.EtoD()
	return &saved, nil
}

// RecentMessages returns the last limit messages in chronological order.
func (repo *ConversationGormRepository) RecentMessages(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	var entities []dbschema.Message
	// the user turn was appended right before this read
	err := repo.db.GetPrimary(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load recent messages", err, "0e3becfd-f708-491a-8234-afbcdef3215b")
	}

	messages := make([]conversation.Message, len(entities))
	for i := range entities {
		messages[len(entities)-1-i] = entities[i].EtoD()
	}
	return messages, nil
}

func (repo *ConversationGormRepository) CountMessages(ctx context.Context, conversationID string) (int64, error) {
	var count int64
	err := repo.db.GetTx(ctx).
		Model(&dbschema.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count messages", err, "1f4cdf0e-0819-4a2b-9345-bcdef043226c")
	}
	return count, nil
}
