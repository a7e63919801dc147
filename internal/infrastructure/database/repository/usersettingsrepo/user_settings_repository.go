package usersettingsrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/infrastructure/database/dbschema"
	"koita-chat-api/internal/infrastructure/database/transaction"
	"koita-chat-api/internal/utils/platformerrors"
)

// UserSettingsGormRepository implements usersettings.Repository using GORM.
type UserSettingsGormRepository struct {
	db *transaction.Database
}

var _ usersettings.Repository = (*UserSettingsGormRepository)(nil)

// NewUserSettingsGormRepository constructs a new repository.
func NewUserSettingsGormRepository(db *transaction.Database) usersettings.Repository {
	return &UserSettingsGormRepository{db: db}
}

// FindByUserID retrieves user settings by user ID.
func (repo *UserSettingsGormRepository) FindByUserID(ctx context.Context, userID string) (*usersettings.UserSettings, error) {
	var entity dbschema.UserSettings
	err := repo.db.GetTx(ctx).
		Where("user_id = ?", userID).
		First(&entity).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user settings by user ID",
			err,
			"us-01",
		)
	}

	return entity.EtoD(), nil
}

// Upsert inserts or updates user settings.
func (repo *UserSettingsGormRepository) Upsert(ctx context.Context, settings *usersettings.UserSettings) (*usersettings.UserSettings, error) {
	now := time.Now().UTC()
	entity := dbschema.NewSchemaUserSettings(settings)
	entity.CreatedAt = now
	entity.UpdatedAt = now

	err := repo.db.GetTx(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"theme":       entity.Theme,
				"language":    entity.Language,
				"ai_model":    entity.AIModel,
				"temperature": entity.Temperature,
				"voice":       entity.Voice,
				"max_tokens":  entity.MaxTokens,
				"updated_at":  now,
			}),
		}).
		Create(entity).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert user settings",
			err,
			"us-02",
		)
	}

	// Reload from the primary to get the original creation timestamp
	var persisted dbschema.UserSettings
	if err := repo.db.GetPrimary(ctx).
		Where("user_id = ?", settings.UserID).
		First(&persisted).
		Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reload upserted user settings",
			err,
			"us-03",
		)
	}

	return persisted.EtoD(), nil
}
