package userrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"koita-chat-api/internal/domain/user"
	"koita-chat-api/internal/infrastructure/database/dbschema"
	"koita-chat-api/internal/infrastructure/database/transaction"
	"koita-chat-api/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	now := time.Now().UTC()
	entity := dbschema.NewSchemaUser(u)
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := repo.db.GetTx(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"user email already exists",
				err,
				"3b31d2bd-3260-4233-b0c8-09909fa0f154",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
			"f71f98cb-3154-4ad2-9076-7e58628a4098",
		)
	}
	return entity.EtoD(), nil
}

// FindByID reads from the primary: tokens are used right after registration.
func (repo *UserGormRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetPrimary(ctx).
		Where("id = ?", id).
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
			"failed to find user by ID",
			err,
			"a9d3f8e4-21c7-4f5b-9a2e-6d8f9e1a2b3c",
		)
	}
	return entity.EtoD(), nil
}

// FindByEmail reads from the primary so a fresh account can log in at once.
func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetPrimary(ctx).
		Where("email = ?", email).
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
			"failed to find user by email",
			err,
			"b2a7c2d5-53b2-44a3-8f8f-927f94e9a4db",
		)
	}
	return entity.EtoD(), nil
}

// UpdateProfile writes the non-nil fields and returns the reloaded user, or nil if it does not exist.
func (repo *UserGormRepository) UpdateProfile(ctx context.Context, id string, update user.ProfileUpdate) (*user.User, error) {
	assignments := map[string]any{
		"updated_at": time.Now().UTC(),
	}
	if update.FirstName != nil {
		assignments["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		assignments["last_name"] = *update.LastName
	}
	if update.Avatar != nil {
		assignments["avatar"] = *update.Avatar
	}

	result := repo.db.GetTx(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", id).
		Updates(assignments)
	if result.Error != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update user profile",
			result.Error,
			"6e0b5c1a-93d4-4f7e-b2a8-1c5d7e9f0a32",
		)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return repo.FindByID(ctx, id)
}

func (repo *UserGormRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	err := repo.db.GetTx(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update user password",
			err,
			"0d7f2a9c-48e1-4b6a-9c3f-5e8a1b2d4f67",
		)
	}
	return nil
}
