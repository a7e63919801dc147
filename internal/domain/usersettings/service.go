package usersettings

import (
	"context"

	"github.com/rs/zerolog"

	"koita-chat-api/internal/utils/platformerrors"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "user-settings-service").Logger(),
	}
}

// Get returns the stored settings, or unsaved defaults when the user has none.
func (s *Service) Get(ctx context.Context, userID string) (*UserSettings, error) {
	settings, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user settings")
	}
	if settings == nil {
		return Defaults(userID), nil
	}
	return settings, nil
}

// Update merges the patch over the current settings and upserts the result.
func (s *Service) Update(ctx context.Context, userID string, patch Patch) (*UserSettings, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	current.UserID = userID

	updated, err := s.repo.Upsert(ctx, current)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update user settings")
	}

	s.log.Debug().Str("user_id", userID).Msg("user settings updated")
	return updated, nil
}
