package conversation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"koita-chat-api/internal/utils/platformerrors"
)

const notFoundMessage = "Conversation non trouvée"

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "conversation-service").Logger(),
	}
}

// List returns the caller's saved conversations, most recently updated first, each with its latest message.
func (s *Service) List(ctx context.Context, userID string) ([]*Conversation, error) {
	conversations, err := s.repo.ListForUser(ctx, userID, ListLimit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	return conversations, nil
}

// Get returns one conversation with its full transcript.
func (s *Service) Get(ctx context.Context, userID, id string) (*Conversation, error) {
	conv, err := s.repo.FindWithMessagesForUser(ctx, id, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}
	if conv == nil {
		return nil, NotFoundError(ctx)
	}
	return conv, nil
}

// Delete removes a conversation owned by the caller.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.DeleteForUser(ctx, id, userID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}
	if !deleted {
		return NotFoundError(ctx)
	}
	return nil
}

// PurgeTemporary deletes temporary conversations idle since before now-olderThan.
func (s *Service) PurgeTemporary(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	purged, err := s.repo.DeleteTemporaryBefore(ctx, cutoff)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to purge temporary conversations")
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("purged temporary conversations")
	}
	return purged, nil
}

// NotFoundError is returned for conversations that are absent or owned by someone else.
func NotFoundError(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		notFoundMessage, nil, "5d0f2a4e-7c1b-4f7e-9b35-8a2c6e1d0f11")
}
