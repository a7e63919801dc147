package user

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/auth"
	"koita-chat-api/internal/domain/conversation"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/utils/idgen"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	MsgInvalidCredentials = "Email ou mot de passe incorrect"
	MsgEmailTaken         = "Un utilisateur avec cet email existe déjà"
	MsgWrongPassword      = "Mot de passe actuel incorrect"
	MsgInvalidToken       = "Token invalide"
)

// Transactor runs fn inside a database transaction carried by the returned context.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token    string
	User     *User
	Settings *usersettings.UserSettings
}

// Profile aggregates what the profile page shows.
type Profile struct {
	User          *User
	Settings      *usersettings.UserSettings
	Conversations []*conversation.Conversation
}

type Service struct {
	repo          Repository
	settingsRepo  usersettings.Repository
	conversations conversation.Repository
	tx            Transactor
	hasher        auth.PasswordHasher
	tokens        auth.TokenIssuer
	verifier      auth.TokenVerifier
	log           zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewService(
	repo Repository,
	settingsRepo usersettings.Repository,
	conversations conversation.Repository,
	tx Transactor,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	verifier auth.TokenVerifier,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:          repo,
		settingsRepo:  settingsRepo,
		conversations: conversations,
		tx:            tx,
		hasher:        hasher,
		tokens:        tokens,
		verifier:      verifier,
		log:           log.With().Str("component", "user-service").Logger(),
	}
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with default settings in a single transaction and issues a token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Email et mot de passe requis", nil, "0c6c63c3-8a57-4c58-9d0c-6c2f3f0b7d21")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check existing user")
	}
	if existing != nil {
		return nil, emailTakenError(ctx)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to hash password", err, "4f1f9a0e-2d8b-4a0c-b6c5-1e9f7a3d5c42")
	}

	id, err := idgen.NewUserID()
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate user id", err, "b7d5e3c1-9f2a-4e6b-8c0d-3a1f5e7b9d24")
	}

	newUser := &User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Preferences:  DefaultPreferences(),
	}

	var (
		created  *User
		settings *usersettings.UserSettings
	)
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.repo.Create(txCtx, newUser)
		if txErr != nil {
			return txErr
		}
		settings, txErr = s.settingsRepo.Upsert(txCtx, usersettings.Defaults(created.ID))
		return txErr
	})
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			return nil, emailTakenError(ctx)
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to register user")
	}

	token, err := s.issueToken(ctx, created)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return &AuthResult{Token: token, User: created, Settings: settings}, nil
}

// Login verifies credentials. Unknown email and wrong password yield the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	found, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user")
	}

	if found == nil {
		// spend the same bcrypt time as a real comparison
		_ = s.hasher.Compare(s.placeholderHash(), password)
		return nil, invalidCredentialsError(ctx)
	}

	if err := s.hasher.Compare(found.PasswordHash, password); err != nil {
		return nil, invalidCredentialsError(ctx)
	}

	settings, err := s.loadSettings(ctx, found.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(ctx, found)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: found, Settings: settings}, nil
}

// Authenticate resolves a bearer token to a principal whose user still exists.
func (s *Service) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	principal, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return auth.Principal{}, err
	}

	found, err := s.repo.FindByID(ctx, principal.UserID)
	if err != nil {
		return auth.Principal{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load token subject")
	}
	if found == nil {
		return auth.Principal{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			MsgInvalidToken, nil, "e2c4a6b8-1d3f-4a5c-9e7b-0f2d4c6a8e13")
	}

	return auth.Principal{UserID: found.ID, Email: found.Email}, nil
}

// GetProfile returns the user with settings and the most recent saved conversations.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	found, err := s.mustFind(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.conversations.ListRecentForUser(ctx, userID, conversation.ProfileListLimit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load recent conversations")
	}

	return &Profile{User: found, Settings: settings, Conversations: recent}, nil
}

// UpdateProfile changes names and avatar.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*User, error) {
	if update.FirstName != nil {
		trimmed := strings.TrimSpace(*update.FirstName)
		update.FirstName = &trimmed
	}
	if update.LastName != nil {
		trimmed := strings.TrimSpace(*update.LastName)
		update.LastName = &trimmed
	}

	updated, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update profile")
	}
	if updated == nil {
		return nil, userNotFoundError(ctx)
	}
	return updated, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	found, err := s.mustFind(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(found.PasswordHash, currentPassword); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInvalidCredentials,
			MsgWrongPassword, nil, "a3b5c7d9-2e4f-4061-8a2c-4e6a8c0e2f35")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to hash password", err, "c5d7e9f1-4a6b-4c8d-9e0f-6a8c0e2a4b57")
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update password")
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *Service) mustFind(ctx context.Context, userID string) (*User, error) {
	found, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user")
	}
	if found == nil {
		return nil, userNotFoundError(ctx)
	}
	return found, nil
}

func (s *Service) loadSettings(ctx context.Context, userID string) (*usersettings.UserSettings, error) {
	settings, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load user settings")
	}
	if settings == nil {
		return usersettings.Defaults(userID), nil
	}
	return settings, nil
}

func (s *Service) issueToken(ctx context.Context, u *User) (string, error) {
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to issue token", err, "d6e8f0a2-5b7c-4d9e-8f1a-7b9d1f3b5c68")
	}
	return token, nil
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("placeholder-password-for-timing")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to prepare placeholder hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func invalidCredentialsError(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInvalidCredentials,
		MsgInvalidCredentials, nil, "9a1c3e5f-7b2d-4f6a-8c0e-2b4d6f8a0c1e")
}

func emailTakenError(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
		MsgEmailTaken, nil, "1e3a5c7b-9d2f-4b6e-8a0c-4d6f8b0a2c3d")
}

func userNotFoundError(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		"Utilisateur non trouvé", nil, "f7a9b1c3-6d8e-4f0a-9b2c-8d0f2b4d6e79")
}
