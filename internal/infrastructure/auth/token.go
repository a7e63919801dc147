package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "koita-chat-api/internal/domain/auth"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	DefaultTokenExpiry = 7 * 24 * time.Hour

	msgInvalidToken = "Token invalide"
)

// Claims mirrors the payload the web client already decodes: {id, email}.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens signed with a server secret.
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

var (
	_ domainauth.TokenIssuer   = (*TokenService)(nil)
	_ domainauth.TokenVerifier = (*TokenService)(nil)
)

func NewTokenService(secret string, expiry time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &TokenService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

func (s *TokenService) Issue(userID, email string) (string, error) {
	now := s.now()
	claims := Claims{
		ID:    userID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) Verify(ctx context.Context, token string) (domainauth.Principal, error) {
	var claims Claims
	parsed, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domainauth.Principal{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUnauthorized, msgInvalidToken, err, "7c9e1b3d-5f7a-4c9e-8b1d-3f5a7c9e1b24")
	}

	userID := claims.ID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return domainauth.Principal{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUnauthorized, msgInvalidToken, errors.New("token has no subject"), "9e1b3d5f-7a9c-4e1b-8d3f-5a7c9e1b3d46")
	}

	return domainauth.Principal{UserID: userID, Email: claims.Email}, nil
}
