package auth

import "context"

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID string
	Email  string
}

// TokenIssuer mints signed bearer tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// PasswordHasher hashes and compares passwords with a slow adaptive hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
