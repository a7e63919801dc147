package idgen

import (
	"crypto/rand"
	"fmt"
)

const (
	UserPrefix         = "usr"
	ConversationPrefix = "conv"
	MessagePrefix      = "msg"

	DefaultLength = 16
)

const charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID generates a cryptographically secure ID with the given prefix and length.
// The random part uses only lowercase alphanumerics.
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid id length %d", length)
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	encoded := make([]byte, length)
	for i := range bytes {
		encoded[i] = charset[int(bytes[i])%len(charset)]
	}

	return fmt.Sprintf("%s_%s", prefix, string(encoded)), nil
}

// NewUserID returns a new user identifier.
func NewUserID() (string, error) {
	return GenerateSecureID(UserPrefix, DefaultLength)
}

// NewConversationID returns a new conversation identifier.
func NewConversationID() (string, error) {
	return GenerateSecureID(ConversationPrefix, DefaultLength)
}

// NewMessageID returns a new message identifier.
func NewMessageID() (string, error) {
	return GenerateSecureID(MessagePrefix, DefaultLength)
}
