package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  int
	}{
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusBadRequest},
		{ErrorTypeInvalidCredentials, http.StatusBadRequest},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeRateLimited, http.StatusTooManyRequests},
		{ErrorTypeExternal, http.StatusInternalServerError},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorType("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorTypeToHTTPStatus(tt.errorType))
		})
	}
}

func TestAsErrorKeepsType(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "conversation missing", nil, "inner-uuid")

	wrapped := AsError(ctx, LayerDomain, inner, "send message")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeNotFound, wrapped.Type)
	assert.Equal(t, "inner-uuid", wrapped.UUID)
	assert.Equal(t, "req-1", wrapped.RequestID)
	assert.Equal(t, "conversation missing", RootMessage(wrapped))
	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
}

func TestAsErrorPlainErrorIsInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerDomain, errors.New("boom"), "unexpected")
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Nil(t, AsError(context.Background(), LayerDomain, nil, "noop"))
}

func TestClientMessageHidesUpstreamDetail(t *testing.T) {
	ctx := context.Background()

	upstream := NewError(ctx, LayerInfrastructure, ErrorTypeExternal, "provider said: secret stack trace", nil, "u1")
	assert.Equal(t, GenericErrorMessage, ClientMessage(upstream))

	withPublic := NewErrorWithContext(ctx, LayerInfrastructure, ErrorTypeExternal, "provider 503", nil, "u2",
		map[string]any{PublicMessageKey: "Erreur de communication avec Mistral AI"})
	wrapped := AsError(ctx, LayerDomain, withPublic, "chat completion")
	assert.Equal(t, "Erreur de communication avec Mistral AI", ClientMessage(wrapped))

	db := NewError(ctx, LayerRepository, ErrorTypeDatabaseError, "pq: relation does not exist", nil, "u3")
	assert.Equal(t, GenericErrorMessage, ClientMessage(db))

	validation := NewError(ctx, LayerDomain, ErrorTypeValidation, "Message manquant", nil, "u4")
	assert.Equal(t, "Message manquant", ClientMessage(validation))
}
